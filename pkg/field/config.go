package field

// Config is the sealed union of per-type field configuration. Each variant
// carries only the settings meaningful for its field type, so invalid
// key/type combinations cannot be represented. Unknown keys present in stored
// payloads are dropped on decode and were already ignored by validation.
type Config interface {
	isConfig()
	clone() Config
}

// StyleHooks carries free-form presentation hints. They travel with the field
// configuration but are ignored by validation and visibility evaluation.
type StyleHooks struct {
	ClassName string            `json:"className,omitempty"`
	Style     map[string]string `json:"style,omitempty"`
}

func (s StyleHooks) cloneHooks() StyleHooks {
	out := s
	if s.Style != nil {
		out.Style = make(map[string]string, len(s.Style))
		for key, value := range s.Style {
			out.Style[key] = value
		}
	}
	return out
}

// TextConfig configures text, textarea, email, and number fields. Rows is
// meaningful for textarea only.
type TextConfig struct {
	Placeholder  string `json:"placeholder"`
	DefaultValue string `json:"defaultValue"`
	HelpText     string `json:"helpText,omitempty"`
	Rows         int    `json:"rows,omitempty"`
	StyleHooks
}

// ChoiceConfig configures radio, checkbox, and select fields. AllowMultiple
// and Searchable are meaningful for select only.
type ChoiceConfig struct {
	Options       []Option `json:"options"`
	AllowMultiple bool     `json:"allowMultiple,omitempty"`
	Searchable    bool     `json:"searchable,omitempty"`
	StyleHooks
}

// SliderConfig configures slider fields.
type SliderConfig struct {
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Step      float64 `json:"step"`
	ShowValue bool    `json:"showValue"`
	StyleHooks
}

// DateConfig configures date fields. Dates carry no extra settings today.
type DateConfig struct {
	StyleHooks
}

// FileConfig configures file upload fields. MaxFileSize is in bytes.
type FileConfig struct {
	Accept      string `json:"accept"`
	Multiple    bool   `json:"multiple"`
	MaxFileSize int64  `json:"maxFileSize"`
	StyleHooks
}

// RatingConfig configures rating fields.
type RatingConfig struct {
	MaxRating int  `json:"maxRating"`
	AllowHalf bool `json:"allowHalf"`
	StyleHooks
}

// EmptyConfig is the tolerant default for unrecognized field types.
type EmptyConfig struct{}

func (*TextConfig) isConfig()   {}
func (*ChoiceConfig) isConfig() {}
func (*SliderConfig) isConfig() {}
func (*DateConfig) isConfig()   {}
func (*FileConfig) isConfig()   {}
func (*RatingConfig) isConfig() {}
func (*EmptyConfig) isConfig()  {}

func (c *TextConfig) clone() Config {
	if c == nil {
		return nil
	}
	out := *c
	out.StyleHooks = c.StyleHooks.cloneHooks()
	return &out
}

func (c *ChoiceConfig) clone() Config {
	if c == nil {
		return nil
	}
	out := *c
	if c.Options != nil {
		out.Options = append([]Option(nil), c.Options...)
	}
	out.StyleHooks = c.StyleHooks.cloneHooks()
	return &out
}

func (c *SliderConfig) clone() Config {
	if c == nil {
		return nil
	}
	out := *c
	out.StyleHooks = c.StyleHooks.cloneHooks()
	return &out
}

func (c *DateConfig) clone() Config {
	if c == nil {
		return nil
	}
	out := *c
	out.StyleHooks = c.StyleHooks.cloneHooks()
	return &out
}

func (c *FileConfig) clone() Config {
	if c == nil {
		return nil
	}
	out := *c
	out.StyleHooks = c.StyleHooks.cloneHooks()
	return &out
}

func (c *RatingConfig) clone() Config {
	if c == nil {
		return nil
	}
	out := *c
	out.StyleHooks = c.StyleHooks.cloneHooks()
	return &out
}

func (c *EmptyConfig) clone() Config {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}

// DefaultMaxFileSize is the baseline upload limit for file fields, in bytes.
const DefaultMaxFileSize = 5_000_000

// DefaultConfig resolves the baseline configuration for a field type. It is a
// pure, total mapping: unrecognized types yield an empty configuration rather
// than an error, leaving type rejection to the caller.
func DefaultConfig(t Type) Config {
	switch t {
	case TypeText, TypeTextarea, TypeEmail, TypeNumber:
		return &TextConfig{}
	case TypeRadio, TypeCheckbox, TypeSelect:
		return &ChoiceConfig{Options: []Option{}}
	case TypeSlider:
		return &SliderConfig{Min: 0, Max: 100, Step: 1, ShowValue: true}
	case TypeDate:
		return &DateConfig{}
	case TypeFile:
		return &FileConfig{MaxFileSize: DefaultMaxFileSize}
	case TypeRating:
		return &RatingConfig{MaxRating: 5}
	default:
		return &EmptyConfig{}
	}
}
