// Package builder holds the in-memory editing session behind the form
// builder. A session exclusively owns its field list until a snapshot is
// handed off for saving; all operations are synchronous and immediately
// consistent.
package builder

import (
	"strings"

	"github.com/google/uuid"

	"github.com/relayform/leadform/pkg/field"
)

// Options configures a Session. NewID defaults to uuid.NewString.
type Options struct {
	NewID func() string
}

// Session is the mutable builder state: an ordered field list plus the
// transient editing flags the canvas needs. It is owned by a single caller
// and is not safe for concurrent use.
type Session struct {
	fields      []field.FormField
	selectedID  string
	dragging    bool
	previewMode bool
	newID       func() string
}

// New creates an empty session.
func New(options Options) *Session {
	newID := options.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	return &Session{newID: newID}
}

// Hydrate creates a session pre-populated from a loaded form. Field order is
// normalized to match list position.
func Hydrate(fields []field.FormField, options Options) *Session {
	session := New(options)
	session.fields = make([]field.FormField, 0, len(fields))
	for index, f := range fields {
		clone := f.Clone()
		clone.Order = index
		session.fields = append(session.fields, clone)
	}
	return session
}

// Add appends a new field of the given type, seeded with the type's default
// configuration, a fresh id, and the next order slot. The new field is
// selected. A copy of the stored field is returned.
func (s *Session) Add(t field.Type) field.FormField {
	f := field.FormField{
		ID:     s.newID(),
		Type:   t,
		Label:  defaultLabel(t),
		Order:  len(s.fields),
		Config: field.DefaultConfig(t),
	}
	s.fields = append(s.fields, f)
	s.selectedID = f.ID
	return f.Clone()
}

// Patch describes a partial field update. Nil members leave the current value
// untouched; ClearConditional removes the conditional rule outright.
type Patch struct {
	Label            *string
	Placeholder      *string
	Description      *string
	Required         *bool
	Options          *[]string
	Validation       *field.ValidationRules
	Config           field.Config
	Conditional      *field.ConditionalLogic
	ClearConditional bool
}

// Update applies a patch to the identified field. It reports false when the
// id is unknown.
func (s *Session) Update(id string, patch Patch) bool {
	index := s.indexOf(id)
	if index < 0 {
		return false
	}

	f := &s.fields[index]
	if patch.Label != nil {
		f.Label = *patch.Label
	}
	if patch.Placeholder != nil {
		f.Placeholder = *patch.Placeholder
	}
	if patch.Description != nil {
		f.Description = *patch.Description
	}
	if patch.Required != nil {
		f.Required = *patch.Required
	}
	if patch.Options != nil {
		f.Options = append([]string(nil), (*patch.Options)...)
	}
	if patch.Validation != nil {
		f.Validation = *patch.Validation
	}
	if patch.Config != nil {
		f.Config = patch.Config
	}
	if patch.ClearConditional {
		f.Conditional = nil
	} else if patch.Conditional != nil {
		cond := *patch.Conditional
		cond.ShowIf = append([]field.Condition(nil), patch.Conditional.ShowIf...)
		f.Conditional = &cond
	}
	return true
}

// Remove deletes the identified field and prunes conditional-logic references
// to it from the remaining fields, so no rule is left pointing at a field
// that no longer exists. It reports false when the id is unknown.
func (s *Session) Remove(id string) bool {
	index := s.indexOf(id)
	if index < 0 {
		return false
	}

	s.fields = append(s.fields[:index], s.fields[index+1:]...)
	for i := range s.fields {
		s.fields[i].Order = i
		pruneConditions(&s.fields[i], id)
	}
	if s.selectedID == id {
		s.selectedID = ""
	}
	return true
}

func pruneConditions(f *field.FormField, removedID string) {
	if f.Conditional == nil {
		return
	}
	kept := f.Conditional.ShowIf[:0]
	for _, cond := range f.Conditional.ShowIf {
		if cond.FieldID != removedID {
			kept = append(kept, cond)
		}
	}
	if len(kept) == 0 {
		f.Conditional = nil
		return
	}
	f.Conditional.ShowIf = kept
}

// Reorder rearranges fields to match the given id sequence. Unknown ids are
// ignored; fields missing from the sequence keep their relative order after
// the reordered prefix. Order values are reassigned to match list position.
func (s *Session) Reorder(ids []string) {
	if len(ids) == 0 {
		return
	}

	byID := make(map[string]int, len(s.fields))
	for index, f := range s.fields {
		byID[f.ID] = index
	}

	taken := make(map[string]bool, len(ids))
	reordered := make([]field.FormField, 0, len(s.fields))
	for _, id := range ids {
		index, ok := byID[id]
		if !ok || taken[id] {
			continue
		}
		taken[id] = true
		reordered = append(reordered, s.fields[index])
	}
	for _, f := range s.fields {
		if !taken[f.ID] {
			reordered = append(reordered, f)
		}
	}

	for index := range reordered {
		reordered[index].Order = index
	}
	s.fields = reordered
}

// Select marks a field as the one being edited. An empty id clears the
// selection; unknown ids also clear it rather than keeping a stale pointer.
func (s *Session) Select(id string) {
	if id == "" || s.indexOf(id) < 0 {
		s.selectedID = ""
		return
	}
	s.selectedID = id
}

// Selected returns the currently selected field, if any.
func (s *Session) Selected() (field.FormField, bool) {
	index := s.indexOf(s.selectedID)
	if index < 0 {
		return field.FormField{}, false
	}
	return s.fields[index].Clone(), true
}

// SetPreviewMode toggles the preview flag.
func (s *Session) SetPreviewMode(on bool) { s.previewMode = on }

// PreviewMode reports whether the session is in preview mode.
func (s *Session) PreviewMode() bool { return s.previewMode }

// SetDragging toggles the drag-in-progress flag.
func (s *Session) SetDragging(on bool) { s.dragging = on }

// Dragging reports whether a drag operation is in progress.
func (s *Session) Dragging() bool { return s.dragging }

// Len returns the number of fields in the session.
func (s *Session) Len() int { return len(s.fields) }

// Field returns a copy of the identified field.
func (s *Session) Field(id string) (field.FormField, bool) {
	index := s.indexOf(id)
	if index < 0 {
		return field.FormField{}, false
	}
	return s.fields[index].Clone(), true
}

// Snapshot returns a deep copy of the field list in display order, suitable
// for handing to the save flow without exposing session-owned state.
func (s *Session) Snapshot() []field.FormField {
	out := make([]field.FormField, 0, len(s.fields))
	for _, f := range s.fields {
		out = append(out, f.Clone())
	}
	return out
}

func (s *Session) indexOf(id string) int {
	if strings.TrimSpace(id) == "" {
		return -1
	}
	for index, f := range s.fields {
		if f.ID == id {
			return index
		}
	}
	return -1
}

var typeLabels = map[field.Type]string{
	field.TypeText:     "Text field",
	field.TypeTextarea: "Paragraph field",
	field.TypeEmail:    "Email field",
	field.TypeNumber:   "Number field",
	field.TypeRadio:    "Multiple choice",
	field.TypeCheckbox: "Checkboxes",
	field.TypeSelect:   "Dropdown",
	field.TypeSlider:   "Slider",
	field.TypeDate:     "Date field",
	field.TypeFile:     "File upload",
	field.TypeRating:   "Rating",
}

func defaultLabel(t field.Type) string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return "Untitled field"
}
