package submission

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Sanitize strips active HTML and script content from free-text input. The
// operation is idempotent: sanitizing an already-sanitized string returns it
// unchanged.
func Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	return textSanitizer().Sanitize(raw)
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.UGCPolicy()
	})
	return textPolicy
}
