package export

import (
	"encoding/json"
	"time"
)

// jsonEnvelope wraps content and branding for pass-through export.
type jsonEnvelope struct {
	Content    *Content  `json:"content"`
	Branding   Branding  `json:"branding"`
	ViewMode   ViewMode  `json:"view_mode"`
	ExportedAt time.Time `json:"exported_at"`
}

// JSONRenderer is a pass-through: no layout, just the content model plus
// branding and an export timestamp in an envelope.
type JSONRenderer struct {
	// Now stamps the envelope. Inject a fixed clock for byte-identical output.
	Now func() time.Time
}

// NewJSONRenderer creates a JSON renderer.
func NewJSONRenderer(now func() time.Time) JSONRenderer {
	return JSONRenderer{Now: now}
}

// Render marshals the envelope with stable field ordering.
func (r JSONRenderer) Render(c *Content, b Branding, mode ViewMode) ([]byte, error) {
	if c == nil {
		return nil, NewError(KindValidation, "content is nil", nil)
	}
	now := r.Now
	if now == nil {
		now = time.Now
	}
	payload, err := json.MarshalIndent(jsonEnvelope{
		Content:    c,
		Branding:   b,
		ViewMode:   mode,
		ExportedAt: now().UTC(),
	}, "", "  ")
	if err != nil {
		return nil, NewError(KindInternal, "json envelope marshal failed", err)
	}
	return append(payload, '\n'), nil
}
