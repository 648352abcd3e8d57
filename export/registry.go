package export

import (
	"fmt"
	"sync"
)

// RendererRegistry stores renderers by format.
type RendererRegistry struct {
	mu        sync.RWMutex
	renderers map[Format]Renderer
}

// NewRendererRegistry creates a registry.
func NewRendererRegistry() *RendererRegistry {
	return &RendererRegistry{renderers: make(map[Format]Renderer)}
}

// Register adds a renderer for a format.
func (r *RendererRegistry) Register(format Format, renderer Renderer) error {
	if format == "" {
		return NewError(KindValidation, "renderer format is required", nil)
	}
	if renderer == nil {
		return NewError(KindValidation, "renderer is required", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.renderers[format]; exists {
		return NewError(KindValidation, fmt.Sprintf("renderer for %q already registered", format), nil)
	}
	r.renderers[format] = renderer
	return nil
}

// Replace swaps the renderer for a format, registering it if absent.
func (r *RendererRegistry) Replace(format Format, renderer Renderer) error {
	if format == "" {
		return NewError(KindValidation, "renderer format is required", nil)
	}
	if renderer == nil {
		return NewError(KindValidation, "renderer is required", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[format] = renderer
	return nil
}

// Resolve returns the renderer for the format.
func (r *RendererRegistry) Resolve(format Format) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[format]
	return renderer, ok
}

// Available reports whether a renderer exists for the format and, when it
// reports availability, whether its backend capability is present.
func (r *RendererRegistry) Available(format Format) bool {
	renderer, ok := r.Resolve(format)
	if !ok {
		return false
	}
	if reporter, ok := renderer.(AvailabilityReporter); ok {
		return reporter.Available()
	}
	return true
}
