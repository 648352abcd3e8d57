package printpdf

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/quizkit/go-assessment-export/export"
)

// PrintOptions configures page geometry for print engines. Lengths accept
// "in", "cm", "mm", "pt" and "px" suffixes.
type PrintOptions struct {
	PageSize        string
	Landscape       *bool
	PrintBackground *bool
	Scale           float64
	MarginTop       string
	MarginBottom    string
	MarginLeft      string
	MarginRight     string
}

// RenderRequest contains HTML input and print options for PDF engines.
type RenderRequest struct {
	HTML    []byte
	Options PrintOptions
}

// Engine prints HTML content into PDF bytes.
type Engine interface {
	Render(ctx context.Context, req RenderRequest) ([]byte, error)
}

// EngineFunc adapts a function to an Engine.
type EngineFunc func(ctx context.Context, req RenderRequest) ([]byte, error)

func (f EngineFunc) Render(ctx context.Context, req RenderRequest) ([]byte, error) {
	if f == nil {
		return nil, errors.New("pdf engine func is nil")
	}
	return f(ctx, req)
}

// Renderer prints the HTML backend's output to PDF through an Engine. It
// implements export.Renderer and export.AvailabilityReporter.
type Renderer struct {
	Enabled bool
	HTML    export.Renderer
	Engine  Engine
	Options PrintOptions
	Timeout time.Duration
}

// Available reports whether the print capability is enabled.
func (r Renderer) Available() bool {
	return r.Enabled
}

// Render renders the content as HTML and converts it to PDF.
func (r Renderer) Render(c *export.Content, b export.Branding, mode export.ViewMode) ([]byte, error) {
	if !r.Enabled {
		return nil, export.NewError(export.KindUnavailable, "pdf print renderer is disabled", nil)
	}
	if r.HTML == nil {
		return nil, export.NewError(export.KindValidation, "pdf print renderer requires an html renderer", nil)
	}
	if r.Engine == nil {
		return nil, export.NewError(export.KindValidation, "pdf print renderer requires an engine", nil)
	}

	page, err := r.HTML.Render(c, b, mode)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	pdf, err := r.Engine.Render(ctx, RenderRequest{HTML: page, Options: r.Options})
	if err != nil {
		return nil, err
	}
	if len(pdf) == 0 {
		return nil, export.NewError(export.KindInternal, "pdf engine returned empty output", nil)
	}
	return pdf, nil
}

var printPageSizesInches = map[string]struct {
	width  float64
	height float64
}{
	"A3":     {width: 11.69, height: 16.54},
	"A4":     {width: 8.27, height: 11.69},
	"A5":     {width: 5.83, height: 8.27},
	"LETTER": {width: 8.5, height: 11},
	"LEGAL":  {width: 8.5, height: 14},
}

func parseLengthInches(value string) (float64, error) {
	matches := printLengthPattern.FindStringSubmatch(value)
	if len(matches) != 3 {
		return 0, export.NewError(export.KindValidation, fmt.Sprintf("invalid print length: %s", value), nil)
	}

	raw := matches[1]
	unit := strings.ToLower(matches[2])
	if unit == "" {
		unit = "in"
	}

	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, export.NewError(export.KindValidation, fmt.Sprintf("invalid print length: %s", value), err)
	}

	switch unit {
	case "in":
		return amount, nil
	case "cm":
		return amount / 2.54, nil
	case "mm":
		return amount / 25.4, nil
	case "pt":
		return amount / 72.0, nil
	case "px":
		return amount / 96.0, nil
	default:
		return 0, export.NewError(export.KindValidation, fmt.Sprintf("unsupported print length unit: %s", unit), nil)
	}
}
