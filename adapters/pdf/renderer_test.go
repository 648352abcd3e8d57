package printpdf

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/quizkit/go-assessment-export/export"
)

func testContent() *export.Content {
	return &export.Content{
		Title: "Quiz",
		Questions: []export.Question{
			{Type: export.QuestionEssay, Text: "Discuss."},
		},
	}
}

func TestRenderer_Disabled(t *testing.T) {
	r := Renderer{Enabled: false}
	if r.Available() {
		t.Fatalf("expected unavailable")
	}
	_, err := r.Render(testContent(), export.Branding{}, export.ViewStudent)
	if err == nil {
		t.Fatalf("expected error")
	}
	exportErr, ok := err.(*export.ExportError)
	if !ok || exportErr.Kind != export.KindUnavailable {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestRenderer_PrintsHTMLThroughEngine(t *testing.T) {
	var captured RenderRequest
	r := Renderer{
		Enabled: true,
		HTML:    export.NewHTMLRenderer(),
		Engine: EngineFunc(func(ctx context.Context, req RenderRequest) ([]byte, error) {
			captured = req
			return []byte("%PDF-1.7 printed"), nil
		}),
		Options: PrintOptions{PageSize: "A4"},
	}

	out, err := r.Render(testContent(), export.Branding{}, export.ViewStudent)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("unexpected output %q", out)
	}
	if !bytes.Contains(captured.HTML, []byte("Discuss.")) {
		t.Fatalf("engine did not receive rendered html")
	}
	if captured.Options.PageSize != "A4" {
		t.Fatalf("options not forwarded: %+v", captured.Options)
	}
}

func TestRenderer_EngineErrorPropagates(t *testing.T) {
	r := Renderer{
		Enabled: true,
		HTML:    export.NewHTMLRenderer(),
		Engine: EngineFunc(func(context.Context, RenderRequest) ([]byte, error) {
			return nil, errors.New("browser crashed")
		}),
	}
	if _, err := r.Render(testContent(), export.Branding{}, export.ViewStudent); err == nil {
		t.Fatalf("expected engine error")
	}
}

func TestRenderer_EmptyEngineOutput(t *testing.T) {
	r := Renderer{
		Enabled: true,
		HTML:    export.NewHTMLRenderer(),
		Engine:  EngineFunc(func(context.Context, RenderRequest) ([]byte, error) { return nil, nil }),
	}
	_, err := r.Render(testContent(), export.Branding{}, export.ViewStudent)
	if err == nil {
		t.Fatalf("expected empty output error")
	}
}

func TestRenderer_TimeoutApplied(t *testing.T) {
	r := Renderer{
		Enabled: true,
		HTML:    export.NewHTMLRenderer(),
		Timeout: time.Minute,
		Engine: EngineFunc(func(ctx context.Context, req RenderRequest) ([]byte, error) {
			if _, ok := ctx.Deadline(); !ok {
				return nil, errors.New("expected deadline")
			}
			return []byte("%PDF-"), nil
		}),
	}
	if _, err := r.Render(testContent(), export.Branding{}, export.ViewStudent); err != nil {
		t.Fatalf("render: %v", err)
	}
}

func TestRenderer_MissingDependencies(t *testing.T) {
	r := Renderer{Enabled: true}
	if _, err := r.Render(testContent(), export.Branding{}, export.ViewStudent); err == nil {
		t.Fatalf("expected missing html renderer error")
	}
	r.HTML = export.NewHTMLRenderer()
	if _, err := r.Render(testContent(), export.Branding{}, export.ViewStudent); err == nil {
		t.Fatalf("expected missing engine error")
	}
}

func TestParseLengthInches(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1in", 1},
		{"2.54cm", 1},
		{"25.4mm", 1},
		{"72pt", 1},
		{"96px", 1},
		{"0.5", 0.5},
	}
	for _, tc := range cases {
		got, err := parseLengthInches(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("parse %q = %v, want %v", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"", "abc", "10furlong", "-1in"} {
		if _, err := parseLengthInches(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
