package export

import (
	"context"
	"io"
	"time"
)

// Format is the export output format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDocx Format = "docx"
	FormatHTML Format = "html"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
	FormatZip  Format = "zip"
)

// ViewMode selects student-facing or instructor-facing output.
type ViewMode string

const (
	ViewStudent    ViewMode = "student"
	ViewInstructor ViewMode = "instructor"
)

// QuestionType identifies the layout policy used for a question.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionShortAnswer    QuestionType = "short_answer"
	QuestionFillBlank      QuestionType = "fill_blank"
	QuestionEssay          QuestionType = "essay"
)

// ContentType identifies the assessment layout.
type ContentType string

const (
	ContentQuiz ContentType = "quiz"
	ContentExam ContentType = "exam"
)

// Question is a single assessment item.
type Question struct {
	ID            string       `json:"id,omitempty"`
	Type          QuestionType `json:"type"`
	Text          string       `json:"text"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer,omitempty"`
	Explanation   string       `json:"explanation,omitempty"`
	Points        int          `json:"points,omitempty"`
	Difficulty    string       `json:"difficulty,omitempty"`
}

// Section groups questions under a name and optional instructions (exam layout).
type Section struct {
	Name         string     `json:"name"`
	Instructions string     `json:"instructions,omitempty"`
	Questions    []Question `json:"questions"`
}

// Content is the canonical, format-neutral assessment document.
//
// Either Questions or Sections is populated; when both are set the sections
// take precedence. A TotalPoints of zero means "derive from questions".
type Content struct {
	Title             string      `json:"title"`
	Description       string      `json:"description,omitempty"`
	Type              ContentType `json:"type"`
	Questions         []Question  `json:"questions,omitempty"`
	Sections          []Section   `json:"sections,omitempty"`
	TotalPoints       int         `json:"total_points,omitempty"`
	EstimatedDuration string      `json:"estimated_duration,omitempty"`
}

// StudentInfo controls which student identification fields are emitted.
// Nil pointers fall back to defaults: name, id and signature on, date off.
type StudentInfo struct {
	IncludeStudentName *bool `json:"include_student_name,omitempty"`
	IncludeStudentID   *bool `json:"include_student_id,omitempty"`
	IncludeSignature   *bool `json:"include_signature,omitempty"`
	IncludeDateField   *bool `json:"include_date_field,omitempty"`
}

// Branding carries institutional metadata merged into every rendering.
type Branding struct {
	Institution     string      `json:"institution_name,omitempty"`
	Faculty         string      `json:"faculty,omitempty"`
	Department      string      `json:"department,omitempty"`
	Course          string      `json:"course,omitempty"`
	AcademicYear    string      `json:"academic_year,omitempty"`
	Semester        string      `json:"semester,omitempty"`
	Instructor      string      `json:"instructor,omitempty"`
	ExamDate        string      `json:"exam_date,omitempty"`
	StudentInfo     StudentInfo `json:"student_info,omitempty"`
	Logo            string      `json:"logo,omitempty"`
	Watermark       string      `json:"watermark,omitempty"`
	AdditionalNotes string      `json:"additional_notes,omitempty"`
}

// Version is a deterministically reordered content variant.
type Version struct {
	Label   string
	Seed    uint64
	Content *Content
}

// ExportResult captures the outcome of a single export.
type ExportResult struct {
	Success           bool         `json:"success"`
	ExportID          string       `json:"export_id,omitempty"`
	Bytes             []byte       `json:"-"`
	Filename          string       `json:"filename,omitempty"`
	MIMEType          string       `json:"mime_type,omitempty"`
	Error             string       `json:"error,omitempty"`
	AnswerKeyBytes    []byte       `json:"-"`
	AnswerKeyFilename string       `json:"answer_key_filename,omitempty"`
	Artifact          *ArtifactRef `json:"artifact,omitempty"`
}

// Renderer turns (content, branding, view mode) into a byte payload.
//
// Implementations must not mutate their arguments, must fill defaults for
// missing optional branding fields, and must be safe for concurrent use
// after construction.
type Renderer interface {
	Render(c *Content, b Branding, mode ViewMode) ([]byte, error)
}

// RendererFunc adapts a function to a Renderer.
type RendererFunc func(c *Content, b Branding, mode ViewMode) ([]byte, error)

func (f RendererFunc) Render(c *Content, b Branding, mode ViewMode) ([]byte, error) {
	if f == nil {
		return nil, NewError(KindInternal, "renderer func is nil", nil)
	}
	return f(c, b, mode)
}

// AvailabilityReporter is implemented by renderers whose backend capability
// may be absent at runtime.
type AvailabilityReporter interface {
	Available() bool
}

// FontRequirement describes the font a renderer asks for.
type FontRequirement struct {
	Unicode bool
	Styles  []string
}

// FontDescriptor is the resolver's answer: either TTF files keyed by style,
// or a guaranteed built-in core font.
type FontDescriptor struct {
	Family string
	Files  map[string]string
	Core   bool
}

// FontResolver resolves font requirements to the best available descriptor.
type FontResolver interface {
	Resolve(req FontRequirement) FontDescriptor
}

// LogoResolver fetches a logo reference (file path or URL) as image bytes
// plus an image type hint ("png", "jpg", ...).
type LogoResolver interface {
	Fetch(ref string) ([]byte, string, error)
}

// Logger provides logging hooks.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger is a no-op logger.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// ArtifactMeta captures stored artifact metadata.
type ArtifactMeta struct {
	ContentType string
	Size        int64
	Filename    string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// ArtifactRef references a stored artifact.
type ArtifactRef struct {
	Key  string
	Meta ArtifactMeta
}

// ArtifactStore stores export artifacts.
type ArtifactStore interface {
	Put(ctx context.Context, key string, r io.Reader, meta ArtifactMeta) (ArtifactRef, error)
	Open(ctx context.Context, key string) (io.ReadCloser, ArtifactMeta, error)
	Delete(ctx context.Context, key string) error
}
