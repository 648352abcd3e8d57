package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ExportRequest captures a single export invocation.
type ExportRequest struct {
	Content *Content
	Format  Format
	// Branding wins over BrandingOptions when both are set.
	Branding         *Branding
	BrandingOptions  map[string]any
	IncludeAnswerKey bool
	Versions         []string
	FilenamePattern  string
}

// ServiceConfig supplies dependencies for the coordinator.
type ServiceConfig struct {
	Renderers   *RendererRegistry
	Store       ArtifactStore
	Logger      Logger
	Fonts       FontResolver
	Logos       LogoResolver
	Now         func() time.Time
	IDGenerator func() string
}

// Service is the top-level export coordinator: format dispatch, version
// defaulting, answer-key generation and error normalization. It is the only
// component aware of external collaborators such as artifact storage.
type Service struct {
	renderers *RendererRegistry
	builder   *PackageBuilder
	store     ArtifactStore
	logger    Logger
	now       func() time.Time
	idGen     func() string
}

// NewService creates a coordinator. A nil registry gets the default backends
// registered: pdf, docx, html, json and xlsx.
func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	idGen := cfg.IDGenerator
	if idGen == nil {
		idGen = uuid.NewString
	}

	renderers := cfg.Renderers
	if renderers == nil {
		renderers = NewRendererRegistry()
		_ = renderers.Register(FormatPDF, NewPDFRenderer(PDFRendererConfig{
			Fonts:  cfg.Fonts,
			Logos:  cfg.Logos,
			Logger: logger,
			Now:    now,
		}))
		_ = renderers.Register(FormatDocx, NewDocxRenderer(DocxRendererConfig{
			Logos:  cfg.Logos,
			Logger: logger,
		}))
		_ = renderers.Register(FormatHTML, NewHTMLRenderer())
		_ = renderers.Register(FormatJSON, NewJSONRenderer(now))
		_ = renderers.Register(FormatXLSX, NewXLSXRenderer())
	}

	builder := NewPackageBuilder(renderers)
	builder.Logger = logger
	builder.Now = now

	return &Service{
		renderers: renderers,
		builder:   builder,
		store:     cfg.Store,
		logger:    logger,
		now:       now,
		idGen:     idGen,
	}
}

// Renderers exposes the registry so hosts can swap or disable backends.
func (s *Service) Renderers() *RendererRegistry {
	return s.renderers
}

// ExportContent dispatches a single export by format. It never raises:
// unexpected failures are normalized into an unsuccessful result.
func (s *Service) ExportContent(ctx context.Context, req ExportRequest) (result ExportResult) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Errorf("export: recovered panic: %v", rec)
			result = failure(fmt.Sprintf("internal error: %v", rec))
		}
	}()

	if req.Content == nil {
		return failure("content is required")
	}
	if err := req.Content.Validate(); err != nil {
		return failure(AsGoError(err).Error())
	}

	format := NormalizeFormat(req.Format)
	if !formatSupported(format) {
		return failure(fmt.Sprintf("unsupported format %q", req.Format))
	}

	branding := s.resolveRequestBranding(req)

	var err error
	switch format {
	case FormatZip:
		result, err = s.exportArchive(req, branding)
	default:
		result, err = s.exportSingle(req, format, branding)
	}
	if err != nil {
		return failure(AsGoError(err).Error())
	}

	result.Success = true
	result.ExportID = s.idGen()
	if s.store != nil {
		s.persist(ctx, &result)
	}
	return result
}

func (s *Service) resolveRequestBranding(req ExportRequest) Branding {
	if req.Branding != nil {
		return *req.Branding
	}
	return ParseBrandingOptions(req.BrandingOptions)
}

// exportSingle renders one format for the first requested version, shuffled
// through the version generator (label "A" when omitted). JSON exports with
// no explicit version request skip the shuffle so the envelope carries the
// caller's question order.
func (s *Service) exportSingle(req ExportRequest, format Format, branding Branding) (ExportResult, error) {
	renderer, ok := s.renderers.Resolve(format)
	if !ok {
		return ExportResult{}, NewError(KindUnavailable, fmt.Sprintf("no renderer registered for format %q", format), nil)
	}

	label := DefaultVersion
	if len(req.Versions) > 0 {
		label = req.Versions[0]
	}
	content := req.Content
	if format != FormatJSON || len(req.Versions) > 0 {
		content = NewVersion(req.Content, label).Content
	}

	payload, err := renderer.Render(content, branding, ViewStudent)
	if err != nil {
		return ExportResult{}, err
	}

	filename, err := renderFilename(req.FilenamePattern, content, label, format, s.now())
	if err != nil {
		return ExportResult{}, NewError(KindValidation, "invalid filename pattern", err)
	}

	result := ExportResult{
		Bytes:    payload,
		Filename: filename,
		MIMEType: ContentTypeForFormat(format),
	}

	if format == FormatPDF && req.IncludeAnswerKey {
		key, err := renderer.Render(content, branding, ViewInstructor)
		if err != nil {
			return ExportResult{}, err
		}
		result.AnswerKeyBytes = key
		result.AnswerKeyFilename = answerKeyFilename(filename)
	}
	return result, nil
}

// exportArchive bundles pdf + html, and docx only when that backend reports
// its capability available.
func (s *Service) exportArchive(req ExportRequest, branding Branding) (ExportResult, error) {
	formats := []Format{FormatPDF, FormatHTML}
	if s.renderers.Available(FormatDocx) {
		formats = append(formats, FormatDocx)
	}

	versions := req.Versions
	if len(versions) == 0 {
		versions = DefaultZipVersions
	}

	payload, report, err := s.builder.Build(PackageRequest{
		Content:          req.Content,
		Branding:         branding,
		Versions:         versions,
		Formats:          formats,
		IncludeAnswerKey: req.IncludeAnswerKey,
	})
	if err != nil {
		return ExportResult{}, err
	}
	for _, failed := range report.Failed() {
		s.logger.Errorf("export: archive entry %s (version %s) failed: %s", failed.Format, failed.Version, failed.Error)
	}

	return ExportResult{
		Bytes:    payload,
		Filename: sanitizeFilename(req.Content.Title) + "_Versions.zip",
		MIMEType: ContentTypeForFormat(FormatZip),
	}, nil
}

// persist stores the artifact; storage failures degrade the result's
// artifact reference, not the export itself.
func (s *Service) persist(ctx context.Context, result *ExportResult) {
	meta := ArtifactMeta{
		ContentType: result.MIMEType,
		Filename:    result.Filename,
		CreatedAt:   s.now(),
	}
	ref, err := s.store.Put(ctx, result.ExportID+"/"+result.Filename, bytes.NewReader(result.Bytes), meta)
	if err != nil {
		s.logger.Errorf("export: artifact store failed for %s: %v", result.Filename, err)
		return
	}
	result.Artifact = &ref
}

func failure(msg string) ExportResult {
	return ExportResult{Success: false, Error: msg}
}
