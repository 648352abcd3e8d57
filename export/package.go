package export

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"time"
)

// ManifestName is the archive manifest entry, always written.
const ManifestName = "metadata.json"

// PackageRequest describes a multi-version, multi-format archive build.
type PackageRequest struct {
	Content          *Content
	Branding         Branding
	Versions         []string
	Formats          []Format
	IncludeAnswerKey bool
}

// EntryResult records one attempted archive entry.
type EntryResult struct {
	Name    string `json:"name"`
	Format  Format `json:"format"`
	Version string `json:"version"`
	Error   string `json:"error,omitempty"`
}

// BuildReport is the per-entry side channel for partial failures. The
// archive itself stays silent about them.
type BuildReport struct {
	Entries []EntryResult
}

// Failed returns the entries that could not be rendered.
func (r BuildReport) Failed() []EntryResult {
	var out []EntryResult
	for _, e := range r.Entries {
		if e.Error != "" {
			out = append(out, e)
		}
	}
	return out
}

// packageManifest is the metadata.json payload.
type packageManifest struct {
	Title       string      `json:"title"`
	ContentType ContentType `json:"content_type"`
	Versions    []string    `json:"versions"`
	Formats     []Format    `json:"formats"`
	ExportedAt  time.Time   `json:"exported_at"`
	Branding    Branding    `json:"branding"`
}

// PackageBuilder fans out over (version x format) pairs and collects the
// results into a zip archive plus a manifest.
type PackageBuilder struct {
	Renderers *RendererRegistry
	Logger    Logger
	Now       func() time.Time
}

// NewPackageBuilder creates a builder over a renderer registry.
func NewPackageBuilder(renderers *RendererRegistry) *PackageBuilder {
	return &PackageBuilder{
		Renderers: renderers,
		Logger:    NopLogger{},
		Now:       time.Now,
	}
}

// Build renders every (version, format) pair into archive entries. Each
// version's shuffled content is computed once and shared across formats. A
// failing entry is logged and recorded in the report but never aborts the
// rest of the matrix; the build fails only when the archive itself cannot
// be produced.
func (b *PackageBuilder) Build(req PackageRequest) ([]byte, BuildReport, error) {
	report := BuildReport{}
	if b == nil || b.Renderers == nil {
		return nil, report, NewError(KindInternal, "package builder is not configured", nil)
	}
	if req.Content == nil {
		return nil, report, NewError(KindValidation, "content is nil", nil)
	}
	if err := req.Content.Validate(); err != nil {
		return nil, report, err
	}
	logger := b.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	now := b.Now
	if now == nil {
		now = time.Now
	}

	versions := req.Versions
	if len(versions) == 0 {
		versions = DefaultZipVersions
	}
	if len(req.Formats) == 0 {
		return nil, report, NewError(KindValidation, "at least one format is required", nil)
	}

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	stamp := now()

	for _, version := range GenerateVersions(req.Content, versions) {
		for _, format := range req.Formats {
			entry := b.buildEntry(zw, version, format, req, stamp)
			report.Entries = append(report.Entries, entry)
			if entry.Error != "" {
				logger.Errorf("package: entry %s version %s failed: %s", format, version.Label, entry.Error)
			}
		}
	}

	manifest := packageManifest{
		Title:       req.Content.Title,
		ContentType: req.Content.Type,
		Versions:    versions,
		Formats:     req.Formats,
		ExportedAt:  stamp.UTC(),
		Branding:    req.Branding,
	}
	if err := writeManifest(zw, manifest); err != nil {
		return nil, report, NewError(KindInternal, "package manifest write failed", err)
	}

	if err := zw.Close(); err != nil {
		return nil, report, NewError(KindInternal, "package archive close failed", err)
	}
	return buf.Bytes(), report, nil
}

// buildEntry renders one (version, format) pair and writes it, plus the PDF
// answer key when requested.
func (b *PackageBuilder) buildEntry(zw *zip.Writer, version Version, format Format, req PackageRequest, now time.Time) EntryResult {
	name, err := renderFilename("", version.Content, version.Label, format, now)
	if err != nil {
		return EntryResult{Format: format, Version: version.Label, Error: err.Error()}
	}
	entry := EntryResult{Name: name, Format: format, Version: version.Label}

	renderer, ok := b.Renderers.Resolve(format)
	if !ok {
		entry.Error = "no renderer registered for format " + string(format)
		return entry
	}

	payload, err := renderer.Render(version.Content, req.Branding, ViewStudent)
	if err != nil {
		entry.Error = err.Error()
		return entry
	}
	if err := writeEntry(zw, name, payload); err != nil {
		entry.Error = err.Error()
		return entry
	}

	if format == FormatPDF && req.IncludeAnswerKey {
		key, err := renderer.Render(version.Content, req.Branding, ViewInstructor)
		if err != nil {
			entry.Error = "answer key: " + err.Error()
			return entry
		}
		if err := writeEntry(zw, answerKeyFilename(name), key); err != nil {
			entry.Error = "answer key: " + err.Error()
			return entry
		}
	}
	return entry
}

func writeEntry(zw *zip.Writer, name string, payload []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

func writeManifest(zw *zip.Writer, manifest packageManifest) error {
	w, err := zw.Create(ManifestName)
	if err != nil {
		return err
	}
	payload, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(payload, '\n'))
	return err
}
