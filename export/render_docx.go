package export

import (
	"bytes"
	"strconv"

	"github.com/fumiama/go-docx"
)

// Table width in twips for the A4 content area.
const docxTableWidth = 9000

// Half-point font sizes for the document's fixed style ladder.
const (
	docxSizeTitle    = "36"
	docxSizeHeading  = "28"
	docxSizeSection  = "26"
	docxSizeBody     = "22"
	docxSizeSmall    = "18"
	docxSizeFootnote = "16"
)

const (
	docxColorBody    = "1A1A1A"
	docxColorMuted   = "555555"
	docxColorGray    = "909090"
	docxColorCorrect = "2E7D32"
)

// DocxRendererConfig supplies dependencies for the DOCX backend.
type DocxRendererConfig struct {
	// Enabled gates the backend; nil means enabled. Hosts without the DOCX
	// capability disable it so archive builds skip the format cleanly.
	Enabled *bool
	Logos   LogoResolver
	Logger  Logger
}

// DocxRenderer renders word-processor packages with structural content
// equivalent to the PDF backend.
type DocxRenderer struct {
	enabled bool
	logos   LogoResolver
	logger  Logger
}

// NewDocxRenderer creates a DOCX renderer.
func NewDocxRenderer(cfg DocxRendererConfig) *DocxRenderer {
	logos := cfg.Logos
	if logos == nil {
		logos = NewLogoResolver()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	return &DocxRenderer{
		enabled: boolOrDefault(cfg.Enabled, true),
		logos:   logos,
		logger:  logger,
	}
}

// Available reports whether the backend capability is present.
func (r *DocxRenderer) Available() bool {
	return r != nil && r.enabled
}

// Render produces the DOCX package bytes.
func (r *DocxRenderer) Render(c *Content, b Branding, mode ViewMode) ([]byte, error) {
	if !r.Available() {
		return nil, NewError(KindUnavailable, "docx renderer unavailable", nil)
	}
	if c == nil {
		return nil, NewError(KindValidation, "content is nil", nil)
	}
	branding := ResolveBranding(b)

	doc := docx.New().WithDefaultTheme()

	r.writeHeaderTable(doc, branding)
	r.writeTitleBlock(doc, c, branding)
	r.writeStudentInfoTable(doc, branding)

	if c.Description != "" {
		p := doc.AddParagraph()
		p.AddText(c.Description).Size(docxSizeBody).Italic().Color(docxColorMuted)
	}

	number := 0
	for _, section := range layoutSections(c) {
		if section.Name != "" {
			p := doc.AddParagraph()
			p.AddText(section.Name).Size(docxSizeSection).Bold().Color(docxColorBody)
		}
		if section.Instructions != "" {
			p := doc.AddParagraph()
			p.AddText(section.Instructions).Size(docxSizeSmall).Italic().Color(docxColorMuted)
		}
		for _, q := range section.Questions {
			number++
			r.writeQuestion(doc, q, number, mode)
		}
	}

	if branding.AdditionalNotes != "" {
		p := doc.AddParagraph()
		p.AddText(branding.AdditionalNotes).Size(docxSizeSmall).Color(docxColorMuted)
	}

	// This format has no full-page transform primitives; the watermark is
	// carried as small gray trailing text instead of a diagonal overlay.
	if branding.Watermark != "" {
		p := doc.AddParagraph()
		p.Justification("center")
		p.AddText(branding.Watermark).Size(docxSizeFootnote).Color(docxColorGray)
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, NewError(KindInternal, "docx output failed", err)
	}
	return buf.Bytes(), nil
}

// writeHeaderTable emits the two-column institution + logo header.
func (r *DocxRenderer) writeHeaderTable(doc *docx.Docx, b ResolvedBranding) {
	tbl := doc.AddTable(1, 2, docxTableWidth, nil)
	row := tbl.TableRows[0]

	left := row.TableCells[0]
	for i, line := range b.HeaderLines() {
		p := left.AddParagraph()
		if i == 0 {
			p.AddText(line).Size(docxSizeHeading).Bold().Color(docxColorBody)
			continue
		}
		p.AddText(line).Size(docxSizeSmall).Color(docxColorBody)
	}

	right := row.TableCells[1]
	if b.Logo == "" {
		return
	}
	data, _, err := r.logos.Fetch(b.Logo)
	if err != nil {
		r.logger.Errorf("docx: logo %q unavailable: %v", b.Logo, err)
		right.AddParagraph().AddText("[Logo]").Size(docxSizeSmall).Italic().Color(docxColorGray)
		return
	}
	if _, err := right.AddParagraph().AddInlineDrawing(data); err != nil {
		r.logger.Errorf("docx: logo %q embed failed: %v", b.Logo, err)
		right.AddParagraph().AddText("[Logo]").Size(docxSizeSmall).Italic().Color(docxColorGray)
	}
}

func (r *DocxRenderer) writeTitleBlock(doc *docx.Docx, c *Content, b ResolvedBranding) {
	title := doc.AddParagraph()
	title.Justification("center")
	title.AddText(c.Title).Size(docxSizeTitle).Bold().Color(docxColorBody)

	for _, line := range b.MetaLines() {
		p := doc.AddParagraph()
		p.Justification("center")
		p.AddText(line).Size(docxSizeSmall).Color(docxColorMuted)
	}

	summary := pluralPoints(c.DerivedTotalPoints())
	if c.EstimatedDuration != "" {
		summary += "  |  " + c.EstimatedDuration
	}
	p := doc.AddParagraph()
	p.Justification("center")
	p.AddText(summary).Size(docxSizeSmall).Color(docxColorMuted)
}

// writeStudentInfoTable emits a grid table with one row per enabled field.
func (r *DocxRenderer) writeStudentInfoTable(doc *docx.Docx, b ResolvedBranding) {
	fields := b.StudentFields()
	if len(fields) == 0 {
		return
	}
	tbl := doc.AddTable(len(fields), 2, docxTableWidth, nil)
	for i, field := range fields {
		row := tbl.TableRows[i]
		row.TableCells[0].AddParagraph().AddText(field + ":").Size(docxSizeBody).Bold().Color(docxColorBody)
		row.TableCells[1].AddParagraph().AddText("").Size(docxSizeBody)
	}
}

func (r *DocxRenderer) writeQuestion(doc *docx.Docx, q Question, number int, mode ViewMode) {
	prompt := doc.AddParagraph()
	prompt.AddText(strconv.Itoa(number) + ". " + displayText(q)).Size(docxSizeBody).Bold().Color(docxColorBody)
	prompt.AddText(" (" + pluralPoints(q.PointsOrDefault()) + ")").Size(docxSizeFootnote).Color(docxColorMuted)

	switch q.Type {
	case QuestionMultipleChoice:
		for i, opt := range q.Options {
			letter := optionLetter(i)
			r.writeOption(doc, letter+". "+opt, mode == ViewInstructor && matchesCorrect(letter, q.CorrectAnswer))
		}
	case QuestionTrueFalse:
		for _, label := range trueFalseOptions {
			r.writeOption(doc, label, mode == ViewInstructor && matchesTrueFalse(label, q.CorrectAnswer))
		}
	case QuestionFillBlank:
		r.writeAnswerArea(doc, 1)
	default:
		if q.Type != QuestionShortAnswer && q.Type != QuestionEssay {
			doc.AddParagraph().AddText(genericAnswerLabel).Size(docxSizeBody).Color(docxColorBody)
		}
		r.writeAnswerArea(doc, answerLineCount(q.Type))
	}

	if mode == ViewInstructor {
		if answer := expectedAnswer(q); answer != "" {
			p := doc.AddParagraph()
			p.AddText("Answer: " + answer).Size(docxSizeSmall).Bold().Color(docxColorCorrect)
		}
		if q.Explanation != "" {
			p := doc.AddParagraph()
			p.AddText("Explanation: " + q.Explanation).Size(docxSizeSmall).Italic().Color(docxColorMuted)
		}
	}
}

func (r *DocxRenderer) writeOption(doc *docx.Docx, text string, highlight bool) {
	p := doc.AddParagraph()
	run := p.AddText("    " + text).Size(docxSizeBody)
	if highlight {
		run.Bold().Color(docxColorCorrect)
		return
	}
	run.Color(docxColorBody)
}

// writeAnswerArea emits a fixed-row table standing in for blank answer lines.
func (r *DocxRenderer) writeAnswerArea(doc *docx.Docx, lines int) {
	tbl := doc.AddTable(lines, 1, docxTableWidth, nil)
	for i := 0; i < lines; i++ {
		tbl.TableRows[i].TableCells[0].AddParagraph().AddText("").Size(docxSizeBody)
	}
}
