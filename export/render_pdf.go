package export

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
)

// Page geometry in millimeters, A4 portrait.
const (
	pdfMarginLeft   = 18.0
	pdfMarginTop    = 16.0
	pdfMarginRight  = 18.0
	pdfMarginBottom = 24.0

	pdfLogoWidth  = 26.0
	pdfLogoHeight = 16.0
)

// pdfStyle holds explicit size/spacing/alignment/indent attributes for one
// named style.
type pdfStyle struct {
	Size        float64
	Line        float64
	Style       string
	Align       string
	Indent      float64
	SpaceBefore float64
	SpaceAfter  float64
}

// pdfStyleSet is the named style registry, built once per renderer instance
// and read-only afterwards.
type pdfStyleSet struct {
	Title          pdfStyle
	Subtitle       pdfStyle
	SectionHeader  pdfStyle
	Instructions   pdfStyle
	Question       pdfStyle
	QuestionNumber pdfStyle
	Option         pdfStyle
	AnswerLine     pdfStyle
	Answer         pdfStyle
}

func defaultPDFStyles() pdfStyleSet {
	return pdfStyleSet{
		Title:          pdfStyle{Size: 18, Line: 9, Style: "B", Align: "C", SpaceBefore: 2, SpaceAfter: 2},
		Subtitle:       pdfStyle{Size: 11, Line: 6, Align: "C", SpaceAfter: 1},
		SectionHeader:  pdfStyle{Size: 13, Line: 8, Style: "B", Align: "L", SpaceBefore: 6, SpaceAfter: 2},
		Instructions:   pdfStyle{Size: 10, Line: 5.5, Style: "I", Align: "L", Indent: 2, SpaceAfter: 3},
		Question:       pdfStyle{Size: 11, Line: 6, Align: "L", SpaceBefore: 4},
		QuestionNumber: pdfStyle{Size: 11, Line: 6, Style: "B", Align: "L"},
		Option:         pdfStyle{Size: 10.5, Line: 6, Align: "L", Indent: 8},
		AnswerLine:     pdfStyle{Size: 10.5, Line: 8, Align: "L", Indent: 8},
		Answer:         pdfStyle{Size: 10, Line: 5.5, Align: "L", Indent: 8, SpaceBefore: 1.5},
	}
}

// PDFRendererConfig supplies dependencies for the PDF backend.
type PDFRendererConfig struct {
	Fonts  FontResolver
	Logos  LogoResolver
	Logger Logger
	// Now stamps the document creation date. Inject a fixed clock for
	// byte-identical output.
	Now func() time.Time
}

// PDFRenderer renders fixed-page PDF documents. Style and font state is
// immutable after construction, so one instance serves concurrent calls.
type PDFRenderer struct {
	font   FontDescriptor
	logos  LogoResolver
	logger Logger
	now    func() time.Time
	styles pdfStyleSet
}

// NewPDFRenderer creates a PDF renderer, resolving fonts up front.
func NewPDFRenderer(cfg PDFRendererConfig) *PDFRenderer {
	fonts := cfg.Fonts
	if fonts == nil {
		fonts = NewFilesystemFontResolver()
	}
	logos := cfg.Logos
	if logos == nil {
		logos = NewLogoResolver()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &PDFRenderer{
		font:   fonts.Resolve(FontRequirement{Unicode: true, Styles: []string{"", "B", "I"}}),
		logos:  logos,
		logger: logger,
		now:    now,
		styles: defaultPDFStyles(),
	}
}

// Render produces the PDF bytes for one view of the content.
func (r *PDFRenderer) Render(c *Content, b Branding, mode ViewMode) ([]byte, error) {
	if c == nil {
		return nil, NewError(KindValidation, "content is nil", nil)
	}
	branding := ResolveBranding(b)

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCreationDate(r.now())
	doc.SetModificationDate(r.now())
	doc.SetTitle(c.Title, true)
	doc.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	doc.SetAutoPageBreak(true, pdfMarginBottom)

	family := r.registerFonts(doc)
	doc.SetHeaderFuncMode(func() {
		r.drawWatermark(doc, family, branding.Watermark)
	}, true)
	doc.SetFooterFunc(func() {
		r.drawFooter(doc, family, branding)
	})
	doc.AliasNbPages("")

	doc.AddPage()
	r.drawDocumentHeader(doc, family, c, branding)
	r.drawStudentInfo(doc, family, branding)
	if c.Description != "" {
		r.applyStyle(doc, family, r.styles.Instructions)
		r.multiCell(doc, r.styles.Instructions, c.Description, false)
	}

	number := 0
	for _, section := range layoutSections(c) {
		if section.Name != "" {
			r.applyStyle(doc, family, r.styles.SectionHeader)
			doc.Ln(r.styles.SectionHeader.SpaceBefore)
			doc.CellFormat(0, r.styles.SectionHeader.Line, section.Name, "", 1, "L", false, 0, "")
			doc.Ln(r.styles.SectionHeader.SpaceAfter)
		}
		if section.Instructions != "" {
			r.applyStyle(doc, family, r.styles.Instructions)
			doc.SetFillColor(244, 244, 244)
			r.multiCell(doc, r.styles.Instructions, section.Instructions, true)
			doc.Ln(r.styles.Instructions.SpaceAfter)
		}
		for _, q := range section.Questions {
			number++
			r.drawQuestion(doc, family, q, number, mode)
		}
	}

	if branding.AdditionalNotes != "" {
		doc.Ln(6)
		r.applyStyle(doc, family, r.styles.Instructions)
		r.multiCell(doc, r.styles.Instructions, branding.AdditionalNotes, false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, NewError(KindInternal, "pdf output failed", err)
	}
	return buf.Bytes(), nil
}

// registerFonts loads the resolved Unicode font into the document, or
// returns the core family when only the base font is available.
func (r *PDFRenderer) registerFonts(doc *fpdf.Fpdf) string {
	if r.font.Core {
		return BaseFontFamily
	}
	// Fixed style order keeps font object numbering, and therefore output
	// bytes, stable across runs.
	for _, style := range []string{"", "B", "I"} {
		if path, ok := r.font.Files[style]; ok {
			doc.AddUTF8Font(r.font.Family, style, path)
		}
	}
	if doc.Err() {
		// Registration failed after resolution, settle for the base font.
		// The error must be cleared or it poisons the rest of the document.
		r.logger.Errorf("pdf: unicode font %q failed to load: %v", r.font.Family, doc.Error())
		doc.ClearError()
		return BaseFontFamily
	}
	return r.font.Family
}

func (r *PDFRenderer) applyStyle(doc *fpdf.Fpdf, family string, s pdfStyle) {
	doc.SetFont(family, s.Style, s.Size)
	doc.SetTextColor(26, 26, 26)
}

// multiCell writes wrapped text honoring the style indent.
func (r *PDFRenderer) multiCell(doc *fpdf.Fpdf, s pdfStyle, text string, fill bool) {
	left, _, right, _ := doc.GetMargins()
	pageW, _ := doc.GetPageSize()
	doc.SetX(left + s.Indent)
	doc.MultiCell(pageW-left-right-s.Indent, s.Line, text, "", s.Align, fill)
}

func (r *PDFRenderer) drawDocumentHeader(doc *fpdf.Fpdf, family string, c *Content, b ResolvedBranding) {
	left, top, right, _ := doc.GetMargins()
	pageW, _ := doc.GetPageSize()

	if b.Logo != "" {
		r.drawLogo(doc, family, b.Logo, left, top)
	}

	header := b.HeaderLines()
	doc.SetFont(family, "B", 14)
	doc.CellFormat(0, 8, header[0], "", 1, "C", false, 0, "")
	doc.SetFont(family, "", 10.5)
	for _, line := range header[1:] {
		doc.CellFormat(0, 5.5, line, "", 1, "C", false, 0, "")
	}

	doc.Ln(r.styles.Title.SpaceBefore)
	r.applyStyle(doc, family, r.styles.Title)
	doc.MultiCell(0, r.styles.Title.Line, c.Title, "", r.styles.Title.Align, false)
	doc.Ln(r.styles.Title.SpaceAfter)

	r.applyStyle(doc, family, r.styles.Subtitle)
	for _, line := range b.MetaLines() {
		doc.CellFormat(0, r.styles.Subtitle.Line, line, "", 1, r.styles.Subtitle.Align, false, 0, "")
	}
	summary := pluralPoints(c.DerivedTotalPoints())
	if c.EstimatedDuration != "" {
		summary += "  |  " + c.EstimatedDuration
	}
	doc.CellFormat(0, r.styles.Subtitle.Line, summary, "", 1, r.styles.Subtitle.Align, false, 0, "")

	doc.Ln(2)
	doc.SetDrawColor(51, 51, 51)
	doc.SetLineWidth(0.5)
	doc.Line(left, doc.GetY(), pageW-right, doc.GetY())
	doc.Ln(4)
}

// drawLogo embeds the logo at a fixed bounding box, or a textual placeholder
// when the reference cannot be loaded or decoded. Failures are logged, not
// fatal; decode errors also clear fpdf's sticky error so output proceeds.
func (r *PDFRenderer) drawLogo(doc *fpdf.Fpdf, family, ref string, x, y float64) {
	data, imgType, err := r.logos.Fetch(ref)
	if err == nil {
		opts := fpdf.ImageOptions{ImageType: imgType, ReadDpi: true}
		doc.RegisterImageOptionsReader("branding-logo", opts, bytes.NewReader(data))
		doc.ImageOptions("branding-logo", x, y, pdfLogoWidth, pdfLogoHeight, false, opts, 0, "")
		if !doc.Err() {
			return
		}
		err = doc.Error()
		doc.ClearError()
	}
	r.logger.Errorf("pdf: logo %q unavailable: %v", ref, err)
	doc.SetFont(family, "I", 8)
	doc.SetDrawColor(150, 150, 150)
	doc.SetXY(x, y)
	doc.CellFormat(pdfLogoWidth, pdfLogoHeight, "[Logo]", "1", 0, "C", false, 0, "")
	doc.SetXY(x, y)
}

func (r *PDFRenderer) drawStudentInfo(doc *fpdf.Fpdf, family string, b ResolvedBranding) {
	fields := b.StudentFields()
	if len(fields) == 0 {
		return
	}
	left, _, right, _ := doc.GetMargins()
	pageW, _ := doc.GetPageSize()
	fieldW := (pageW - left - right - 10) / 2

	doc.SetFont(family, "", 10.5)
	doc.SetDrawColor(120, 120, 120)
	doc.SetLineWidth(0.2)
	for i, field := range fields {
		doc.CellFormat(fieldW, 9, field+": ", "B", 0, "L", false, 0, "")
		if i%2 == 1 || i == len(fields)-1 {
			doc.Ln(11)
		} else {
			doc.CellFormat(10, 9, "", "", 0, "L", false, 0, "")
		}
	}
	doc.Ln(2)
}

func (r *PDFRenderer) drawQuestion(doc *fpdf.Fpdf, family string, q Question, number int, mode ViewMode) {
	doc.Ln(r.styles.Question.SpaceBefore)

	prompt := strconv.Itoa(number) + ". " + displayText(q) + " (" + pluralPoints(q.PointsOrDefault()) + ")"
	r.applyStyle(doc, family, r.styles.QuestionNumber)
	r.multiCell(doc, r.styles.Question, prompt, false)

	switch q.Type {
	case QuestionMultipleChoice:
		for i, opt := range q.Options {
			letter := optionLetter(i)
			highlight := mode == ViewInstructor && matchesCorrect(letter, q.CorrectAnswer)
			r.drawOption(doc, family, letter+". "+opt, highlight)
		}
	case QuestionTrueFalse:
		for _, label := range trueFalseOptions {
			highlight := mode == ViewInstructor && matchesTrueFalse(label, q.CorrectAnswer)
			r.drawOption(doc, family, label, highlight)
		}
	case QuestionFillBlank:
		r.drawAnswerLines(doc, 1)
	default:
		if q.Type != QuestionShortAnswer && q.Type != QuestionEssay {
			r.applyStyle(doc, family, r.styles.Option)
			r.multiCell(doc, r.styles.Option, genericAnswerLabel, false)
		}
		r.drawAnswerLines(doc, answerLineCount(q.Type))
	}

	if mode == ViewInstructor {
		if answer := expectedAnswer(q); answer != "" {
			doc.Ln(r.styles.Answer.SpaceBefore)
			r.applyStyle(doc, family, r.styles.Answer)
			doc.SetFillColor(226, 244, 226)
			r.multiCell(doc, r.styles.Answer, "Answer: "+answer, true)
		}
		if q.Explanation != "" {
			doc.SetFont(family, "I", r.styles.Answer.Size)
			doc.SetTextColor(85, 85, 85)
			r.multiCell(doc, r.styles.Answer, "Explanation: "+q.Explanation, false)
			doc.SetTextColor(26, 26, 26)
		}
	}
}

func (r *PDFRenderer) drawOption(doc *fpdf.Fpdf, family, text string, highlight bool) {
	s := r.styles.Option
	if highlight {
		doc.SetFont(family, "B", s.Size)
		doc.SetFillColor(226, 244, 226)
	} else {
		doc.SetFont(family, s.Style, s.Size)
	}
	left, _, right, _ := doc.GetMargins()
	pageW, _ := doc.GetPageSize()
	doc.SetX(left + s.Indent)
	doc.MultiCell(pageW-left-right-s.Indent, s.Line, text, "", s.Align, highlight)
}

func (r *PDFRenderer) drawAnswerLines(doc *fpdf.Fpdf, count int) {
	s := r.styles.AnswerLine
	left, _, right, _ := doc.GetMargins()
	pageW, _ := doc.GetPageSize()
	doc.SetDrawColor(140, 140, 140)
	doc.SetLineWidth(0.2)
	for i := 0; i < count; i++ {
		doc.SetX(left + s.Indent)
		doc.CellFormat(pageW-left-right-s.Indent, s.Line, "", "B", 1, "L", false, 0, "")
	}
}

// drawWatermark paints diagonal, semi-transparent text centered on the page.
// It runs from the page header hook so body content overlays it.
func (r *PDFRenderer) drawWatermark(doc *fpdf.Fpdf, family, watermark string) {
	if watermark == "" {
		return
	}
	pageW, pageH := doc.GetPageSize()
	doc.SetFont(family, "B", 58)
	doc.SetTextColor(150, 150, 150)
	doc.SetAlpha(0.1, "Normal")
	doc.TransformBegin()
	doc.TransformRotate(45, pageW/2, pageH/2)
	textW := doc.GetStringWidth(watermark)
	doc.Text((pageW-textW)/2, pageH/2, watermark)
	doc.TransformEnd()
	doc.SetAlpha(1.0, "Normal")
	doc.SetTextColor(26, 26, 26)
}

// drawFooter runs identically on every page: separator line, page number,
// and optional footer branding.
func (r *PDFRenderer) drawFooter(doc *fpdf.Fpdf, family string, b ResolvedBranding) {
	left, _, right, _ := doc.GetMargins()
	pageW, _ := doc.GetPageSize()

	doc.SetY(-18)
	doc.SetDrawColor(120, 120, 120)
	doc.SetLineWidth(0.2)
	doc.Line(left, doc.GetY(), pageW-right, doc.GetY())
	doc.Ln(1.5)

	third := (pageW - left - right) / 3
	doc.SetFont(family, "", 8)
	doc.SetTextColor(110, 110, 110)
	doc.CellFormat(third, 6, b.FooterLeft(), "", 0, "L", false, 0, "")
	doc.CellFormat(third, 6, fmt.Sprintf("Page %d of {nb}", doc.PageNo()), "", 0, "C", false, 0, "")
	doc.CellFormat(third, 6, b.FooterRight(), "", 0, "R", false, 0, "")
}
