package export

import (
	"html"
	"strconv"
	"strings"
)

// HTML placeholder tokens. The skeleton is a fixed document; each token is
// substituted exactly once with a pre-computed fragment and tokens without
// data collapse to an empty string. Fragments are never re-scanned, so the
// grammar stays non-recursive.
const (
	tokenTitle          = "[[TITLE]]"
	tokenWatermarkStyle = "[[WATERMARK_STYLE]]"
	tokenWatermark      = "[[WATERMARK]]"
	tokenHeader         = "[[HEADER]]"
	tokenStudentInfo    = "[[STUDENT_INFO]]"
	tokenDescription    = "[[DESCRIPTION]]"
	tokenQuestions      = "[[QUESTIONS]]"
	tokenFooter         = "[[FOOTER]]"
)

const htmlSkeleton = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>[[TITLE]]</title>
<style>
body { font-family: "Helvetica Neue", Arial, sans-serif; margin: 40px auto; max-width: 800px; color: #1a1a1a; }
.header { text-align: center; border-bottom: 2px solid #333; padding-bottom: 12px; margin-bottom: 20px; }
.header h1 { margin: 4px 0; font-size: 22px; }
.header .line { margin: 2px 0; font-size: 14px; }
.meta { margin: 2px 0; font-size: 13px; color: #444; }
.student-info { display: flex; flex-wrap: wrap; gap: 16px; margin: 16px 0; }
.student-info .field { flex: 1 1 40%; font-size: 14px; border-bottom: 1px solid #999; padding: 6px 0; }
.description { font-style: italic; margin: 12px 0; }
.section { margin-top: 24px; }
.section h2 { font-size: 17px; border-bottom: 1px solid #999; padding-bottom: 4px; }
.instructions { background: #f4f4f4; border-left: 3px solid #999; padding: 8px 12px; font-size: 13px; margin: 8px 0; }
.question { margin: 18px 0; }
.question .prompt { font-weight: bold; }
.question .points { color: #777; font-weight: normal; font-size: 12px; }
.options { list-style: none; padding-left: 18px; margin: 8px 0; }
.options li { margin: 4px 0; }
.options li.correct { background: #e2f4e2; font-weight: bold; }
.answer-line { border-bottom: 1px solid #aaa; height: 22px; margin: 6px 0 6px 18px; }
.answer { background: #e2f4e2; border-left: 3px solid #3a7a3a; padding: 6px 10px; margin: 8px 0 8px 18px; font-size: 13px; }
.explanation { color: #555; font-size: 13px; margin: 4px 0 4px 18px; }
.notes { margin-top: 28px; font-size: 13px; color: #444; }
.footer { margin-top: 32px; border-top: 1px solid #999; padding-top: 8px; font-size: 12px; color: #666; display: flex; justify-content: space-between; }
[[WATERMARK_STYLE]]
</style>
</head>
<body>
[[WATERMARK]]
<div class="page">
[[HEADER]]
[[STUDENT_INFO]]
[[DESCRIPTION]]
[[QUESTIONS]]
[[FOOTER]]
</div>
</body>
</html>
`

const htmlWatermarkStyle = `.watermark { position: fixed; top: 40%; left: 0; right: 0; text-align: center; font-size: 90px; color: rgba(120, 120, 120, 0.12); transform: rotate(-30deg); pointer-events: none; z-index: -1; }`

// HTMLRenderer renders a self-contained HTML page from a fixed skeleton.
//
// All content and branding values are HTML-entity escaped before insertion;
// only the internally generated scaffolding is inserted raw.
type HTMLRenderer struct{}

// NewHTMLRenderer creates an HTML renderer.
func NewHTMLRenderer() HTMLRenderer {
	return HTMLRenderer{}
}

// Render produces the HTML page bytes.
func (r HTMLRenderer) Render(c *Content, b Branding, mode ViewMode) ([]byte, error) {
	if c == nil {
		return nil, NewError(KindValidation, "content is nil", nil)
	}
	branding := ResolveBranding(b)

	// First pass: pre-compute every dynamic fragment.
	fragments := map[string]string{
		tokenTitle:          html.EscapeString(c.Title),
		tokenWatermarkStyle: "",
		tokenWatermark:      "",
		tokenHeader:         htmlHeaderFragment(c, branding),
		tokenStudentInfo:    htmlStudentInfoFragment(branding),
		tokenDescription:    htmlDescriptionFragment(c),
		tokenQuestions:      htmlQuestionsFragment(c, branding, mode),
		tokenFooter:         htmlFooterFragment(branding),
	}
	if branding.Watermark != "" {
		fragments[tokenWatermarkStyle] = htmlWatermarkStyle
		fragments[tokenWatermark] = `<div class="watermark">` + html.EscapeString(branding.Watermark) + `</div>`
	}

	// Second pass: one substitution sweep over the skeleton.
	pairs := make([]string, 0, len(fragments)*2)
	for token, fragment := range fragments {
		pairs = append(pairs, token, fragment)
	}
	page := strings.NewReplacer(pairs...).Replace(htmlSkeleton)
	return []byte(page), nil
}

func htmlHeaderFragment(c *Content, b ResolvedBranding) string {
	var sb strings.Builder
	sb.WriteString(`<div class="header">` + "\n")
	for i, line := range b.HeaderLines() {
		if i == 0 {
			sb.WriteString(`<h1>` + html.EscapeString(line) + `</h1>` + "\n")
			continue
		}
		sb.WriteString(`<div class="line">` + html.EscapeString(line) + `</div>` + "\n")
	}
	sb.WriteString(`<h1>` + html.EscapeString(c.Title) + `</h1>` + "\n")
	for _, line := range b.MetaLines() {
		sb.WriteString(`<div class="meta">` + html.EscapeString(line) + `</div>` + "\n")
	}
	total := c.DerivedTotalPoints()
	if total > 0 {
		sb.WriteString(`<div class="meta">Total: ` + html.EscapeString(pluralPoints(total)) + `</div>` + "\n")
	}
	if c.EstimatedDuration != "" {
		sb.WriteString(`<div class="meta">Duration: ` + html.EscapeString(c.EstimatedDuration) + `</div>` + "\n")
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

// htmlStudentInfoFragment iterates the resolved student-info flags and emits
// only the enabled fields.
func htmlStudentInfoFragment(b ResolvedBranding) string {
	fields := b.StudentFields()
	if len(fields) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(`<div class="student-info">` + "\n")
	for _, field := range fields {
		sb.WriteString(`<div class="field">` + html.EscapeString(field) + `:</div>` + "\n")
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

func htmlDescriptionFragment(c *Content) string {
	if c.Description == "" {
		return ""
	}
	return `<div class="description">` + html.EscapeString(c.Description) + `</div>`
}

func htmlQuestionsFragment(c *Content, b ResolvedBranding, mode ViewMode) string {
	var sb strings.Builder
	number := 0
	for _, section := range layoutSections(c) {
		sb.WriteString(`<div class="section">` + "\n")
		if section.Name != "" {
			sb.WriteString(`<h2>` + html.EscapeString(section.Name) + `</h2>` + "\n")
		}
		if section.Instructions != "" {
			sb.WriteString(`<div class="instructions">` + html.EscapeString(section.Instructions) + `</div>` + "\n")
		}
		for _, q := range section.Questions {
			number++
			htmlQuestion(&sb, q, number, mode)
		}
		sb.WriteString(`</div>` + "\n")
	}
	if b.AdditionalNotes != "" {
		sb.WriteString(`<div class="notes">` + html.EscapeString(b.AdditionalNotes) + `</div>` + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func htmlQuestion(sb *strings.Builder, q Question, number int, mode ViewMode) {
	sb.WriteString(`<div class="question">` + "\n")
	sb.WriteString(`<div class="prompt">` + strconv.Itoa(number) + `. ` + html.EscapeString(displayText(q)))
	sb.WriteString(` <span class="points">(` + html.EscapeString(pluralPoints(q.PointsOrDefault())) + `)</span></div>` + "\n")

	switch q.Type {
	case QuestionMultipleChoice:
		sb.WriteString(`<ul class="options">` + "\n")
		for i, opt := range q.Options {
			letter := optionLetter(i)
			class := ""
			if mode == ViewInstructor && matchesCorrect(letter, q.CorrectAnswer) {
				class = ` class="correct"`
			}
			sb.WriteString(`<li` + class + `>` + letter + `. ` + html.EscapeString(opt) + `</li>` + "\n")
		}
		sb.WriteString(`</ul>` + "\n")
	case QuestionTrueFalse:
		sb.WriteString(`<ul class="options">` + "\n")
		for _, label := range trueFalseOptions {
			class := ""
			if mode == ViewInstructor && matchesTrueFalse(label, q.CorrectAnswer) {
				class = ` class="correct"`
			}
			sb.WriteString(`<li` + class + `>` + label + `</li>` + "\n")
		}
		sb.WriteString(`</ul>` + "\n")
	case QuestionFillBlank:
		sb.WriteString(`<div class="answer-line"></div>` + "\n")
	default:
		if q.Type != QuestionShortAnswer && q.Type != QuestionEssay {
			sb.WriteString(`<div class="prompt">` + genericAnswerLabel + `</div>` + "\n")
		}
		for i := 0; i < answerLineCount(q.Type); i++ {
			sb.WriteString(`<div class="answer-line"></div>` + "\n")
		}
	}

	if mode == ViewInstructor {
		if answer := expectedAnswer(q); answer != "" {
			sb.WriteString(`<div class="answer">Answer: ` + html.EscapeString(answer) + `</div>` + "\n")
		}
		if q.Explanation != "" {
			sb.WriteString(`<div class="explanation">Explanation: ` + html.EscapeString(q.Explanation) + `</div>` + "\n")
		}
	}
	sb.WriteString(`</div>` + "\n")
}

func htmlFooterFragment(b ResolvedBranding) string {
	left := b.FooterLeft()
	right := b.FooterRight()
	if left == "" && right == "" {
		return ""
	}
	return `<div class="footer"><span>` + html.EscapeString(left) + `</span><span>` + html.EscapeString(right) + `</span></div>`
}
