package export

import (
	"bytes"
	"strings"
	"testing"
)

func htmlTestContent() *Content {
	return &Content{
		Title:       "Algebra Quiz",
		Description: "Show your work.",
		Type:        ContentQuiz,
		Questions: []Question{
			{
				Type:          QuestionMultipleChoice,
				Text:          "What is 2+2?",
				Options:       []string{"3", "4", "5"},
				CorrectAnswer: "b",
				Explanation:   "Basic addition.",
				Points:        2,
			},
			{Type: QuestionTrueFalse, Text: "Zero is even.", CorrectAnswer: "True"},
			{Type: QuestionShortAnswer, Text: "Define a prime number.", CorrectAnswer: "Divisible only by 1 and itself"},
			{Type: QuestionEssay, Text: "Discuss the proof."},
		},
	}
}

func renderHTML(t *testing.T, c *Content, b Branding, mode ViewMode) string {
	t.Helper()
	out, err := NewHTMLRenderer().Render(c, b, mode)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestHTMLRenderer_StudentView(t *testing.T) {
	page := renderHTML(t, htmlTestContent(), Branding{}, ViewStudent)

	if !strings.Contains(page, "<title>Algebra Quiz</title>") {
		t.Fatalf("missing title")
	}
	if !strings.Contains(page, "B. 4") {
		t.Fatalf("missing lettered option")
	}
	if strings.Contains(page, `class="correct"`) {
		t.Fatalf("student view must not mark correct answers")
	}
	if strings.Contains(page, "Divisible only by 1") {
		t.Fatalf("student view must not leak answers")
	}
	if strings.Contains(page, "Explanation:") {
		t.Fatalf("student view must not show explanations")
	}
	if got := strings.Count(page, `<div class="answer-line"></div>`); got != shortAnswerLines+essayLines {
		t.Fatalf("expected %d answer lines, got %d", shortAnswerLines+essayLines, got)
	}
	if !strings.Contains(page, "(2 points)") || !strings.Contains(page, "(1 point)") {
		t.Fatalf("missing point annotations")
	}
}

func TestHTMLRenderer_InstructorView(t *testing.T) {
	page := renderHTML(t, htmlTestContent(), Branding{}, ViewInstructor)

	if !strings.Contains(page, `<li class="correct">B. 4</li>`) {
		t.Fatalf("expected correct option highlighted")
	}
	if !strings.Contains(page, `<li class="correct">True</li>`) {
		t.Fatalf("expected true/false answer highlighted")
	}
	if !strings.Contains(page, "Answer: Divisible only by 1 and itself") {
		t.Fatalf("expected short answer shown")
	}
	if !strings.Contains(page, "Explanation: Basic addition.") {
		t.Fatalf("expected explanation shown")
	}
}

func TestHTMLRenderer_AnswerParity(t *testing.T) {
	c := htmlTestContent()
	student := renderHTML(t, c, Branding{}, ViewStudent)
	instructor := renderHTML(t, c, Branding{}, ViewInstructor)

	for _, q := range c.Questions {
		if !strings.Contains(student, q.Text) || !strings.Contains(instructor, q.Text) {
			t.Fatalf("question %q missing from a view", q.Text)
		}
	}
	if strings.Count(student, `<div class="question">`) != strings.Count(instructor, `<div class="question">`) {
		t.Fatalf("views disagree on question count")
	}
}

func TestHTMLRenderer_OutOfRangeCorrectAnswer(t *testing.T) {
	c := &Content{
		Title: "Quiz",
		Questions: []Question{{
			Type:          QuestionMultipleChoice,
			Text:          "Pick one.",
			Options:       []string{"x", "y"},
			CorrectAnswer: "Z",
		}},
	}
	page := renderHTML(t, c, Branding{}, ViewInstructor)
	if strings.Contains(page, `class="correct"`) {
		t.Fatalf("out-of-range answer must not highlight any option")
	}
}

func TestHTMLRenderer_EscapesContent(t *testing.T) {
	c := &Content{
		Title:       `<script>alert("x")</script>`,
		Description: `a & b < c`,
		Questions:   []Question{{Type: QuestionShortAnswer, Text: `<img src=x>`}},
	}
	b := Branding{Institution: `Evil <b>U</b>`, Watermark: `<draft>`}
	page := renderHTML(t, c, b, ViewStudent)

	if strings.Contains(page, `<script>alert`) {
		t.Fatalf("script tag not escaped")
	}
	if !strings.Contains(page, "&lt;script&gt;") {
		t.Fatalf("expected escaped title")
	}
	if strings.Contains(page, `<img src=x>`) {
		t.Fatalf("question text not escaped")
	}
	if strings.Contains(page, `Evil <b>U</b>`) {
		t.Fatalf("branding not escaped")
	}
	if !strings.Contains(page, "&lt;draft&gt;") {
		t.Fatalf("watermark not escaped")
	}
}

func TestHTMLRenderer_TokensCollapse(t *testing.T) {
	c := &Content{Title: "Bare", Questions: []Question{{Type: QuestionEssay, Text: "Write."}}}
	page := renderHTML(t, c, Branding{}, ViewStudent)

	if strings.Contains(page, "[[") || strings.Contains(page, "]]") {
		t.Fatalf("unreplaced placeholder token present")
	}
	if strings.Contains(page, `class="watermark"`) {
		t.Fatalf("watermark emitted without branding")
	}
	if !strings.Contains(page, `<div class="footer"><span></span><span>University</span></div>`) {
		t.Fatalf("expected footer with default institution")
	}
}

func TestHTMLRenderer_Watermark(t *testing.T) {
	page := renderHTML(t, htmlTestContent(), Branding{Watermark: "DRAFT"}, ViewStudent)
	if !strings.Contains(page, `<div class="watermark">DRAFT</div>`) {
		t.Fatalf("expected watermark div")
	}
	if !strings.Contains(page, ".watermark { position: fixed;") {
		t.Fatalf("expected watermark style emitted")
	}
}

func TestHTMLRenderer_Deterministic(t *testing.T) {
	c := htmlTestContent()
	b := Branding{Institution: "State University", Watermark: "VERSION A"}
	first, err := NewHTMLRenderer().Render(c, b, ViewInstructor)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := NewHTMLRenderer().Render(c, b, ViewInstructor)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("expected byte-identical output")
	}
}

func TestHTMLRenderer_Sections(t *testing.T) {
	c := &Content{
		Title: "Final",
		Sections: []Section{
			{Name: "Part I", Instructions: "Answer all.", Questions: []Question{{Type: QuestionEssay, Text: "One."}}},
			{Name: "Part II", Questions: []Question{{Type: QuestionEssay, Text: "Two."}}},
		},
	}
	page := renderHTML(t, c, Branding{}, ViewStudent)
	if !strings.Contains(page, "<h2>Part I</h2>") || !strings.Contains(page, "<h2>Part II</h2>") {
		t.Fatalf("missing section headings")
	}
	if !strings.Contains(page, `<div class="instructions">Answer all.</div>`) {
		t.Fatalf("missing section instructions")
	}
	if !strings.Contains(page, "1. One.") || !strings.Contains(page, "2. Two.") {
		t.Fatalf("question numbering must continue across sections")
	}
}

func TestHTMLRenderer_NilContent(t *testing.T) {
	if _, err := NewHTMLRenderer().Render(nil, Branding{}, ViewStudent); err == nil {
		t.Fatalf("expected validation error")
	}
}
