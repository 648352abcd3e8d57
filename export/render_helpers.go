package export

import (
	"strconv"
	"strings"
)

// Answer-area sizing per question type, shared by every backend.
const (
	shortAnswerLines = 5
	essayLines       = 12
	genericLines     = 1
)

// Fallback copy emitted for recoverable content anomalies.
const (
	missingTextFallback   = "[Question text unavailable]"
	missingAnswerFallback = "Answer not provided"
	genericAnswerLabel    = "Answer:"
)

var trueFalseOptions = []string{"True", "False"}

// optionLetter maps a zero-based option index to its letter label.
func optionLetter(i int) string {
	if i < 0 || i >= maxOptions {
		return "?"
	}
	return string(rune('A' + i))
}

// matchesCorrect reports whether an option letter equals the recorded
// correct answer, case-insensitively. An out-of-range or absent correct
// answer simply never matches.
func matchesCorrect(letter, correct string) bool {
	correct = strings.TrimSpace(correct)
	if correct == "" {
		return false
	}
	return strings.EqualFold(letter, correct)
}

// matchesTrueFalse compares a True/False label to the recorded answer.
func matchesTrueFalse(label, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(correct), label)
}

// displayText returns the question text or a visible fallback block.
func displayText(q Question) string {
	if strings.TrimSpace(q.Text) == "" {
		return missingTextFallback
	}
	return q.Text
}

// answerLineCount returns how many blank answer lines a type receives in
// student view. Multiple choice and true/false render options instead.
func answerLineCount(t QuestionType) int {
	switch t {
	case QuestionShortAnswer:
		return shortAnswerLines
	case QuestionEssay:
		return essayLines
	default:
		return genericLines
	}
}

// expectedAnswer returns the instructor-view answer annotation for
// non-choice types, or "" when nothing should be appended.
func expectedAnswer(q Question) string {
	answer := strings.TrimSpace(q.CorrectAnswer)
	switch q.Type {
	case QuestionMultipleChoice, QuestionTrueFalse:
		return ""
	case QuestionShortAnswer:
		if answer == "" {
			return missingAnswerFallback
		}
		return answer
	default:
		return answer
	}
}

// pluralPoints renders "1 point" / "n points".
func pluralPoints(n int) string {
	if n == 1 {
		return "1 point"
	}
	return strconv.Itoa(n) + " points"
}
