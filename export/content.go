package export

import "fmt"

// maxOptions bounds multiple choice options to one per letter A-Z.
const maxOptions = 26

// Validate checks structural invariants. Unknown question or content types
// are accepted; renderers fall back to a generic layout for them.
func (c *Content) Validate() error {
	if c == nil {
		return NewError(KindValidation, "content is nil", nil)
	}
	if c.Title == "" {
		return NewError(KindValidation, "content title is required", nil)
	}
	for i, q := range c.AllQuestions() {
		if q.Points < 0 {
			return NewError(KindValidation, fmt.Sprintf("question %d has negative points", i+1), nil)
		}
		if len(q.Options) > maxOptions {
			return NewError(KindValidation, fmt.Sprintf("question %d has more than %d options", i+1, maxOptions), nil)
		}
	}
	return nil
}

// AllQuestions flattens the question sequence across sections, preserving order.
func (c *Content) AllQuestions() []Question {
	if c == nil {
		return nil
	}
	if len(c.Sections) == 0 {
		return c.Questions
	}
	var out []Question
	for _, s := range c.Sections {
		out = append(out, s.Questions...)
	}
	return out
}

// PointsOrDefault returns the question points, defaulting to 1 when unset.
func (q Question) PointsOrDefault() int {
	if q.Points <= 0 {
		return 1
	}
	return q.Points
}

// DerivedTotalPoints returns TotalPoints when set, otherwise the sum of
// per-question points with a default of 1 per question.
func (c *Content) DerivedTotalPoints() int {
	if c == nil {
		return 0
	}
	if c.TotalPoints > 0 {
		return c.TotalPoints
	}
	total := 0
	for _, q := range c.AllQuestions() {
		total += q.PointsOrDefault()
	}
	return total
}

// Clone returns a deep structural copy. Renderers and the version generator
// operate on copies so the caller's content is never mutated.
func (c *Content) Clone() *Content {
	if c == nil {
		return nil
	}
	out := *c
	out.Questions = cloneQuestions(c.Questions)
	if len(c.Sections) > 0 {
		out.Sections = make([]Section, len(c.Sections))
		for i, s := range c.Sections {
			out.Sections[i] = s
			out.Sections[i].Questions = cloneQuestions(s.Questions)
		}
	}
	return &out
}

func cloneQuestions(in []Question) []Question {
	if in == nil {
		return nil
	}
	out := make([]Question, len(in))
	for i, q := range in {
		out[i] = q
		if q.Options != nil {
			out[i].Options = append([]string(nil), q.Options...)
		}
	}
	return out
}

// layoutSections normalizes content into a section sequence so renderers walk
// one shape: flat question lists become a single unnamed section.
func layoutSections(c *Content) []Section {
	if c == nil {
		return nil
	}
	if len(c.Sections) > 0 {
		return c.Sections
	}
	return []Section{{Questions: c.Questions}}
}
