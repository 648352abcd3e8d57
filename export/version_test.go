package export

import (
	"fmt"
	"reflect"
	"sort"
	"testing"
)

func versionTestContent(n int) *Content {
	c := &Content{Title: "Midterm", Type: ContentExam}
	for i := 0; i < n; i++ {
		c.Questions = append(c.Questions, Question{
			ID:   fmt.Sprintf("q%d", i+1),
			Type: QuestionMultipleChoice,
			Text: fmt.Sprintf("Question %d", i+1),
		})
	}
	return c
}

func questionIDs(qs []Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func TestVersionSeed_Deterministic(t *testing.T) {
	if VersionSeed("A") != VersionSeed("A") {
		t.Fatalf("expected stable seed for identical labels")
	}
	if VersionSeed("A") == VersionSeed("B") {
		t.Fatalf("expected distinct seeds for distinct labels")
	}
	if VersionSeed("Version-27") == VersionSeed("Version-28") {
		t.Fatalf("expected multi-character labels to seed independently")
	}
}

func TestShuffleContent_Reproducible(t *testing.T) {
	c := versionTestContent(10)
	first := ShuffleContent(c, "B")
	second := ShuffleContent(c, "B")
	if !reflect.DeepEqual(questionIDs(first.Questions), questionIDs(second.Questions)) {
		t.Fatalf("expected identical order for same label, got %v vs %v",
			questionIDs(first.Questions), questionIDs(second.Questions))
	}
}

func TestShuffleContent_DoesNotMutateInput(t *testing.T) {
	c := versionTestContent(8)
	before := questionIDs(c.Questions)
	_ = ShuffleContent(c, "A")
	_ = ShuffleContent(c, "B")
	if !reflect.DeepEqual(before, questionIDs(c.Questions)) {
		t.Fatalf("source content mutated: %v", questionIDs(c.Questions))
	}
}

func TestShuffleContent_PreservesQuestionSet(t *testing.T) {
	c := versionTestContent(12)
	shuffled := ShuffleContent(c, "C")
	if len(shuffled.Questions) != len(c.Questions) {
		t.Fatalf("expected %d questions, got %d", len(c.Questions), len(shuffled.Questions))
	}
	want := questionIDs(c.Questions)
	got := questionIDs(shuffled.Questions)
	sort.Strings(want)
	sort.Strings(got)
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("question set changed: %v", got)
	}
}

func TestShuffleContent_LabelsProduceDistinctOrders(t *testing.T) {
	c := versionTestContent(12)
	seen := map[string]bool{}
	for _, label := range []string{"A", "B", "C", "D"} {
		v := ShuffleContent(c, label)
		seen[fmt.Sprint(questionIDs(v.Questions))] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected at least two distinct orderings across labels")
	}
}

func TestShuffleContent_SectionsShuffleIndependently(t *testing.T) {
	c := &Content{
		Title: "Sectioned",
		Sections: []Section{
			{Name: "Part I", Questions: versionTestContent(6).Questions},
			{Name: "Part II", Questions: versionTestContent(6).Questions},
		},
	}
	shuffled := ShuffleContent(c, "B")
	if len(shuffled.Sections) != 2 {
		t.Fatalf("expected sections preserved, got %d", len(shuffled.Sections))
	}
	for i, s := range shuffled.Sections {
		if len(s.Questions) != 6 {
			t.Fatalf("section %d lost questions: %d", i, len(s.Questions))
		}
		want := questionIDs(c.Sections[i].Questions)
		got := questionIDs(s.Questions)
		sort.Strings(want)
		sort.Strings(got)
		if !reflect.DeepEqual(want, got) {
			t.Fatalf("section %d question set changed: %v", i, got)
		}
	}
	if shuffled.Sections[0].Name != "Part I" || shuffled.Sections[1].Name != "Part II" {
		t.Fatalf("section order changed")
	}
}

func TestShuffleContent_FewQuestionsNoop(t *testing.T) {
	c := versionTestContent(1)
	v := ShuffleContent(c, "B")
	if v.Questions[0].ID != "q1" {
		t.Fatalf("single question moved")
	}
}

func TestNewVersion(t *testing.T) {
	c := versionTestContent(5)
	v := NewVersion(c, "B")
	if v.Label != "B" {
		t.Fatalf("expected label B, got %q", v.Label)
	}
	if v.Seed != VersionSeed("B") {
		t.Fatalf("expected seed recorded")
	}
	if v.Content == nil || len(v.Content.AllQuestions()) != 5 {
		t.Fatalf("expected shuffled content attached")
	}
}

func TestGenerateVersions(t *testing.T) {
	c := versionTestContent(6)
	versions := GenerateVersions(c, DefaultZipVersions)
	if len(versions) != 3 {
		t.Fatalf("expected 3 versions, got %d", len(versions))
	}
	labels := []string{versions[0].Label, versions[1].Label, versions[2].Label}
	if !reflect.DeepEqual(labels, []string{"A", "B", "C"}) {
		t.Fatalf("unexpected labels %v", labels)
	}
}
