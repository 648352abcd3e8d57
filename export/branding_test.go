package export

import (
	"reflect"
	"testing"
)

func TestResolveBranding_Defaults(t *testing.T) {
	b := ResolveBranding(Branding{})
	if b.Institution != DefaultInstitution {
		t.Fatalf("expected default institution, got %q", b.Institution)
	}
	if !b.IncludeStudentName || !b.IncludeStudentID || !b.IncludeSignature {
		t.Fatalf("expected name/id/signature enabled by default")
	}
	if b.IncludeDateField {
		t.Fatalf("expected date field disabled by default")
	}
}

func TestResolveBranding_ExplicitOverrides(t *testing.T) {
	no := false
	yes := true
	b := ResolveBranding(Branding{
		StudentInfo: StudentInfo{
			IncludeStudentName: &no,
			IncludeDateField:   &yes,
		},
	})
	if b.IncludeStudentName {
		t.Fatalf("explicit false should win")
	}
	if !b.IncludeDateField {
		t.Fatalf("explicit true should win")
	}
	fields := b.StudentFields()
	if !reflect.DeepEqual(fields, []string{"Student ID", "Signature", "Date"}) {
		t.Fatalf("unexpected student fields %v", fields)
	}
}

func TestResolvedBranding_HeaderLines(t *testing.T) {
	b := ResolveBranding(Branding{
		Institution: "State University",
		Department:  "Physics",
		Course:      "PHYS 101",
	})
	lines := b.HeaderLines()
	if !reflect.DeepEqual(lines, []string{"State University", "Physics", "PHYS 101"}) {
		t.Fatalf("unexpected header lines %v", lines)
	}
}

func TestResolvedBranding_Footers(t *testing.T) {
	b := ResolveBranding(Branding{
		Institution:  "Massachusetts Institute of Technology",
		AcademicYear: "2024-2025",
		Semester:     "Fall",
	})
	if got := b.FooterLeft(); got != "2024-2025 Fall" {
		t.Fatalf("unexpected footer left %q", got)
	}
	if got := b.FooterRight(); got != "MIOT" {
		t.Fatalf("expected initials for long name, got %q", got)
	}

	short := ResolveBranding(Branding{Institution: "MIT"})
	if got := short.FooterRight(); got != "MIT" {
		t.Fatalf("short name should stay intact, got %q", got)
	}
}

func TestParseBrandingOptions(t *testing.T) {
	b := ParseBrandingOptions(map[string]any{
		"university_name": "Old Name",
		"instructor":      "  Dr. Chen  ",
		"watermark":       "DRAFT",
		"student_info": map[string]any{
			"include_signature":  false,
			"include_date_field": true,
		},
	})
	if b.Institution != "Old Name" {
		t.Fatalf("expected university_name used, got %q", b.Institution)
	}
	if b.Instructor != "Dr. Chen" {
		t.Fatalf("expected trimmed instructor, got %q", b.Instructor)
	}
	if b.Watermark != "DRAFT" {
		t.Fatalf("expected watermark, got %q", b.Watermark)
	}
	if b.StudentInfo.IncludeSignature == nil || *b.StudentInfo.IncludeSignature {
		t.Fatalf("expected signature disabled")
	}
	if b.StudentInfo.IncludeDateField == nil || !*b.StudentInfo.IncludeDateField {
		t.Fatalf("expected date field enabled")
	}
	if b.StudentInfo.IncludeStudentName != nil {
		t.Fatalf("unset flags should stay nil")
	}
}

func TestParseBrandingOptions_InstitutionKeyWins(t *testing.T) {
	b := ParseBrandingOptions(map[string]any{
		"university_name":  "Old Name",
		"institution_name": "New Name",
	})
	if b.Institution != "New Name" {
		t.Fatalf("institution_name should win, got %q", b.Institution)
	}
}

func TestParseBrandingOptions_IgnoresWrongTypes(t *testing.T) {
	b := ParseBrandingOptions(map[string]any{
		"student_info": map[string]any{
			"include_signature": "nope",
		},
	})
	if b.StudentInfo.IncludeSignature != nil {
		t.Fatalf("non-bool flag should be ignored")
	}
}

func TestAbbreviateInstitution(t *testing.T) {
	if got := abbreviateInstitution("University of California, Berkeley", 30); got != "UOCB" {
		t.Fatalf("unexpected initials %q", got)
	}
	if got := abbreviateInstitution("Short", 30); got != "Short" {
		t.Fatalf("short names unchanged, got %q", got)
	}
}
