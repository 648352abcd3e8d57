package export

import (
	"fmt"
	"strings"
	"unicode"
)

// DefaultInstitution is used when no institution or university name is given.
const DefaultInstitution = "University"

// abbreviateThreshold is the institution name length beyond which footers
// switch to initials.
const abbreviateThreshold = 30

// ResolvedBranding is Branding with all defaults applied. It is consumed
// identically by every renderer.
type ResolvedBranding struct {
	Branding

	IncludeStudentName bool
	IncludeStudentID   bool
	IncludeSignature   bool
	IncludeDateField   bool
}

// ResolveBranding fills branding defaults into a format-neutral description.
func ResolveBranding(b Branding) ResolvedBranding {
	out := ResolvedBranding{Branding: b}
	if out.Institution == "" {
		out.Institution = DefaultInstitution
	}
	out.IncludeStudentName = boolOrDefault(b.StudentInfo.IncludeStudentName, true)
	out.IncludeStudentID = boolOrDefault(b.StudentInfo.IncludeStudentID, true)
	out.IncludeSignature = boolOrDefault(b.StudentInfo.IncludeSignature, true)
	out.IncludeDateField = boolOrDefault(b.StudentInfo.IncludeDateField, false)
	return out
}

// HeaderLines returns the institutional header block, top to bottom, with
// empty fields omitted.
func (b ResolvedBranding) HeaderLines() []string {
	lines := []string{b.Institution}
	for _, v := range []string{b.Faculty, b.Department, b.Course} {
		if v != "" {
			lines = append(lines, v)
		}
	}
	return lines
}

// MetaLines returns instructor/date/term details shown under the title.
func (b ResolvedBranding) MetaLines() []string {
	var lines []string
	if b.Instructor != "" {
		lines = append(lines, "Instructor: "+b.Instructor)
	}
	if b.ExamDate != "" {
		lines = append(lines, "Date: "+b.ExamDate)
	}
	if b.AcademicYear != "" || b.Semester != "" {
		lines = append(lines, strings.TrimSpace(b.AcademicYear+" "+b.Semester))
	}
	return lines
}

// StudentFields returns the enabled student identification field labels in
// a fixed order.
func (b ResolvedBranding) StudentFields() []string {
	var fields []string
	if b.IncludeStudentName {
		fields = append(fields, "Name")
	}
	if b.IncludeStudentID {
		fields = append(fields, "Student ID")
	}
	if b.IncludeSignature {
		fields = append(fields, "Signature")
	}
	if b.IncludeDateField {
		fields = append(fields, "Date")
	}
	return fields
}

// FooterLeft is the academic year/semester footer fragment.
func (b ResolvedBranding) FooterLeft() string {
	return strings.TrimSpace(b.AcademicYear + " " + b.Semester)
}

// FooterRight is the institution footer fragment, abbreviated to initials
// when the full name is too long.
func (b ResolvedBranding) FooterRight() string {
	return abbreviateInstitution(b.Institution, abbreviateThreshold)
}

// ParseBrandingOptions builds a Branding from loosely typed caller options.
// Both "university_name" and "institution_name" are recognized; the
// institution key wins when both are present.
func ParseBrandingOptions(opts map[string]any) Branding {
	b := Branding{}
	if len(opts) == 0 {
		return b
	}

	b.Institution = optString(opts, "university_name")
	if v := optString(opts, "institution_name"); v != "" {
		b.Institution = v
	}
	b.Faculty = optString(opts, "faculty")
	b.Department = optString(opts, "department")
	b.Course = optString(opts, "course")
	b.AcademicYear = optString(opts, "academic_year")
	b.Semester = optString(opts, "semester")
	b.Instructor = optString(opts, "instructor")
	b.ExamDate = optString(opts, "exam_date")
	b.Logo = optString(opts, "logo")
	b.Watermark = optString(opts, "watermark")
	b.AdditionalNotes = optString(opts, "additional_notes")

	if raw, ok := opts["student_info"]; ok {
		if info, ok := raw.(map[string]any); ok {
			b.StudentInfo.IncludeStudentName = optBool(info, "include_student_name")
			b.StudentInfo.IncludeStudentID = optBool(info, "include_student_id")
			b.StudentInfo.IncludeSignature = optBool(info, "include_signature")
			b.StudentInfo.IncludeDateField = optBool(info, "include_date_field")
		}
	}
	return b
}

func abbreviateInstitution(name string, max int) string {
	name = strings.TrimSpace(name)
	if len(name) <= max {
		return name
	}
	var initials strings.Builder
	for _, word := range strings.Fields(name) {
		r := []rune(word)[0]
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			initials.WriteRune(unicode.ToUpper(r))
		}
	}
	if initials.Len() == 0 {
		return name
	}
	return initials.String()
}

func optString(opts map[string]any, key string) string {
	v, ok := opts[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func optBool(opts map[string]any, key string) *bool {
	v, ok := opts[key]
	if !ok || v == nil {
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil
	}
	return &b
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
