package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func openWorkbookRows(t *testing.T, payload []byte) [][]string {
	t.Helper()
	file, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() {
		_ = file.Close()
	}()
	rows, err := file.GetRows(xlsxSheetName)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	return rows
}

func TestXLSXRenderer_StudentView(t *testing.T) {
	out, err := NewXLSXRenderer().Render(htmlTestContent(), Branding{Institution: "State University"}, ViewStudent)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	rows := openWorkbookRows(t, out)

	if rows[0][0] != "State University - Algebra Quiz" {
		t.Fatalf("unexpected title row %q", rows[0][0])
	}
	header := rows[2]
	for _, col := range header {
		if col == "Correct Answer" || col == "Explanation" {
			t.Fatalf("student view must omit answer columns")
		}
	}
	if header[0] != "#" || header[2] != "Question" {
		t.Fatalf("unexpected header %v", header)
	}
	if rows[3][2] != "What is 2+2?" {
		t.Fatalf("unexpected first question row %v", rows[3])
	}
}

func TestXLSXRenderer_InstructorView(t *testing.T) {
	out, err := NewXLSXRenderer().Render(htmlTestContent(), Branding{}, ViewInstructor)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	rows := openWorkbookRows(t, out)

	header := rows[2]
	if header[len(header)-2] != "Correct Answer" || header[len(header)-1] != "Explanation" {
		t.Fatalf("expected answer columns, got %v", header)
	}
	if rows[3][6] != "b" {
		t.Fatalf("expected correct answer cell, got %v", rows[3])
	}
}

func TestXLSXRenderer_TotalRow(t *testing.T) {
	c := htmlTestContent()
	out, err := NewXLSXRenderer().Render(c, Branding{}, ViewStudent)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	rows := openWorkbookRows(t, out)

	last := rows[len(rows)-1]
	if last[0] != "Total" {
		t.Fatalf("expected total row, got %v", last)
	}
	if last[4] != "5" {
		t.Fatalf("expected derived total 5, got %v", last)
	}
}

func TestXLSXRenderer_NilContent(t *testing.T) {
	if _, err := NewXLSXRenderer().Render(nil, Branding{}, ViewStudent); err == nil {
		t.Fatalf("expected validation error")
	}
}
