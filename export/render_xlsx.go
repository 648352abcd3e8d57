package export

import (
	"bytes"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const xlsxSheetName = "Questions"

// XLSXRenderer renders a grading sheet: one row per question with type,
// points and difficulty. Instructor view adds the correct answer and
// explanation columns; student view omits them.
type XLSXRenderer struct{}

// NewXLSXRenderer creates an XLSX renderer.
func NewXLSXRenderer() XLSXRenderer {
	return XLSXRenderer{}
}

// Render produces the workbook bytes.
func (r XLSXRenderer) Render(c *Content, b Branding, mode ViewMode) ([]byte, error) {
	if c == nil {
		return nil, NewError(KindValidation, "content is nil", nil)
	}
	branding := ResolveBranding(b)

	file := excelize.NewFile()
	defer func() {
		_ = file.Close()
	}()

	if name := file.GetSheetName(0); name != xlsxSheetName {
		file.SetSheetName(name, xlsxSheetName)
	}

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
	})
	if err != nil {
		return nil, NewError(KindInternal, "xlsx style failed", err)
	}

	row := 1
	if err := setRow(file, row, []any{branding.Institution + " - " + c.Title}); err != nil {
		return nil, err
	}
	row += 2

	headers := []any{"#", "Section", "Question", "Type", "Points", "Difficulty"}
	if mode == ViewInstructor {
		headers = append(headers, "Correct Answer", "Explanation")
	}
	if err := setRow(file, row, headers); err != nil {
		return nil, err
	}
	start, _ := excelize.CoordinatesToCellName(1, row)
	end, _ := excelize.CoordinatesToCellName(len(headers), row)
	_ = file.SetCellStyle(xlsxSheetName, start, end, headerStyle)
	row++

	number := 0
	for _, section := range layoutSections(c) {
		for _, q := range section.Questions {
			number++
			cells := []any{
				number,
				section.Name,
				displayText(q),
				string(q.Type),
				q.PointsOrDefault(),
				q.Difficulty,
			}
			if mode == ViewInstructor {
				cells = append(cells, q.CorrectAnswer, q.Explanation)
			}
			if err := setRow(file, row, cells); err != nil {
				return nil, err
			}
			row++
		}
	}

	row++
	if err := setRow(file, row, []any{"Total", "", "", "", c.DerivedTotalPoints(), ""}); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := file.WriteTo(&buf); err != nil {
		return nil, NewError(KindInternal, "xlsx output failed", err)
	}
	return buf.Bytes(), nil
}

func setRow(file *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return NewError(KindInternal, "xlsx cell name for row "+strconv.Itoa(row)+" failed", err)
	}
	if err := file.SetSheetRow(xlsxSheetName, cell, &values); err != nil {
		return NewError(KindInternal, "xlsx row write failed", err)
	}
	return nil
}
