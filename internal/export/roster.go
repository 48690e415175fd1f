// Package export writes college rosters as CSV or XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/sparkslearn/console/internal/domain"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var Header = []string{
	"name", "roll_no", "email", "dob", "college_name",
	"total_points", "tasks_completed", "attendance_percentage", "rank",
}

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}

	return "", fmt.Errorf("unsupported export format %q", s)
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	return "text/csv"
}

// Rows renders ranked students of college in Header order. Text cells go through safeCell.
func Rows(college domain.College, students []domain.RankedStudent) [][]string {
	rows := make([][]string, 0, len(students))
	for _, s := range students {
		rows = append(rows, []string{
			safeCell(s.Name),
			safeCell(s.RollNumber),
			safeCell(s.Email),
			safeCell(s.DateOfBirth),
			safeCell(college.Name),
			strconv.Itoa(s.TotalPoints),
			strconv.Itoa(s.TasksCompleted),
			strconv.Itoa(s.AttendancePercent),
			strconv.Itoa(s.Rank),
		})
	}

	return rows
}

// safeCell quotes values a spreadsheet would evaluate as a formula.
func safeCell(v string) string {
	if v == "" {
		return v
	}
	switch v[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + v
	}

	return v
}

func Write(w io.Writer, format Format, college domain.College, students []domain.RankedStudent) error {
	rows := Rows(college, students)
	if format == FormatXLSX {
		return writeXLSX(w, college.Name, rows)
	}

	return writeCSV(w, rows)
}

func writeCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}

	return nil
}

func writeXLSX(w io.Writer, title string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for c, h := range Header {
		cell := fmt.Sprintf("%s1", colName(c+1))
		if err := f.SetCellStr(sheet, cell, h); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("new style: %w", err)
	}
	end := colName(len(Header)) + "1"
	if err = f.SetCellStyle(sheet, "A1", end, bold); err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for r, row := range rows {
		for c, val := range row {
			cell := fmt.Sprintf("%s%d", colName(c+1), r+2)
			if err = f.SetCellStr(sheet, cell, val); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	if err = f.AutoFilter(sheet, "A1:"+end, nil); err != nil {
		return fmt.Errorf("autofilter: %w", err)
	}
	for c := 1; c <= len(Header); c++ {
		_ = f.SetColWidth(sheet, colName(c), colName(c), columnWidth(c-1, rows))
	}

	if _, err = f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	return nil
}

func columnWidth(col int, rows [][]string) float64 {
	longest := len(Header[col])
	for r := 0; r < len(rows) && r < 50; r++ {
		if l := len(rows[r][col]); l > longest {
			longest = l
		}
	}

	w := float64(longest) * 1.1
	if w < 12 {
		w = 12
	}
	if w > 40 {
		w = 40
	}

	return w
}

// sheetName trims title to the 31 characters Excel allows and drops forbidden characters.
func sheetName(title string) string {
	out := make([]rune, 0, len(title))
	for _, r := range title {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			continue
		}
		out = append(out, r)
		if len(out) == 31 {
			break
		}
	}
	if len(out) == 0 {
		return "Roster"
	}

	return string(out)
}

func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}

	return s
}
