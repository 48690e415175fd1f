// Package reconcile partitions an untrusted roster CSV into rows that can be registered
// and rows that must be refused. It performs no I/O.
package reconcile

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sparkslearn/console/internal/domain"
)

// RequiredColumns are the header names every roster file must carry, in any order and case.
var RequiredColumns = []string{"name", "roll_no", "email", "dob", "college_name"}

// utf8BOM is written by spreadsheet tools at the start of exported CSV files.
const utf8BOM = "\ufeff"

var (
	ErrValidationFailed = errors.New("validation failed")
	errEmptyFile        = errors.New("CSV is empty or missing data rows")

	emailExp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidationError rejects a whole file. Missing lists the required columns absent from the header.
type ValidationError struct {
	Err     error
	Missing []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return "Missing columns: " + strings.Join(e.Missing, ", ")
	}

	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// Reconcile checks every data row of text against college and roster.
// newID generates the local key of each accepted student.
// Row numbers count the header as row 1; blank lines are ignored.
// Embedded commas are not supported: a quoted field is split like any other.
func Reconcile(text string, college domain.College, roster []domain.Student, newID func() string) (domain.ImportBatch, error) {
	lines := splitLines(strings.TrimPrefix(text, utf8BOM))
	if len(lines) < 2 {
		return domain.ImportBatch{}, &ValidationError{Err: errEmptyFile}
	}

	header := splitFields(strings.ToLower(lines[0]))
	index := make(map[string]int, len(header))
	for i, h := range header {
		if _, ok := index[h]; !ok {
			index[h] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return domain.ImportBatch{}, &ValidationError{Err: ErrValidationFailed, Missing: missing}
	}

	target := domain.NormalizeCollegeName(college.Name)

	seen := make(map[string]struct{}, len(roster))
	for _, s := range roster {
		seen[domain.NormalizeEmail(s.Email)] = struct{}{}
	}

	batch := domain.ImportBatch{
		Accepted: []domain.Student{},
		Rejected: []domain.Rejection{},
	}
	for i, line := range lines[1:] {
		row := i + 2
		parts := splitFields(line)
		if len(parts) < len(RequiredColumns) {
			batch.Skipped++
			continue
		}

		field := func(col string) string {
			idx := index[col]
			if idx >= len(parts) {
				return ""
			}

			return parts[idx]
		}

		rawCollege := field("college_name")
		if domain.NormalizeCollegeName(rawCollege) != target {
			batch.Rejected = append(batch.Rejected, domain.Rejection{
				Row:    row,
				Reason: fmt.Sprintf("Row %d: College mismatch (%q vs %q)", row, rawCollege, college.Name),
			})
			continue
		}

		email := domain.NormalizeEmail(field("email"))
		if !emailExp.MatchString(email) {
			batch.Rejected = append(batch.Rejected, domain.Rejection{
				Row:    row,
				Reason: fmt.Sprintf("Row %d: Invalid email %q", row, field("email")),
			})
			continue
		}

		if _, ok := seen[email]; ok {
			batch.Rejected = append(batch.Rejected, domain.Rejection{
				Row:    row,
				Reason: fmt.Sprintf("Row %d: Duplicate email %q", row, email),
			})
			continue
		}
		seen[email] = struct{}{}

		batch.Accepted = append(batch.Accepted, domain.Student{
			ID:          newID(),
			Name:        field("name"),
			RollNumber:  field("roll_no"),
			Email:       email,
			DateOfBirth: field("dob"),
			CollegeID:   college.ID,
			Badges:      []string{},
		})
	}

	return batch, nil
}

func splitLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}

	return lines
}

func splitFields(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}
