package domain

import (
	"strings"
	"time"
)

type CollegeStatus string

const (
	CollegeActive   CollegeStatus = "Active"
	CollegeInactive CollegeStatus = "Inactive"
)

type College struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Location     string        `json:"location"`
	AdminName    string        `json:"admin_name"`
	Status       CollegeStatus `json:"status"`
	StudentCount int           `json:"student_count"`
	CreatedAt    time.Time     `json:"created_at"`
}

// NormalizeCollegeName lower-cases name, collapses inner whitespace runs and trims it.
// Import files are matched against colleges on this form.
func NormalizeCollegeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
