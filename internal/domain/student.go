package domain

import (
	"strings"
	"time"
)

// LocalKeyPrefix marks a student key generated locally before the student was synced
// to the identity provider.
const LocalKeyPrefix = "s-"

type Student struct {
	ID                string    `json:"id"`
	AuthUID           string    `json:"auth_uid,omitempty"`
	Name              string    `json:"name"`
	RollNumber        string    `json:"roll_no"`
	Email             string    `json:"email"`
	DateOfBirth       string    `json:"dob"`
	CollegeID         string    `json:"college_id"`
	TotalPoints       int       `json:"total_points"`
	Badges            []string  `json:"badges"`
	TasksCompleted    int       `json:"tasks_completed"`
	AttendancePercent int       `json:"attendance_percent"`
	CreatedAt         time.Time `json:"created_at"`
}

// IsLocalKey reports whether key is a placeholder that never reached the identity provider.
func IsLocalKey(key string) bool {
	return strings.HasPrefix(key, LocalKeyPrefix)
}

// NormalizeEmail is the form used as identity account key and for every email comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type RankedStudent struct {
	Student
	Rank int `json:"rank"`
}
