package domain

import "time"

type WorkshopStatus string

const (
	WorkshopUpcoming  WorkshopStatus = "Upcoming"
	WorkshopOngoing   WorkshopStatus = "Ongoing"
	WorkshopCompleted WorkshopStatus = "Completed"
)

// Workshop is a task students of one college submit work for. MaxPoints caps the score of
// an approved submission.
type Workshop struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	CollegeID string         `json:"college_id"`
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
	Status    WorkshopStatus `json:"status"`
	MaxPoints int            `json:"max_points"`
	CreatedAt time.Time      `json:"created_at"`
}

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "Pending"
	SubmissionApproved SubmissionStatus = "Approved"
	SubmissionRejected SubmissionStatus = "Rejected"
)

type Submission struct {
	ID          string           `json:"id"`
	WorkshopID  string           `json:"workshop_id"`
	StudentID   string           `json:"student_id"`
	Content     string           `json:"content"`
	Status      SubmissionStatus `json:"status"`
	Score       int              `json:"score"`
	Feedback    string           `json:"feedback,omitempty"`
	SubmittedAt time.Time        `json:"submitted_at"`
	GradedAt    *time.Time       `json:"graded_at,omitempty"`
}

// Grade is an operator decision on a pending submission. Score is ignored on rejection.
type Grade struct {
	Approve  bool
	Score    int
	Feedback string
}
