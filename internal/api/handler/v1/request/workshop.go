package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/sparkslearn/console/internal/domain"
)

type CreateWorkshopRequest struct {
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
	MaxPoints int    `json:"max_points"`
}

func (req *CreateWorkshopRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 160)),
		validation.Field(&req.StartDate, validation.Date("2006-01-02")),
		validation.Field(&req.EndDate, validation.Date("2006-01-02")),
		validation.Field(&req.Status, validation.In(
			string(domain.WorkshopUpcoming), string(domain.WorkshopOngoing), string(domain.WorkshopCompleted))),
		validation.Field(&req.MaxPoints, validation.Required, validation.Min(1), validation.Max(10000)),
	)
}

type SubmitWorkRequest struct {
	StudentID string `json:"student_id"`
	Content   string `json:"content"`
}

func (req *SubmitWorkRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StudentID, validation.Required),
		validation.Field(&req.Content, validation.Required, validation.Length(1, 4000)),
	)
}

type GradeSubmissionRequest struct {
	Decision string `json:"decision"`
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

func (req *GradeSubmissionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Decision, validation.Required, validation.In(DecisionApprove, DecisionReject)),
		validation.Field(&req.Score, validation.Min(0)),
		validation.Field(&req.Feedback, validation.Length(0, 2000)),
	)
}
