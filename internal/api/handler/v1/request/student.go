package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var errNoStudents = errors.New("at least one student is required")

type CreateStudentRequest struct {
	Name        string `json:"name"`
	RollNumber  string `json:"roll_no"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dob"`
}

func (req *CreateStudentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&req.RollNumber, validation.Length(0, 40)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.DateOfBirth, validation.Date("2006-01-02")),
	)
}

type AwardPointsRequest struct {
	Points        int  `json:"points"`
	TaskCompleted bool `json:"task_completed"`
}

func (req *AwardPointsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Points, validation.Min(0), validation.Max(10000)),
	)
}

type StudentRef struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type BulkDeleteRequest struct {
	Students []StudentRef `json:"students"`
}

func (req *BulkDeleteRequest) Validate() error {
	if len(req.Students) == 0 {
		return errNoStudents
	}

	for i := range req.Students {
		ref := &req.Students[i]
		err := validation.ValidateStruct(
			ref,
			validation.Field(&ref.ID, validation.Required),
			validation.Field(&ref.Email, is.Email),
		)
		if err != nil {
			return err
		}
	}

	return nil
}
