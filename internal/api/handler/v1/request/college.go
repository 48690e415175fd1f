package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/sparkslearn/console/internal/domain"
)

type CreateCollegeRequest struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	AdminName string `json:"admin_name"`
}

func (req *CreateCollegeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 120)),
		validation.Field(&req.Location, validation.Required, validation.Length(2, 120)),
		validation.Field(&req.AdminName, validation.Required, validation.Length(2, 100)),
	)
}

type UpdateCollegeStatusRequest struct {
	Status string `json:"status"`
}

func (req *UpdateCollegeStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required,
			validation.In(string(domain.CollegeActive), string(domain.CollegeInactive))),
	)
}
