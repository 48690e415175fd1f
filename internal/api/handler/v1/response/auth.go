package response

import "github.com/sparkslearn/console/internal/domain"

type LoginResponse struct {
	Token    string          `json:"token"`
	Operator domain.Operator `json:"operator"`
}
