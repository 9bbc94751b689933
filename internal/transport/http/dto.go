package rest

import (
	"github.com/Gunvolt24/purchase-order/internal/domain"
)

const (
	problemType  = "https://tools.ietf.org/html/rfc9110#section-15.5.1"
	problemTitle = "One or more validation errors occurred."
)

// validationProblem: тело 400 при ошибках валидации: сообщения сгруппированы по полю.
type validationProblem struct {
	Type   string              `json:"type"`
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Errors map[string][]string `json:"errors"`
}

func newValidationProblem(status int, failures domain.ValidationOutcome) validationProblem {
	return validationProblem{
		Type:   problemType,
		Title:  problemTitle,
		Status: status,
		Errors: failures.ByField(),
	}
}
