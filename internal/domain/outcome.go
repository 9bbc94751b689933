package domain

// OutcomeKind: вид результата конвейера обработки/поиска заказа.
type OutcomeKind int

const (
	OutcomeCreated OutcomeKind = iota + 1
	OutcomeFound
	OutcomeNotFound
	OutcomeValidationFailed
	OutcomeUnprocessable
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCreated:
		return "created"
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeValidationFailed:
		return "validation_failed"
	case OutcomeUnprocessable:
		return "unprocessable"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome: закрытый набор результатов; заполнены только поля, относящиеся к Kind.
type Outcome struct {
	Kind     OutcomeKind
	Summary  *OrderSummary
	Failures ValidationOutcome
	Message  string
}

func Created(s *OrderSummary) Outcome { return Outcome{Kind: OutcomeCreated, Summary: s} }
func Found(s *OrderSummary) Outcome   { return Outcome{Kind: OutcomeFound, Summary: s} }
func NotFound(msg string) Outcome     { return Outcome{Kind: OutcomeNotFound, Message: msg} }
func Unprocessable(msg string) Outcome {
	return Outcome{Kind: OutcomeUnprocessable, Message: msg}
}
func Failed(msg string) Outcome { return Outcome{Kind: OutcomeFailed, Message: msg} }
func ValidationFailed(failures ValidationOutcome) Outcome {
	return Outcome{Kind: OutcomeValidationFailed, Failures: failures}
}
