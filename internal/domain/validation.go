package domain

const SeverityError = "Error"

// ValidationFailure: ошибка валидации конкретного поля.
type ValidationFailure struct {
	Field    string `json:"field"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// ValidationOutcome: упорядоченный список ошибок; пустой список, запрос валиден.
type ValidationOutcome []ValidationFailure

func (o ValidationOutcome) IsValid() bool { return len(o) == 0 }

// ByField: сообщения, сгруппированные по имени поля (порядок правил сохраняется).
func (o ValidationOutcome) ByField() map[string][]string {
	grouped := make(map[string][]string, len(o))
	for _, f := range o {
		grouped[f.Field] = append(grouped[f.Field], f.Message)
	}
	return grouped
}
