package utils

// MaxResultLimit - жёсткий потолок размера выдачи, не зависит от клиента
const MaxResultLimit = 100

// ClampLimit приводит запрошенный лимит к [1, max]. Неположительный лимит
// означает «по умолчанию», а по умолчанию отдаётся максимум.
func ClampLimit(limit, max int) int {
	if max <= 0 || max > MaxResultLimit {
		max = MaxResultLimit
	}
	if limit <= 0 || limit > max {
		return max
	}
	return limit
}
