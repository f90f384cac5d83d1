package availability

// Error is an application-layer error that can be mapped to an HTTP response.
type Error struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

func validationError(field, reason string) *Error {
	return &Error{
		Status:  422,
		Code:    "VALIDATION_ERROR",
		Message: "invalid " + field,
		Details: map[string]any{field: reason},
	}
}

func pastDateError(date string) *Error {
	return &Error{
		Status:  422,
		Code:    "PAST_DATE",
		Message: "cannot modify availability for a past date",
		Details: map[string]any{"date": date},
	}
}

func persistenceError(cause error) *Error {
	return &Error{
		Status:  502,
		Code:    "PERSISTENCE_ERROR",
		Message: "failed to persist availability",
		Details: map[string]any{"cause": cause.Error()},
	}
}
