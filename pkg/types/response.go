package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error  APIError `json:"error"`
	Errors []string `json:"errors,omitempty"`
}

// Page wraps an offset-paginated collection response.
type Page[T any] struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Data    []T   `json:"data"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"hasMore"`
}
