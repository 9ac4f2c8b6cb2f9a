package types

// SuccessEnvelope is the body of every 2xx response: {"success": true, "data": ...}.
type SuccessEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// APIError is the client-facing error. Details are only set for codes that allow them.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope is the body of every failed response: {"success": false, "error": {...}}.
type ErrorEnvelope struct {
	Success bool     `json:"success"`
	Error   APIError `json:"error"`
}

func NewSuccessEnvelope(data any) SuccessEnvelope {
	return SuccessEnvelope{Success: true, Data: data}
}

func NewErrorEnvelope(apiErr APIError) ErrorEnvelope {
	return ErrorEnvelope{Success: false, Error: apiErr}
}

// Envelope decodes either shape into one value, typed on the payload. Exactly one
// of Data or Error is meaningful, selected by Success.
type Envelope[T any] struct {
	Success bool      `json:"success"`
	Data    T         `json:"data"`
	Error   *APIError `json:"error,omitempty"`
}
