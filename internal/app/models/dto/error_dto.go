package dto

// ErrorResponse is the envelope for HTTP-level failures (bad request
// bodies, auth failures, reload errors). Conversational failures never
// use it; those travel as normal webhook replies.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a single HTTP-level failure.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse builds an error envelope.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}
