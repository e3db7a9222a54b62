package dto

// ErrorResponse is the standardized error envelope for the API
type ErrorResponse struct {
	Success bool              `json:"success"`
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// NewErrorResponse builds an error envelope
func NewErrorResponse(code int, message string) ErrorResponse {
	return ErrorResponse{Success: false, Code: code, Message: message}
}

// SuccessResponse is the standardized success envelope for the API. Data is
// always present so callers can rely on an explicit null when there is no
// result.
type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// NewSuccessResponse builds a success envelope
func NewSuccessResponse(data any) SuccessResponse {
	return SuccessResponse{Success: true, Data: data}
}
