package common

type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`

	// SiblingDrafts accompanies the requires_bulk_submission code: how many
	// other drafts share the entry's week.
	SiblingDrafts *int `json:"siblingDrafts,omitempty"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		Message: message,
	}
}

func NewCodedErrorResponse(code string, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}
