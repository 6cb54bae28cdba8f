package models

// Response is the envelope returned by every endpoint. Pagination is
// only present on list responses.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Total  int64 `json:"total"`
	Limit  int64 `json:"limit"`
	Offset int64 `json:"offset"`
}

func NewMessageResponse(success bool, message string) Response {
	return Response{
		Success: success,
		Message: message,
	}
}

func NewValidationResponse(errors interface{}) Response {
	return Response{
		Success: false,
		Message: "validation failed",
		Errors:  errors,
	}
}

func NewDataResponse(message string, data interface{}) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func NewListResponse(message string, data interface{}, pagination Pagination) Response {
	return Response{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: &pagination,
	}
}
