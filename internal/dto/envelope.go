package dto

// Envelope is the standard success payload: {success, data, message?}.
// List endpoints add a count or pagination block.
type Envelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Count      *int        `json:"count,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination mirrors the page/limit query contract of the list endpoints.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ErrorResponse is the error payload: {error, message}.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// OK wraps data in a success envelope.
func OK(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

// OKMessage wraps data and a human readable message in a success envelope.
func OKMessage(data interface{}, message string) Envelope {
	return Envelope{Success: true, Data: data, Message: message}
}

// OKList wraps a list and its length in a success envelope.
func OKList(data interface{}, count int) Envelope {
	return Envelope{Success: true, Data: data, Count: &count}
}
