package models

// ErrorResponse is the error envelope for all API errors.
type ErrorResponse struct {
	Message string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse is the envelope for mutations that return a message.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Metadata holds the distinct filter values present across all notes.
type Metadata struct {
	Departments []string `json:"departments"`
	Years       []string `json:"years"`
	Subjects    []string `json:"subjects"`
}
