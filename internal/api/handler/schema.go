package handler

// errorResponse is the envelope rendered by the central error handler.
// Declared here for the API documentation only.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
