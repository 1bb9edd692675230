package httpdto

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func NewErrorResponse(err string, code string) ErrorResponse {
	return ErrorResponse{
		Error: err,
		Code:  code,
	}
}

// OKResponse is returned by endpoints with nothing else to say.
type OKResponse struct {
	OK bool `json:"ok"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
