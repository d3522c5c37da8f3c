package server

// CountResponse is the JSON body of GET /count.
type CountResponse struct {
	N         int64  `json:"n"`
	Count     uint64 `json:"count,omitempty"`
	Duration  string `json:"duration"`
	Algorithm string `json:"algorithm"`
	Error     string `json:"error,omitempty"`
}

// CompareEntry is one counter's line in a CompareResponse.
type CompareEntry struct {
	Algorithm string `json:"algorithm"`
	Count     uint64 `json:"count,omitempty"`
	Duration  string `json:"duration"`
	Error     string `json:"error,omitempty"`
}

// CompareResponse is the JSON body of GET /compare.
type CompareResponse struct {
	N          int64          `json:"n"`
	Results    []CompareEntry `json:"results"`
	Consistent bool           `json:"consistent"`
}

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	// Error is the HTTP status text.
	Error string `json:"error"`
	// Message describes the failure.
	Message string `json:"message,omitempty"`
}
