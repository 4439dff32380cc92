package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
)

// ResponseResource is the body returned when a request ends in an error
type ResponseResource struct {
	Message string `json:"message"`
}

// NewMessageResponse wraps a message in a response resource
func NewMessageResponse(message string) *ResponseResource {
	return &ResponseResource{Message: message}
}

// WriteJSONWithStatus serialises data as a json response body with the
// supplied http status. Encoding failures are logged, not surfaced - the
// status has already been written by then.
func WriteJSONWithStatus(w http.ResponseWriter, req *http.Request, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.ErrorR(req, fmt.Errorf("error writing response: [%v]", err))
	}
}
