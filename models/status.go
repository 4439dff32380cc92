package models

// StatusResponse is the status of an external payment provider resource
type StatusResponse struct {
	Status string `json:"status"`
}
