package handlers

import "encoding/json"

// createdResponse is returned with 201 whatever 2xx the upstream used.
type createdResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Booking json.RawMessage `json:"booking"`
}

type errorResponse struct {
	Error any `json:"error"`
}
