package models

import "encoding/json"

// AppDetailsResult is a single entry of the Steam appdetails payload
type AppDetailsResult struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// AppDetailsEnvelope is the Steam appdetails payload, keyed by the requested app id
type AppDetailsEnvelope map[string]AppDetailsResult

// HasData reports whether the entry carries a usable data object
func (r AppDetailsResult) HasData() bool {
	return len(r.Data) > 0 && string(r.Data) != "null"
}
