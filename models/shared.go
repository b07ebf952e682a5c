package models

// PrefetchPayload is the queue payload of an availability pre-fetch task.
type PrefetchPayload struct {
	Domain      string `json:"domain,omitempty"`
	ClientEmail string `json:"clientEmail,omitempty"`
	Date        string `json:"date"`
	ResourceID  string `json:"resourceId,omitempty"`
}
