package dto

import "time"

// TenderEventMessage is the wire shape of a lifecycle event on the audit
// topic.
type TenderEventMessage struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// UploadedFile carries one multipart upload from controller to service.
type UploadedFile struct {
	FileName    string
	ContentType string
	Data        []byte
}
