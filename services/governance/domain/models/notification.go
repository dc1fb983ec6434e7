package models

import "github.com/google/uuid"

// NotificationCategory classifies a notification for the recipient's inbox.
type NotificationCategory string

const (
	CategoryContentPending  NotificationCategory = "CONTENT_PENDING"
	CategoryContentApproved NotificationCategory = "CONTENT_APPROVED"
	CategoryContentRejected NotificationCategory = "CONTENT_REJECTED"
	CategoryNewContent      NotificationCategory = "NEW_CONTENT"
)

// NotificationEvent is a transient delivery instruction handed to a NotificationSink.
type NotificationEvent struct {
	RecipientID      uuid.UUID            `json:"recipient_id"`
	Category         NotificationCategory `json:"category"`
	Title            string               `json:"title"`
	Message          string               `json:"message"`
	RelatedContentID uuid.UUID            `json:"related_content_id"`
}
