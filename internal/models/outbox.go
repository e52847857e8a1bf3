package models

import (
	"time"

	"gorm.io/datatypes"
)

// NotificationOutbox records every published domain event. Rows are written
// in the same transaction as the state change they describe, so the event
// log stays consistent with the stores even if the broker is down.
type NotificationOutbox struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	EventID   string         `json:"eventId" gorm:"not null;size:255;uniqueIndex"`
	EventType string         `json:"eventType" gorm:"not null;size:100;index"`
	Payload   datatypes.JSON `json:"payload"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (NotificationOutbox) TableName() string {
	return "notification_outbox"
}
