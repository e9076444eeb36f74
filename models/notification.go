package models

import "time"

// Notification types. Only LowMoisture has a producer today; HighMoisture
// and SystemAlert are reserved taxonomy values.
const (
	NotificationLowMoisture  = "LowMoisture"
	NotificationHighMoisture = "HighMoisture"
	NotificationSystemAlert  = "SystemAlert"
)

// Notification is the user-facing record. Append-only except for the
// IsRead transition.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Message   string    `json:"message" gorm:"not null"`
	Type      string    `json:"type" gorm:"not null"`
	IsRead    bool      `json:"is_read" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationHistory exists purely to suppress repeat alerts: at most one
// row per (pairing, type, UTC calendar day). MoistureValue and
// ThresholdValue capture the breach at alert time.
type NotificationHistory struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	UserPlantID      uint      `json:"user_plant_id" gorm:"index:idx_history_dedup;not null"`
	NotificationType string    `json:"notification_type" gorm:"index:idx_history_dedup;not null"`
	MoistureValue    float64   `json:"moisture_value"`
	ThresholdValue   float64   `json:"threshold_value"`
	CreatedAt        time.Time `json:"created_at" gorm:"index:idx_history_dedup"`
}
