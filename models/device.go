package models

import "time"

// Connection types a device can report when it registers.
const (
	ConnectionUSB       = "USB"
	ConnectionBluetooth = "Bluetooth"
	ConnectionWiFi      = "WiFi"
)

// Device statuses. A device with no status yet is the empty string.
const (
	StatusActive       = "Active"
	StatusInactive     = "Inactive"
	StatusDisconnected = "Disconnected"
)

type Device struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	HardwareIdentifier string    `json:"hardware_identifier" gorm:"uniqueIndex;not null"`
	ConnectionType     string    `json:"connection_type"`
	ConnectionAddress  string    `json:"connection_address" gorm:"uniqueIndex"`
	UserID             uint      `json:"user_id" gorm:"not null"`
	Status             string    `json:"status"`
	LastSeen           time.Time `json:"last_seen"`
}
