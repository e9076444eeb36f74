package models

import "time"

// SensorReading is an immutable, append-only fact produced by the ingestion
// endpoint. Latest-reading queries order by Timestamp descending.
type SensorReading struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	DeviceID      uint      `json:"device_id" gorm:"index;not null"`
	Timestamp     time.Time `json:"timestamp" gorm:"index;not null"`
	MoistureLevel float64   `json:"moisture_level"`
	MoistureRaw   *float64  `json:"moisture_raw,omitempty"`

	Device Device `json:"-" gorm:"foreignKey:DeviceID;constraint:OnDelete:CASCADE"`
}
