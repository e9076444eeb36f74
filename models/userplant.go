package models

import "time"

// UserPlant pairs one user, one catalog plant and one monitoring device.
// A device monitors at most one plant per user at a time.
type UserPlant struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_user_device;not null"`
	PlantID   uint      `json:"plant_id" gorm:"not null"`
	DeviceID  uint      `json:"device_id" gorm:"uniqueIndex:idx_user_device;not null"`
	CreatedAt time.Time `json:"created_at"`

	User   User   `json:"-" gorm:"foreignKey:UserID"`
	Plant  Plant  `json:"plant" gorm:"foreignKey:PlantID"`
	Device Device `json:"device" gorm:"foreignKey:DeviceID"`
}
