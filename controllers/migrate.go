package controllers

import (
	"plantmon/config"
	"plantmon/models"

	"gorm.io/gorm"
)

// MigrateModels runs the database migrations
func MigrateModels(db *gorm.DB) {
	config.DB = db
	db.AutoMigrate(
		&models.User{},
		&models.Device{},
		&models.Plant{},
		&models.UserPlant{},
		&models.SensorReading{},
		&models.Notification{},
		&models.NotificationHistory{},
	)
}
