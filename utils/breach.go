package utils

import "plantmon/models"

// IsLowMoisture reports whether a reading breaches the plant's healthy band
// on the low side. The band is inclusive, so only strictly-below counts.
func IsLowMoisture(reading models.SensorReading, plant models.Plant) bool {
	return reading.MoistureLevel < plant.MoistureLowRange
}

// BreachType returns the notification type a reading would produce, or ""
// when the reading sits inside the healthy band. HighMoisture is reserved
// taxonomy: recognized here but no scanner pass produces it yet.
func BreachType(reading models.SensorReading, plant models.Plant) string {
	if reading.MoistureLevel < plant.MoistureLowRange {
		return models.NotificationLowMoisture
	}
	if reading.MoistureLevel > plant.MoistureHighRange {
		return models.NotificationHighMoisture
	}
	return ""
}
