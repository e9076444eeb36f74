package controllers

import (
	"fmt"
	"net/http"
	"time"

	"plantmon/config"
	"plantmon/middlewares"
	"plantmon/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReadingRequest is the ingestion wire format posted by the serial bridge.
// Timestamp is optional and defaults to the UTC receipt time.
type ReadingRequest struct {
	HardwareIdentifier string     `json:"hardwareIdentifier" binding:"required"`
	Timestamp          *time.Time `json:"timestamp"`
	MoistureLevel      *float64   `json:"moistureLevel" binding:"required"`
	MoistureRaw        *float64   `json:"moistureRaw"`
}

// ReceiveReading appends one sensor reading for a known device. No dedup and
// no range validation happen here; the alert scanner interprets thresholds.
func ReceiveReading(c *gin.Context) {
	var req ReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	var device models.Device
	if err := config.DB.Where("hardware_identifier = ?", req.HardwareIdentifier).First(&device).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("device not found: %s", req.HardwareIdentifier)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve device"})
		return
	}

	timestamp := time.Now().UTC()
	if req.Timestamp != nil {
		timestamp = req.Timestamp.UTC()
	}

	reading := models.SensorReading{
		DeviceID:      device.ID,
		Timestamp:     timestamp,
		MoistureLevel: *req.MoistureLevel,
		MoistureRaw:   req.MoistureRaw,
	}
	if err := config.DB.Create(&reading).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store reading"})
		return
	}

	// Refresh the device's liveness alongside the reading.
	device.LastSeen = timestamp
	if device.Status != models.StatusActive {
		device.Status = models.StatusActive
	}
	config.DB.Save(&device)

	c.JSON(http.StatusOK, gin.H{
		"message":       "Data received successfully",
		"device":        device.HardwareIdentifier,
		"timestamp":     reading.Timestamp,
		"moistureLevel": reading.MoistureLevel,
	})
}

// GetHistory returns a device's readings, newest first. The device must
// belong to the calling user.
func GetHistory(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	hardwareID := c.Query("hardware_id")
	if hardwareID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hardware_id query parameter required"})
		return
	}

	var device models.Device
	if err := config.DB.Where("hardware_identifier = ? AND user_id = ?", hardwareID, userID).First(&device).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
		return
	}

	var readings []models.SensorReading
	if err := config.DB.Where("device_id = ?", device.ID).Order("timestamp desc").Find(&readings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch readings"})
		return
	}

	c.JSON(http.StatusOK, readings)
}
