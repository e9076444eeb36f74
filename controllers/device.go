package controllers

import (
	"net/http"
	"time"

	"plantmon/config"
	"plantmon/middlewares"
	"plantmon/models"

	"github.com/gin-gonic/gin"
)

type registerDeviceRequest struct {
	HardwareIdentifier string `json:"hardware_identifier" binding:"required"`
	ConnectionType     string `json:"connection_type" binding:"required"`
	ConnectionAddress  string `json:"connection_address" binding:"required"`
}

func validConnectionType(t string) bool {
	switch t {
	case models.ConnectionUSB, models.ConnectionBluetooth, models.ConnectionWiFi:
		return true
	}
	return false
}

// RegisterDevice creates a device for the calling user. Ingestion never
// auto-registers, so this is the only path that creates devices.
func RegisterDevice(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req registerDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if !validConnectionType(req.ConnectionType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "connection_type must be USB, Bluetooth or WiFi"})
		return
	}

	device := models.Device{
		HardwareIdentifier: req.HardwareIdentifier,
		ConnectionType:     req.ConnectionType,
		ConnectionAddress:  req.ConnectionAddress,
		UserID:             userID,
		Status:             models.StatusActive,
		LastSeen:           time.Now().UTC(),
	}
	if err := config.DB.Create(&device).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Device already registered"})
		return
	}

	c.JSON(http.StatusCreated, device)
}

// GetDevices lists the calling user's devices.
func GetDevices(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var devices []models.Device
	if err := config.DB.Where("user_id = ?", userID).Find(&devices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch devices"})
		return
	}
	c.JSON(http.StatusOK, devices)
}
