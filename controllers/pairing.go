package controllers

import (
	"net/http"

	"plantmon/config"
	"plantmon/middlewares"
	"plantmon/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createPairingRequest struct {
	PlantID  uint   `json:"plant_id" binding:"required"`
	DeviceID string `json:"hardware_identifier" binding:"required"`
}

// CreatePairing points a device at a catalog plant for the calling user.
// Re-pairing the same device replaces the previous pairing.
func CreatePairing(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req createPairingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var plant models.Plant
	if err := config.DB.First(&plant, req.PlantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plant not found"})
		return
	}

	var device models.Device
	if err := config.DB.Where("hardware_identifier = ? AND user_id = ?", req.DeviceID, userID).First(&device).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
		return
	}

	// One pairing per (user, device): drop any previous one first.
	var existing models.UserPlant
	err := config.DB.Where("user_id = ? AND device_id = ?", userID, device.ID).First(&existing).Error
	if err == nil {
		if err := config.DB.Delete(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to replace existing pairing"})
			return
		}
	} else if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing pairing"})
		return
	}

	pairing := models.UserPlant{
		UserID:   userID,
		PlantID:  plant.ID,
		DeviceID: device.ID,
	}
	if err := config.DB.Create(&pairing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pairing"})
		return
	}

	config.DB.Preload("Plant").Preload("Device").First(&pairing, pairing.ID)
	c.JSON(http.StatusCreated, pairing)
}

// GetPairings lists the calling user's pairings with plant and device data.
func GetPairings(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var pairings []models.UserPlant
	if err := config.DB.Preload("Plant").Preload("Device").Where("user_id = ?", userID).Find(&pairings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch pairings"})
		return
	}
	c.JSON(http.StatusOK, pairings)
}

// DeletePairing removes one of the calling user's pairings.
func DeletePairing(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id := c.Param("id")
	var pairing models.UserPlant
	if err := config.DB.Where("id = ? AND user_id = ?", id, userID).First(&pairing).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pairing not found"})
		return
	}

	if err := config.DB.Delete(&pairing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pairing"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pairing deleted successfully"})
}
