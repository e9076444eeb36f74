package controllers

import (
	"net/http"

	"plantmon/config"
	"plantmon/models"

	"github.com/gin-gonic/gin"
)

type createPlantRequest struct {
	ScientificName    string   `json:"scientific_name" binding:"required"`
	FamiliarName      string   `json:"familiar_name"`
	MoistureLowRange  *float64 `json:"moisture_low_range" binding:"required"`
	MoistureHighRange *float64 `json:"moisture_high_range" binding:"required"`
	FunFact           string   `json:"fun_fact"`
}

// CreatePlant adds a species to the catalog. The healthy band is inclusive
// and must satisfy low <= high.
func CreatePlant(c *gin.Context) {
	var req createPlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if *req.MoistureLowRange > *req.MoistureHighRange {
		c.JSON(http.StatusBadRequest, gin.H{"error": "moisture_low_range must not exceed moisture_high_range"})
		return
	}

	plant := models.Plant{
		ScientificName:    req.ScientificName,
		FamiliarName:      req.FamiliarName,
		MoistureLowRange:  *req.MoistureLowRange,
		MoistureHighRange: *req.MoistureHighRange,
		FunFact:           req.FunFact,
	}
	if err := config.DB.Create(&plant).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Plant already exists"})
		return
	}

	c.JSON(http.StatusCreated, plant)
}

// GetPlants returns the full catalog.
func GetPlants(c *gin.Context) {
	var plants []models.Plant
	if err := config.DB.Order("scientific_name").Find(&plants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch plants"})
		return
	}
	c.JSON(http.StatusOK, plants)
}
