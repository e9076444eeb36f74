package controllers

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"plantmon/config"
	"plantmon/middlewares"
	"plantmon/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbCounter int64

// setupTestDB wires an isolated in-memory database into the package-level
// handle the handlers use.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:controllers%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	MigrateModels(db)
	config.DB = db
	return db
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/sensor-data", ReceiveReading)

	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	auth.POST("/devices", RegisterDevice)
	auth.GET("/devices", GetDevices)
	auth.POST("/plants", CreatePlant)
	auth.GET("/plants", GetPlants)
	auth.POST("/pairings", CreatePairing)
	auth.GET("/pairings", GetPairings)
	auth.DELETE("/pairings/:id", DeletePairing)
	auth.GET("/history", GetHistory)
	auth.GET("/notifications", GetNotifications)
	auth.PUT("/notifications/:id/read", MarkNotificationRead)
	return r
}

func createUser(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()
	user := models.User{Username: name, Email: name + "@example.com"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createDevice(t *testing.T, db *gorm.DB, userID uint, hardwareID string) models.Device {
	t.Helper()
	device := models.Device{
		HardwareIdentifier: hardwareID,
		ConnectionType:     models.ConnectionUSB,
		ConnectionAddress:  "usb-" + hardwareID,
		UserID:             userID,
		Status:             models.StatusActive,
	}
	require.NoError(t, db.Create(&device).Error)
	return device
}

// tokenFor signs a token the way the dashboard's login flow would.
func tokenFor(t *testing.T, userID uint) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("your-secret-key"))
	require.NoError(t, err)
	return signed
}
