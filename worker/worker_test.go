package worker

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"plantmon/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbCounter int64

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:worker%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Device{},
		&models.Plant{},
		&models.UserPlant{},
		&models.SensorReading{},
		&models.Notification{},
		&models.NotificationHistory{},
	))
	return db
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// recordingMailer stands in for the SMTP gateway so tests can observe (or
// fail) deliveries.
type recordingMailer struct {
	mu    sync.Mutex
	sends []sentMail
	err   error
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sends = append(m.sends, sentMail{To: to, Subject: subject, Body: body})
	return m.err
}

func (m *recordingMailer) all() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sends...)
}

func templateDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	tmpl := `<p>{{.PlantName}} is at {{.Moisture}}% (threshold {{.Threshold}}%). See {{.DashboardURL}}</p>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "low_moisture.html"), []byte(tmpl), 0o644))
	return dir
}

// seedPairing creates a user, device, plant and pairing in one go.
func seedPairing(t *testing.T, db *gorm.DB, hardwareID string, low, high float64) models.UserPlant {
	t.Helper()
	user := models.User{Username: "user-" + hardwareID, Email: hardwareID + "@example.com"}
	require.NoError(t, db.Create(&user).Error)

	device := models.Device{
		HardwareIdentifier: hardwareID,
		ConnectionType:     models.ConnectionUSB,
		ConnectionAddress:  "usb-" + hardwareID,
		UserID:             user.ID,
		Status:             models.StatusActive,
	}
	require.NoError(t, db.Create(&device).Error)

	plant := models.Plant{
		ScientificName:    "Hebe " + hardwareID,
		FamiliarName:      "Hebe",
		MoistureLowRange:  low,
		MoistureHighRange: high,
	}
	require.NoError(t, db.Create(&plant).Error)

	pairing := models.UserPlant{UserID: user.ID, PlantID: plant.ID, DeviceID: device.ID}
	require.NoError(t, db.Create(&pairing).Error)

	require.NoError(t, db.Preload("User").Preload("Plant").Preload("Device").First(&pairing, pairing.ID).Error)
	return pairing
}

func addReading(t *testing.T, db *gorm.DB, deviceID uint, at time.Time, moisture float64) {
	t.Helper()
	reading := models.SensorReading{DeviceID: deviceID, Timestamp: at, MoistureLevel: moisture}
	require.NoError(t, db.Create(&reading).Error)
}
