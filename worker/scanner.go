package worker

import (
	"context"
	"time"

	"plantmon/models"
	"plantmon/utils"

	"gorm.io/gorm"
	"k8s.io/klog/v2"
)

// ScannerConfig controls the periodic low-moisture scan.
type ScannerConfig struct {
	Enabled      bool
	Interval     time.Duration
	StartupDelay time.Duration
}

// Scanner walks every pairing on a fixed schedule and emits an alert for
// each one whose latest reading sits below the plant's low threshold,
// unless one was already issued today. Passes never overlap: the next wait
// only starts once the current pass has finished.
type Scanner struct {
	db      *gorm.DB
	emitter *Emitter
	cfg     ScannerConfig
}

func NewScanner(db *gorm.DB, emitter *Emitter, cfg ScannerConfig) *Scanner {
	return &Scanner{db: db, emitter: emitter, cfg: cfg}
}

// Run blocks until ctx is cancelled. The startup delay keeps the first pass
// from racing application boot. Cancellation aborts the inter-tick waits
// promptly but never interrupts a pass in progress.
func (s *Scanner) Run(ctx context.Context) {
	if !s.cfg.Enabled {
		klog.Info("alert scanner disabled by configuration")
		return
	}

	if !sleepCtx(ctx, s.cfg.StartupDelay) {
		return
	}

	klog.Infof("alert scanner started, interval %s", s.cfg.Interval)
	for {
		s.ScanOnce()
		if !sleepCtx(ctx, s.cfg.Interval) {
			klog.Info("alert scanner stopped")
			return
		}
	}
}

// ScanOnce runs a single pass. A panic inside the pass is logged and the
// schedule continues; a failing pairing never aborts the rest of the pass.
func (s *Scanner) ScanOnce() {
	defer func() {
		if r := recover(); r != nil {
			klog.Errorf("scan pass panicked: %v", r)
		}
	}()

	var pairings []models.UserPlant
	if err := s.db.Preload("User").Preload("Plant").Preload("Device").Find(&pairings).Error; err != nil {
		klog.Errorf("scan pass: load pairings: %v", err)
		return
	}

	for _, pairing := range pairings {
		if err := s.checkPairing(pairing); err != nil {
			klog.Errorf("pairing %d: %v", pairing.ID, err)
		}
	}
}

func (s *Scanner) checkPairing(pairing models.UserPlant) error {
	var reading models.SensorReading
	err := s.db.Where("device_id = ?", pairing.DeviceID).Order("timestamp desc").First(&reading).Error
	if err == gorm.ErrRecordNotFound {
		klog.Warningf("pairing %d: device %s has no readings, skipping",
			pairing.ID, pairing.Device.HardwareIdentifier)
		return nil
	}
	if err != nil {
		return err
	}

	if !utils.IsLowMoisture(reading, pairing.Plant) {
		return nil
	}

	notified, err := s.alreadyNotifiedToday(pairing.ID, models.NotificationLowMoisture)
	if err != nil {
		return err
	}
	if notified {
		klog.V(2).Infof("pairing %d already alerted today", pairing.ID)
		return nil
	}

	klog.Infof("pairing %d: %s at %.1f%% (threshold %.1f%%), alerting",
		pairing.ID, pairing.Plant.DisplayName(), reading.MoistureLevel, pairing.Plant.MoistureLowRange)
	return s.emitter.EmitLowMoisture(pairing, reading)
}

// alreadyNotifiedToday checks the dedup window: one alert per pairing, type
// and UTC calendar day.
func (s *Scanner) alreadyNotifiedToday(pairingID uint, notificationType string) (bool, error) {
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var count int64
	err := s.db.Model(&models.NotificationHistory{}).
		Where("user_plant_id = ? AND notification_type = ? AND created_at >= ?",
			pairingID, notificationType, dayStart).
		Count(&count).Error
	return count > 0, err
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
