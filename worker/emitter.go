// Package worker contains the background half of the alert pipeline: the
// periodic low-moisture scanner and the notification emitter it drives.
package worker

import (
	"fmt"

	"plantmon/mailer"
	"plantmon/models"

	"gorm.io/gorm"
	"k8s.io/klog/v2"
)

const mailQueueSize = 64

type emailJob struct {
	to       string
	subject  string
	template string
	data     map[string]interface{}
}

// Emitter turns a detected breach into durable rows, a dashboard push and a
// best-effort email. The email runs on a detached worker with no result
// channel; its outcome is unobservable by the rest of the system.
type Emitter struct {
	db           *gorm.DB
	mailer       mailer.Mailer
	renderer     *mailer.Renderer
	dashboardURL string

	// Broadcast, when set, pushes the new notification to live dashboard
	// connections. Failures there are the websocket layer's problem.
	Broadcast func(models.Notification)

	jobs chan emailJob
	done chan struct{}
}

func NewEmitter(db *gorm.DB, m mailer.Mailer, r *mailer.Renderer, dashboardURL string) *Emitter {
	e := &Emitter{
		db:           db,
		mailer:       m,
		renderer:     r,
		dashboardURL: dashboardURL,
		jobs:         make(chan emailJob, mailQueueSize),
		done:         make(chan struct{}),
	}
	go e.mailWorker()
	return e
}

// EmitLowMoisture records one alert for a pairing. The history row goes in
// first: its existence is what suppresses a repeat alert on the next pass,
// so a crash between the two writes loses the user-facing notification
// rather than duplicating it. The two inserts are deliberately not wrapped
// in a transaction to keep that ordering observable.
func (e *Emitter) EmitLowMoisture(pairing models.UserPlant, reading models.SensorReading) error {
	plant := pairing.Plant

	history := models.NotificationHistory{
		UserPlantID:      pairing.ID,
		NotificationType: models.NotificationLowMoisture,
		MoistureValue:    reading.MoistureLevel,
		ThresholdValue:   plant.MoistureLowRange,
	}
	if err := e.db.Create(&history).Error; err != nil {
		return fmt.Errorf("record notification history: %w", err)
	}

	notification := models.Notification{
		UserID: pairing.UserID,
		Message: fmt.Sprintf("%s needs water! Current moisture: %.1f%% (threshold: %.1f%%)",
			plant.DisplayName(), reading.MoistureLevel, plant.MoistureLowRange),
		Type: models.NotificationLowMoisture,
	}
	if err := e.db.Create(&notification).Error; err != nil {
		return fmt.Errorf("record notification: %w", err)
	}

	if e.Broadcast != nil {
		e.Broadcast(notification)
	}

	e.queueEmail(pairing, reading)
	return nil
}

// queueEmail hands the send to the mail worker without blocking the scan.
// A full queue drops the email; the durable rows already exist.
func (e *Emitter) queueEmail(pairing models.UserPlant, reading models.SensorReading) {
	if e.mailer == nil || pairing.User.Email == "" {
		return
	}

	job := emailJob{
		to:       pairing.User.Email,
		subject:  fmt.Sprintf("Water reminder: %s", pairing.Plant.DisplayName()),
		template: "low_moisture",
		data: map[string]interface{}{
			"PlantName":    pairing.Plant.DisplayName(),
			"Moisture":     fmt.Sprintf("%.1f", reading.MoistureLevel),
			"Threshold":    fmt.Sprintf("%.1f", pairing.Plant.MoistureLowRange),
			"DashboardURL": e.dashboardURL,
		},
	}

	select {
	case e.jobs <- job:
	default:
		klog.Warningf("mail queue full, dropping email for %s", job.to)
	}
}

func (e *Emitter) mailWorker() {
	defer close(e.done)
	for job := range e.jobs {
		e.deliver(job)
	}
}

func (e *Emitter) deliver(job emailJob) {
	defer func() {
		if r := recover(); r != nil {
			klog.Errorf("mail delivery panicked: %v", r)
		}
	}()

	html, err := e.renderer.Render(job.template, job.data)
	if err != nil {
		klog.Warningf("render %s email: %v", job.template, err)
		return
	}
	// Send failures are logged by the mailer and otherwise swallowed.
	_ = e.mailer.Send(job.to, job.subject, html)
}

// Close stops accepting email jobs and waits for queued ones to drain.
// Emails in flight when the process dies are simply lost.
func (e *Emitter) Close() {
	close(e.jobs)
	<-e.done
}
