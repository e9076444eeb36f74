package bridge

import (
	"bytes"
	"context"
	"io"
	"time"

	"go.bug.st/serial"
	"k8s.io/klog/v2"
)

// Adapter owns at most one serial connection at a time and relays sensor
// readings to the ingestion endpoint. Any failure opening the port or
// inside the read loop triggers a full reconnect after a fixed delay,
// forever, until the context is cancelled.
type Adapter struct {
	cfg       Config
	forwarder *Forwarder

	// openPort is swappable in tests; the default opens the configured
	// serial port with the configured read timeout.
	openPort func() (io.ReadCloser, error)
}

func NewAdapter(cfg Config, forwarder *Forwarder) *Adapter {
	a := &Adapter{cfg: cfg, forwarder: forwarder}
	a.openPort = a.openSerial
	return a
}

// Run is the top-level connection loop. It returns only when ctx is done.
func (a *Adapter) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		a.connectAndListen(ctx)
		if ctx.Err() != nil {
			return
		}
		klog.Infof("reconnecting to %s in %s", a.cfg.Serial.Port, a.cfg.ReconnectDelay)
		if !sleepCtx(ctx, a.cfg.ReconnectDelay) {
			return
		}
	}
}

func (a *Adapter) connectAndListen(ctx context.Context) {
	port, err := a.openPort()
	if err != nil {
		klog.Errorf("open serial port %s: %v", a.cfg.Serial.Port, err)
		return
	}
	defer port.Close()

	klog.Infof("listening on %s at %d baud", a.cfg.Serial.Port, a.cfg.Serial.BaudRate)
	a.listen(ctx, port)
}

// listen assembles newline-terminated lines from the port. A zero-length
// read is the configured read timeout, not an error, and simply loops so
// cancellation is observed between reads.
func (a *Adapter) listen(ctx context.Context, port io.Reader) {
	buf := make([]byte, 256)
	var line []byte

	for {
		if ctx.Err() != nil {
			return
		}

		n, err := port.Read(buf)
		if err != nil {
			klog.Errorf("serial read on %s: %v", a.cfg.Serial.Port, err)
			return
		}
		if n == 0 {
			continue
		}

		for _, b := range buf[:n] {
			if b == '\n' {
				a.handleLine(ctx, line)
				line = line[:0]
				continue
			}
			line = append(line, b)
		}
	}
}

func (a *Adapter) handleLine(ctx context.Context, raw []byte) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return
	}

	msg, err := ParseLine(trimmed)
	if err != nil {
		klog.Warningf("dropping unparseable line %q: %v", trimmed, err)
		return
	}
	if msg.HardwareIdentifier == "" {
		klog.Warningf("dropping message without hardware identifier: %q", trimmed)
		return
	}

	switch msg.Kind() {
	case KindError:
		klog.Errorf("device %s reported error: %s", msg.HardwareIdentifier, msg.Error)
	case KindStatus:
		klog.Infof("device %s status: %s", msg.HardwareIdentifier, msg.Text)
	case KindReading:
		if err := a.forwarder.Forward(ctx, msg); err != nil {
			klog.Warningf("forward reading from %s: %v", msg.HardwareIdentifier, err)
		}
	default:
		klog.Warningf("dropping unrecognized message from %s: %q", msg.HardwareIdentifier, trimmed)
	}
}

func (a *Adapter) openSerial() (io.ReadCloser, error) {
	mode := &serial.Mode{BaudRate: a.cfg.Serial.BaudRate}
	port, err := serial.Open(a.cfg.Serial.Port, mode)
	if err != nil {
		return nil, err
	}
	if err := port.SetReadTimeout(a.cfg.Serial.ReadTimeout); err != nil {
		port.Close()
		return nil, err
	}
	return port, nil
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
