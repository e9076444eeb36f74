package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"plantmon/bridge"

	"k8s.io/klog/v2"
)

func main() {
	configPath := flag.String("config", ".", "Path to the directory containing bridge.yaml")
	klog.InitFlags(nil)
	flag.Parse()

	cfg, err := bridge.LoadConfig(*configPath)
	if err != nil {
		klog.Warningf("loading config: %v (continuing with defaults)", err)
	}
	if cfg.Serial.Port == "" {
		klog.Fatal("serial.port must be configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	forwarder := bridge.NewForwarder(cfg)
	adapter := bridge.NewAdapter(cfg, forwarder)

	klog.Infof("starting bridge: %s -> %s%s", cfg.Serial.Port, cfg.API.BaseURL, cfg.API.IngestPath)
	adapter.Run(ctx)
	klog.Info("bridge stopped")
}
