package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/leandrodaf/micbridge/internal/logger"
	"github.com/leandrodaf/micbridge/sdk/contracts"
	"github.com/leandrodaf/micbridge/sdk/micbridge"
)

func main() {
	log := logger.NewZapLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bridge, err := micbridge.NewBridge(ctx,
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
		contracts.WithMicrophones(1, 2),
		contracts.WithEndpoint(contracts.EndpointConfig{
			Host:     os.Getenv("MICBRIDGE_HOST"),
			Username: os.Getenv("MICBRIDGE_USER"),
			Password: os.Getenv("MICBRIDGE_PASSWORD"),
			Insecure: true,
		}),
	)
	if err != nil {
		log.Error("Failed to connect to device", log.Field().Error("error", err))
		return
	}
	defer bridge.Close()

	mics, err := bridge.Snapshot(ctx)
	if err != nil {
		log.Error("Failed to read microphones", log.Field().Error("error", err))
		return
	}
	fmt.Println("Controlled microphones:", mics)

	fmt.Println("Bridging panel and device... Press Ctrl+C to exit.")
	if err := bridge.Run(ctx); err != nil {
		log.Error("Bridge stopped", log.Field().Error("error", err))
	}
}
