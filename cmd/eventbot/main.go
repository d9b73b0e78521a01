package main

import (
	"log"

	corecmd "github.com/m3rciful/eventbot/core/cmd"
	"github.com/m3rciful/eventbot/internal/app"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return app.Load(path)
		},
		Bootstrap: func(cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			return app.Bootstrap(cfg.(*app.Config))
		},
	})
	if err != nil {
		log.Fatalf("eventbot: %v", err)
	}
}
