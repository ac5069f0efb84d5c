package main

import (
	"errors"
	"log"

	"github.com/joho/godotenv"

	"github.com/m3rciful/saverbot/app"
	"github.com/m3rciful/saverbot/core/cmd"
)

var errUnexpectedConfig = errors.New("unexpected config type")

func main() {
	// Optional .env for local development; real deployments set env directly.
	_ = godotenv.Load()

	err := cmd.Run(cmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			return app.Load(path)
		},
		Bootstrap: func(carrier cmd.ConfigCarrier) (cmd.TelegramApp, error) {
			cfg, ok := carrier.(*app.Config)
			if !ok {
				return nil, errUnexpectedConfig
			}
			return app.Bootstrap(cfg)
		},
	})
	if err != nil {
		log.Fatal(err)
	}
}
