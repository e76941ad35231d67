package main

import (
	stdLog "log"
	"os"
	"time"

	"github.com/Astemirdum/inventory-service/inventory/app"
	"github.com/Astemirdum/inventory-service/inventory/config"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// @title        Inventory API
// @version      1.0
// @description  Students, items and borrows.
// @host         localhost:8080
// @BasePath     /api/v1
func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLog.Fatal("load envs from .env ", zap.Error(err))
	}
	cfg := config.NewConfig(
		config.WithLogLevel(zapcore.DebugLevel),
		config.WithWriteTimeout(time.Minute),
	)

	app.Run(cfg)
}
