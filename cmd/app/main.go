package main

import (
	"todoapp/config"
	"todoapp/di"
	"todoapp/helper"
	"todoapp/shared/constant"
	"todoapp/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Todo API
// @version 1.0
// @description Todo list and account endpoints backed by a document store.
// @BasePath /
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Mongo.AutoMigrate && cfg.DB.Driver != constant.DBDriverMemory {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
