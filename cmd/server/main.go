package main

import (
	"context"
	"fmt"

	"github.com/makarovdm/go-sync-suite/internal/config"
	handler "github.com/makarovdm/go-sync-suite/internal/handler/http"
	"github.com/makarovdm/go-sync-suite/internal/hub"
	"github.com/makarovdm/go-sync-suite/internal/logger"
	"github.com/makarovdm/go-sync-suite/internal/server"
	"github.com/makarovdm/go-sync-suite/internal/service"
	"github.com/makarovdm/go-sync-suite/internal/store"
	"github.com/makarovdm/go-sync-suite/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("sync-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	liveHub := hub.NewHub(log)
	services := service.NewServices(*storages, liveHub, *cfg, log)
	handlers := handler.NewHandler(services, liveHub, log)

	srv, err := server.NewServer(handlers.Init(), liveHub, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
