package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/makarovdm/go-sync-suite/internal/adapter"
	"github.com/makarovdm/go-sync-suite/internal/config"
	"github.com/makarovdm/go-sync-suite/internal/engine"
	"github.com/makarovdm/go-sync-suite/internal/logger"
	"github.com/makarovdm/go-sync-suite/internal/store"
	"github.com/makarovdm/go-sync-suite/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	// Registered before config.GetClientConfig, which calls flag.Parse on
	// the shared default flag set.
	exportPath := flag.String("export", "", "write a backup of local data to the given file and exit")
	importPath := flag.String("import", "", "restore local data from the given backup file and exit")
	login := flag.String("login", "", "account login")
	password := flag.String("password", "", "account password")
	register := flag.Bool("register", false, "create the account instead of logging in")

	printBuildInfo()

	log := logger.NewLogger("sync-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	serverAdapter := adapter.NewHTTPServerAdapter(adapter.HTTPClientConfig{
		BaseURL: cfg.ServerURL,
		Timeout: cfg.RequestTimeout,
	})

	suite := engine.NewSuite(storages.LocalStore, serverAdapter, log, engine.SuiteOptions{
		ServerURL:      cfg.ServerURL,
		DebounceWindow: cfg.DebounceWindow,
		FlushTimeout:   cfg.RequestTimeout,
	})

	ctx := context.Background()

	if *exportPath != "" {
		if err = exportBackup(suite, *exportPath); err != nil {
			log.Fatal().Err(err).Msg("backup export failed")
		}
		log.Info().Str("path", *exportPath).Msg("backup exported")
		return
	}

	if *importPath != "" {
		if err = importBackup(ctx, suite, *importPath); err != nil {
			log.Fatal().Err(err).Msg("backup import failed")
		}
		log.Info().Str("path", *importPath).Msg("backup imported")
		return
	}

	if *login != "" {
		user := models.User{Login: *login, Password: *password}
		if *register {
			err = suite.Register(ctx, user)
		} else {
			err = suite.Login(ctx, user)
		}
		if err != nil {
			log.Fatal().Err(err).Msg("authentication failed")
		}
		log.Info().Str("login", *login).Msg("signed in, live sync running")
	} else {
		suite.LoadAll(ctx)
		log.Info().Msg("running local-only; pass -login to sync with the server")
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	// Exiting is not signing out: local data stays so the next start can
	// reconcile it.
	suite.Subscriber.Stop()
	log.Info().Msg("client stopped")
}

func exportBackup(suite *engine.Suite, path string) error {
	file, err := suite.Export()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

func importBackup(ctx context.Context, suite *engine.Suite, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var file models.BackupFile
	if err = json.Unmarshal(data, &file); err != nil {
		return err
	}

	return suite.Import(ctx, file)
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
