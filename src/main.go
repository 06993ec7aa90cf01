package main

import (
	"log"
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"go.uber.org/zap"

	"crosswarped.com/anagram/internal/config"
	"crosswarped.com/anagram/internal/wordsource"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("config.Load: %v\n", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(cfg.Level())
	logger, err := zc.Build()
	if err != nil {
		log.Fatalf("zap.Build: %v\n", err)
	}
	defer func() { _ = logger.Sync() }()

	s := newServer(cfg, logger, wordsource.BigQuery{
		Project:  cfg.BigQuery.Project,
		Table:    cfg.BigQuery.Table,
		Location: cfg.BigQuery.Location,
	})
	funcframework.RegisterHTTPFunction("/generate-anagrams", s.generateAnagrams)

	hostname := ""
	if cfg.Server.LocalOnly {
		hostname = "127.0.0.1"
	}
	logger.Info("starting", zap.String("host", hostname), zap.String("port", cfg.Server.Port))
	if err := funcframework.StartHostPort(hostname, cfg.Server.Port); err != nil {
		logger.Fatal("funcframework.StartHostPort", zap.Error(err))
	}
}
