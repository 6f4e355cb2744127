package main

import (
	"context"
	"flag"
	"os"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/importer"
	"storefront/internal/logger"
	productrepo "storefront/internal/repository/product"

	"go.uber.org/zap"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to product catalog CSV")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()

	log, err := logger.New(cfg.Env)
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatal("open csv", zap.Error(err))
	}
	defer f.Close()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	repo := productrepo.NewPostgres(pool, log)
	res, err := importer.NewCSVImporter(f, repo).Run(ctx)
	if err != nil {
		log.Fatal("import", zap.Error(err))
	}

	log.Info("import finished", zap.Int("imported", res.Imported), zap.Int("skipped", res.Skipped))
}
