package main

import (
	"context"
	"fmt"
	"os"

	"github.com/PrimotionStudio/z1academic/apps/shared"
	"github.com/PrimotionStudio/z1academic/core"
	logsvc "github.com/PrimotionStudio/z1academic/services/logger"
	"github.com/PrimotionStudio/z1academic/storage/database"
	mongodb "github.com/PrimotionStudio/z1academic/storage/database/mongo"
	"github.com/PrimotionStudio/z1academic/storage/files"
)

func main() {
	conf := core.NewConfig()

	zl, err := logsvc.NewZap(conf)
	errAndDie(err)
	logger := logsvc.NewRollbarLogger(zl.Named("admin"), conf)
	logger.Enable(!conf.Debug)
	defer logger.Sync()

	// set up DB
	ctx, cancel := context.WithTimeout(context.Background(), conf.Database.Timeout)
	db, err := mongodb.Open(ctx, conf)
	cancel()
	if err != nil {
		logger.Fatal("opening database", err, map[string]interface{}{"uri": conf.Database.URI})
	}
	defer func() { _ = db.Close(context.Background()) }()

	validate, translator := shared.NewValidator()
	repos := database.Mongo(db)

	// start CLI
	cli := &commandLine{
		svc:        shared.NewServices(conf, repos, files.NewMemoryStore("memory://"+conf.Storage.Bucket)),
		validate:   validate,
		translator: translator,
		out:        os.Stdout,
		ensureIndexes: func(ctx context.Context) error {
			return mongodb.EnsureIndexes(ctx, db)
		},
	}
	if err := newRootCmd(cli).ExecuteContext(context.Background()); err != nil {
		logger.Error("admin command failed", err, map[string]interface{}{"args": os.Args[1:]})
		logger.Sync()
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
