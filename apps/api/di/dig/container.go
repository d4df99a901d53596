package dig_container

import (
	"context"
	"log"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"
	"go.uber.org/zap"

	echoapi "github.com/PrimotionStudio/z1academic/apps/api/echo"
	"github.com/PrimotionStudio/z1academic/apps/shared"
	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/resource"
	logsvc "github.com/PrimotionStudio/z1academic/services/logger"
	"github.com/PrimotionStudio/z1academic/storage/database"
	"github.com/PrimotionStudio/z1academic/storage/files"
)

func newLogger(zl *zap.Logger, conf *core.Config) *logsvc.RollbarLogger {
	logger := logsvc.NewRollbarLogger(zl.Named("api"), conf)
	logger.Enable(!conf.Debug)
	return logger
}

func asCoreLogger(logger *logsvc.RollbarLogger) core.Logger {
	return logger
}

func newRepositories(conf *core.Config, logger core.Logger) (*database.Repositories, error) {
	ctx, cancel := context.WithTimeout(context.Background(), conf.Database.Timeout)
	defer cancel()
	return database.Open(ctx, conf, logger)
}

// newFileStore connects to the object storage. In debug mode, an unreachable storage
// falls back to a store kept in memory.
func newFileStore(conf *core.Config, logger core.Logger) (resource.FileStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), conf.Database.Timeout)
	defer cancel()

	store, err := files.NewMinioStore(ctx, conf)
	if err != nil {
		if !conf.Debug {
			return nil, err
		}
		logger.Warn("object storage unavailable: uploads are kept in memory", err)
		return files.NewMemoryStore("memory://" + conf.Storage.Bucket), nil
	}
	return store, nil
}

func newServer(
	conf *core.Config,
	logger core.Logger,
	validate *validator.Validate,
	translator ut.Translator,
	services *shared.Services,
) *echoapi.Server {
	return echoapi.NewServer(conf.Server.Address, nil, &echoapi.Deps{
		Conf:       conf,
		Logger:     logger,
		Validate:   validate,
		Translator: translator,
		Services:   services,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(logsvc.NewZap))
	must(c.Provide(newLogger))
	must(c.Provide(asCoreLogger))
	must(c.Provide(newRepositories))
	must(c.Provide(newFileStore))
	must(c.Provide(shared.NewValidator))
	must(c.Provide(shared.NewServices))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
