package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gabadev/furduncinho047-api/internal/api"
	"github.com/gabadev/furduncinho047-api/internal/config"
	"github.com/gabadev/furduncinho047-api/internal/db"
	"github.com/gabadev/furduncinho047-api/internal/logger"
	"github.com/gabadev/furduncinho047-api/internal/storage"
)

func Start() {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		panic(fmt.Errorf("config.Load -> %w", err))
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		panic(fmt.Errorf("logger.Init -> %w", err))
	}

	var gormDB *gorm.DB
	if url := os.Getenv("DATABASE_URL"); url != "" {
		gormDB, err = db.OpenPostgresWithURL(url)
	} else {
		gormDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		panic(fmt.Errorf("db.OpenPostgres -> %w", err))
	}

	store, err := storage.NewCloudinaryStore(conf.Cloudinary)
	if err != nil {
		panic(fmt.Errorf("storage.NewCloudinaryStore -> %w", err))
	}

	server := api.NewServer(conf, gormDB, store)

	zap.L().Info("starting server", zap.String("port", conf.API.Port))

	if err := server.Router.Run(":" + conf.API.Port); err != nil {
		panic(fmt.Errorf("server.Router.Run -> %w", err))
	}
}
