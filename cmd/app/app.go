package app

import (
	"github.com/juju/errors"
	"github.com/juju/loggo"

	"healthcommunity/internal/config"
	"healthcommunity/internal/database"
	"healthcommunity/internal/metrics"
	"healthcommunity/internal/repository"
	"healthcommunity/internal/service"
	"healthcommunity/internal/storage"
)

var logger = loggo.GetLogger("healthcommunity.app")

// App holds the long-lived dependencies shared by the binaries.
type App struct {
	DB       *database.DB
	Repo     *repository.Repository
	Services *service.Service
	Metrics  *metrics.Collector
}

// New connects to the database and object storage and builds the service
// layer on top of them.
func New(cfg *config.Config) (*App, error) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return nil, errors.Trace(err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		db.CloseDB()
		return nil, errors.Trace(err)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)
	collector := metrics.NewCollector()
	services := service.NewService(repo, cfg, minioClient, collector)

	logger.Infof("services ready (database %s, bucket %s)", cfg.DB.DbNAME, cfg.MinIO.BucketName)

	return &App{
		DB:       db,
		Repo:     repo,
		Services: services,
		Metrics:  collector,
	}, nil
}

func (a *App) Close() error {
	return a.DB.CloseDB()
}
