package container

import (
	"net/http"

	"go-dental-forensics/internal/config"
	"go-dental-forensics/internal/factory"
	"go-dental-forensics/internal/logger"
	"go-dental-forensics/internal/observer"
	"go-dental-forensics/internal/pipeline"
	"go-dental-forensics/internal/repository"
	"go-dental-forensics/internal/service"
	"go-dental-forensics/internal/storage"
	"go-dental-forensics/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config    *config.Config
	handler   http.Handler
	counter   *observer.CountingObserver
	publisher *observer.Publisher
}

// NewContainer builds the dependency graph over a loaded configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	publisher := observer.NewPublisher()
	counter := observer.NewCountingObserver()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	publisher.Subscribe(counter)

	fetcher, err := factory.NewStorageFactory().CreateFetcher(factory.HTTPStorage)
	if err != nil {
		return nil, err
	}

	library := storage.NewSampleLibrary()
	imageRepository := repository.NewImageRepository(fetcher, library)
	pipe := pipeline.New(publisher)
	analysisService := service.NewForensicAnalysisService(imageRepository, pipe, publisher, cfg)
	handler := transport.NewHandler(analysisService, counter, cfg)

	return &Container{
		config:    cfg,
		handler:   handler,
		counter:   counter,
		publisher: publisher,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}
