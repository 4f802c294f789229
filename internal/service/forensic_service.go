package service

import (
	"context"
	"encoding/base64"
	"time"

	"go-dental-forensics/internal/config"
	apperrors "go-dental-forensics/internal/errors"
	"go-dental-forensics/internal/factory"
	"go-dental-forensics/internal/observer"
	"go-dental-forensics/internal/pipeline"
	"go-dental-forensics/internal/repository"
	"go-dental-forensics/pkg/models"
	"go-dental-forensics/pkg/validation"
)

// ForensicAnalysisService is the application boundary: it validates a
// request, resolves the input image, and runs the analysis pipeline.
type ForensicAnalysisService interface {
	Analyze(ctx context.Context, req models.AnalysisRequest) (*models.ForensicReport, error)
	SampleNames() []string
}

type forensicAnalysisService struct {
	imageRepo  repository.ImageRepository
	pipe       *pipeline.Pipeline
	publisher  *observer.Publisher
	thresholds config.Thresholds
	fetchLimit time.Duration
}

// NewForensicAnalysisService creates the service over its collaborators.
func NewForensicAnalysisService(
	imageRepo repository.ImageRepository,
	pipe *pipeline.Pipeline,
	publisher *observer.Publisher,
	cfg *config.Config,
) ForensicAnalysisService {
	return &forensicAnalysisService{
		imageRepo:  imageRepo,
		pipe:       pipe,
		publisher:  publisher,
		thresholds: cfg.Thresholds,
		fetchLimit: cfg.ImageFetchTimeout,
	}
}

// Analyze validates the request, resolves the image bytes, and runs the
// pipeline with options assembled from the request and configured
// thresholds.
func (s *forensicAnalysisService) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.ForensicReport, error) {
	if err := validation.ValidateRequest(req); err != nil {
		return nil, err
	}

	data, source, err := s.resolveImage(ctx, req)
	if err != nil {
		s.notifyFetch(ctx, source, err)
		return nil, err
	}
	s.notifyFetch(ctx, source, nil)

	opts := pipeline.DefaultOptions().
		WithDetector(s.thresholds.Detector).
		WithClassifier(s.thresholds.Classifier).
		WithScoring(s.thresholds.Scoring).
		WithEnhancement(factory.EnhancementStrategyFor(req.Enhancement))
	if req.Degradation != nil {
		opts.Degradation = req.Degradation
	}
	if req.Seed != 0 {
		opts = opts.WithSeed(req.Seed)
	}

	return s.pipe.Run(ctx, data, opts)
}

// SampleNames lists the sample library entries.
func (s *forensicAnalysisService) SampleNames() []string {
	return s.imageRepo.SampleNames()
}

// resolveImage turns the request's single image source into raw bytes.
func (s *forensicAnalysisService) resolveImage(ctx context.Context, req models.AnalysisRequest) ([]byte, string, error) {
	switch {
	case req.ImageBase64 != "":
		data, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			return nil, "inline", apperrors.NewValidationError("image_base64 does not decode", err)
		}
		return data, "inline", nil

	case req.Sample != "":
		fetchCtx, cancel := context.WithTimeout(ctx, s.fetchLimit)
		defer cancel()
		data, err := s.imageRepo.FetchSample(fetchCtx, req.Sample)
		return data, req.Sample, err

	default:
		fetchCtx, cancel := context.WithTimeout(ctx, s.fetchLimit)
		defer cancel()
		data, err := s.imageRepo.FetchImage(fetchCtx, req.ImageURL)
		return data, req.ImageURL, err
	}
}

func (s *forensicAnalysisService) notifyFetch(ctx context.Context, source string, err error) {
	if s.publisher == nil || source == "inline" {
		return
	}
	eventType := observer.ImageFetched
	event := observer.RunEvent{
		EventType: eventType,
		Timestamp: time.Now(),
		Source:    source,
		Success:   err == nil,
	}
	if err != nil {
		event.EventType = observer.ImageFetchFailed
		event.ErrorMessage = err.Error()
	}
	s.publisher.Notify(ctx, event)
}
