package pipeline

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "go-dental-forensics/internal/errors"
	"go-dental-forensics/internal/imaging"
	"go-dental-forensics/internal/logger"
	"go-dental-forensics/internal/observer"
	"go-dental-forensics/internal/strategy"
	"go-dental-forensics/pkg/models"
	"go-dental-forensics/pkg/scoring"
)

// Pipeline orchestrates the stages of one forensic analysis run. It holds no
// per-run state; runs over different images may execute concurrently.
type Pipeline struct {
	publisher *observer.Publisher
}

// New creates a pipeline. The publisher may be nil when no observers are
// wanted (tests, batch tools).
func New(publisher *observer.Publisher) *Pipeline {
	return &Pipeline{publisher: publisher}
}

// Run executes the full pipeline on raw image bytes: decode, optional
// degradation, enhancement, metrics, tooth detection, classification, and
// scoring. Every stage output is a fresh buffer; the returned report is
// immutable after construction.
func (p *Pipeline) Run(ctx context.Context, data []byte, opts Options) (*models.ForensicReport, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewInternalError("run canceled before start", err)
	}

	buf, err := imaging.Decode(data)
	if err != nil {
		p.notify(ctx, observer.RunFailed, "", time.Since(start), err)
		return nil, err
	}

	fingerprint := buf.Fingerprint()
	p.notify(ctx, observer.RunStarted, fingerprint, 0, nil)

	seed := opts.Seed
	if seed == 0 {
		seed = buf.Seed()
	}

	work := buf
	var degradation *models.DegradationApplied
	if opts.Degradation != nil && opts.Degradation.Kind != models.DegradationNone {
		result, err := Degrade(buf, *opts.Degradation, seed)
		if err != nil {
			p.notify(ctx, observer.RunFailed, fingerprint, time.Since(start), err)
			return nil, err
		}
		work = result.Output
		applied := result.Applied
		degradation = &applied
	}

	baseline := AnalyzeQuality(work)

	strat := opts.Enhancement
	if strat == nil {
		strat = strategy.NewAdaptiveStrategy()
	}
	enhanced := Enhance(work, strat)

	metrics := AnalyzeQuality(enhanced.Output)

	var assessments []models.ToothAssessment
	insufficient := false
	regions, err := DetectTeeth(enhanced.Output, opts.Detector)
	switch {
	case err == nil:
		classifier := NewClassifierWithThresholds(opts.Classifier)
		reference := ComputeBaseline(enhanced.Output)
		assessments = make([]models.ToothAssessment, 0, len(regions))
		for _, region := range regions {
			assessments = append(assessments, classifier.Classify(enhanced.Output, region, reference))
		}
		applyNumbering(assessments)
	case apperrors.IsType(err, apperrors.ErrorTypeInsufficientImageData):
		// Recoverable: the report still carries quality metrics with an
		// empty assessment sequence, flagged insufficient.
		insufficient = true
		logger.ForStage(stageDetection).WithFields(logrus.Fields{
			"fingerprint": fingerprint,
			"width":       enhanced.Output.Width,
			"height":      enhanced.Output.Height,
		}).Warn("Image below minimum size for tooth detection")
	default:
		p.notify(ctx, observer.RunFailed, fingerprint, time.Since(start), err)
		return nil, err
	}

	baseline = FinalizeUtility(baseline, nil, opts.Scoring.ConfidentAssessment)
	metrics = FinalizeUtility(metrics, assessments, opts.Scoring.ConfidentAssessment)

	scorer := scoring.NewScorerWithThresholds(opts.Scoring)
	report := scorer.BuildReport(fingerprint, degradation, enhanced.Applied, baseline, metrics, assessments, insufficient)
	report.Timestamp = start
	report.ProcessingTimeSec = time.Since(start).Seconds()

	p.notify(ctx, observer.RunCompleted, fingerprint, time.Since(start), nil)
	return report, nil
}

func (p *Pipeline) notify(ctx context.Context, eventType observer.EventType, fingerprint string, elapsed time.Duration, err error) {
	if p.publisher == nil {
		return
	}
	event := observer.RunEvent{
		EventType:      eventType,
		Timestamp:      time.Now(),
		Fingerprint:    fingerprint,
		ProcessingTime: elapsed,
		Success:        err == nil,
	}
	if err != nil {
		event.ErrorMessage = err.Error()
	}
	p.publisher.Notify(ctx, event)
}
