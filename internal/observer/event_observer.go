package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// RunEvent describes one pipeline lifecycle event.
type RunEvent struct {
	EventType      EventType     `json:"event_type"`
	Timestamp      time.Time     `json:"timestamp"`
	Fingerprint    string        `json:"fingerprint,omitempty"`
	Source         string        `json:"source,omitempty"`
	ProcessingTime time.Duration `json:"processing_time"`
	Success        bool          `json:"success"`
	ErrorMessage   string        `json:"error_message,omitempty"`
}

// EventType represents the type of pipeline event
type EventType string

const (
	// RunStarted when a pipeline run begins
	RunStarted EventType = "run_started"
	// RunCompleted when a run produces a report
	RunCompleted EventType = "run_completed"
	// RunFailed when a run aborts with an error
	RunFailed EventType = "run_failed"
	// ImageFetched when an input image is successfully fetched
	ImageFetched EventType = "image_fetched"
	// ImageFetchFailed when an input image fetch fails
	ImageFetchFailed EventType = "image_fetch_failed"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event RunEvent)
	Name() string
}

// Publisher fans events out to registered observers.
type Publisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewPublisher creates an empty publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// Subscribe registers an observer.
func (p *Publisher) Subscribe(o Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, o)
}

// Notify delivers the event to every registered observer.
func (p *Publisher) Notify(ctx context.Context, event RunEvent) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, o := range p.observers {
		o.OnEvent(ctx, event)
	}
}

// LoggingObserver logs pipeline events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{logger: logger}
}

// OnEvent handles pipeline events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event RunEvent) {
	fields := logrus.Fields{
		"event_type":      event.EventType,
		"fingerprint":     event.Fingerprint,
		"processing_time": event.ProcessingTime,
		"success":         event.Success,
	}
	if event.Source != "" {
		fields["source"] = event.Source
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}

	switch event.EventType {
	case RunStarted:
		o.logger.WithFields(fields).Debug("Pipeline run started")
	case RunCompleted:
		o.logger.WithFields(fields).Info("Pipeline run completed")
	case RunFailed:
		o.logger.WithFields(fields).Error("Pipeline run failed")
	case ImageFetched:
		o.logger.WithFields(fields).Debug("Image fetched")
	case ImageFetchFailed:
		o.logger.WithFields(fields).Error("Image fetch failed")
	default:
		o.logger.WithFields(fields).Info("Pipeline event")
	}
}

// Name returns the observer name
func (o *LoggingObserver) Name() string {
	return "logging_observer"
}

// CountingObserver tallies run outcomes for the health endpoint.
type CountingObserver struct {
	mu            sync.RWMutex
	totalRuns     int64
	completedRuns int64
	failedRuns    int64
	totalRunTime  time.Duration
}

// NewCountingObserver creates a new counting observer
func NewCountingObserver() *CountingObserver {
	return &CountingObserver{}
}

// OnEvent handles pipeline events by counting them
func (o *CountingObserver) OnEvent(ctx context.Context, event RunEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case RunStarted:
		o.totalRuns++
	case RunCompleted:
		o.completedRuns++
		o.totalRunTime += event.ProcessingTime
	case RunFailed:
		o.failedRuns++
	}
}

// Name returns the observer name
func (o *CountingObserver) Name() string {
	return "counting_observer"
}

// Stats returns the current counters.
func (o *CountingObserver) Stats() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avg := time.Duration(0)
	if o.completedRuns > 0 {
		avg = o.totalRunTime / time.Duration(o.completedRuns)
	}
	return map[string]interface{}{
		"total_runs":       o.totalRuns,
		"completed_runs":   o.completedRuns,
		"failed_runs":      o.failedRuns,
		"avg_run_time_sec": avg.Seconds(),
	}
}
