package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-dental-forensics/internal/config"
	apperrors "go-dental-forensics/internal/errors"
	"go-dental-forensics/internal/logger"
	"go-dental-forensics/internal/observer"
	"go-dental-forensics/internal/service"
	"go-dental-forensics/pkg/models"
)

// NewHandler wires the HTTP routes over the analysis service.
func NewHandler(svc service.ForensicAnalysisService, counter *observer.CountingObserver, cfg *config.Config) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestSizeLimiter(cfg.MaxRequestBodySize))

	r.GET("/health", healthCheck(counter))
	r.GET("/samples", listSamples(svc))
	r.POST("/analyze", analyzeImage(svc, cfg))

	return r
}

func analyzeImage(svc service.ForensicAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"ip":     c.ClientIP(),
		}).Info("Processing analysis request")

		var req models.AnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		report, err := svc.Analyze(ctx, req)
		if err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"ip": c.ClientIP(),
			}).Error("Analysis failed")
			respondError(c, apperrors.GetStatusCode(err), "analysis failed", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"fingerprint": report.Fingerprint,
			"verdict":     report.Verdict,
			"elapsed":     time.Since(start).Seconds(),
		}).Info("Analysis completed")

		c.JSON(http.StatusOK, report)
	}
}

func listSamples(svc service.ForensicAnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"samples": svc.SampleNames()})
	}
}

func healthCheck(counter *observer.CountingObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{"status": "ok"}
		if counter != nil {
			body["runs"] = counter.Stats()
		}
		c.JSON(http.StatusOK, body)
	}
}

func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func respondError(c *gin.Context, status int, summary string, err error) {
	c.JSON(status, models.ErrorResponse{
		Error:   summary,
		Message: err.Error(),
	})
}
