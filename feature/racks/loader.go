package racks

import (
	"time"

	"stock-matcher/core/metrics"
	"stock-matcher/core/session"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Racks feature.
func NewFeature(sess *session.Session, cooldown time.Duration, logger *zap.Logger, m *metrics.Metrics) *Feature {
	svc := NewService(sess, cooldown, logger, m)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "racks"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
