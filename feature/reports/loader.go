package reports

import (
	"stock-matcher/core/export"
	"stock-matcher/core/metrics"
	"stock-matcher/core/session"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates a new Reports feature.
func NewFeature(sess *session.Session, publisher *export.Publisher, bucket string, logger *zap.Logger, m *metrics.Metrics) *Feature {
	return &Feature{handler: NewHandler(NewService(sess, publisher, bucket, logger, m))}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "reports"
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
