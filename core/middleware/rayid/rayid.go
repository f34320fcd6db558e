package rayid

import (
	"stock-matcher/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the ray id.
const HeaderName = "X-Ray-ID"

// New creates a middleware that tags every request with a ray id. An incoming
// X-Ray-ID header is reused; otherwise a uuid is generated.
func New() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     HeaderName,
		Generator:  uuid.NewString,
		ContextKey: logger.RayIDKey,
	})
}
