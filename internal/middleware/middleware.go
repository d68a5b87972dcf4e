package middleware

import (
	"io"
	"strings"
	"time"

	"SlimMom-Backend/domain"
	"SlimMom-Backend/entities"
	"SlimMom-Backend/internal/api/presenters"
	"SlimMom-Backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

const (
	LocalUser   = "user"
	LocalUserID = "user_id"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		LoggerMiddleware(output io.Writer) fiber.Handler
		RateLimiter(max int, window time.Duration, storage fiber.Storage) fiber.Handler
		AuthMiddleware(userService user.UserService) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	})
}

func (m *middleware) LoggerMiddleware(output io.Writer) fiber.Handler {
	return logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     output,
	})
}

// RateLimiter keys on client IP. A nil storage keeps counters in memory.
func (m *middleware) RateLimiter(max int, window time.Duration, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		Storage:    storage,
		LimitReached: func(c *fiber.Ctx) error {
			return presenters.ErrorResponse(c, fiber.StatusTooManyRequests, "too many requests", nil)
		},
	})
}

func (m *middleware) AuthMiddleware(userService user.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageNotAuthorized, domain.ErrUnauthorized)
		}

		u, err := userService.Authorize(c.UserContext(), strings.TrimSpace(token))
		if err != nil {
			return presenters.ServiceError(c, domain.MessageNotAuthorized, err)
		}

		c.Locals(LocalUser, u)
		c.Locals(LocalUserID, u.ID.String())
		return c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(c *fiber.Ctx) (*entities.User, bool) {
	u, ok := c.Locals(LocalUser).(*entities.User)
	return u, ok && u != nil
}
