package middleware

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const userLocalsKey = "user"

var errNoUser = errors.New("no authenticated user in context")

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ContextKey: userLocalsKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c)
		},
	})
}

// UserChecker reports whether a token subject is still an active account.
type UserChecker interface {
	CheckActiveUser(ctx context.Context, id uuid.UUID) error
}

// ActiveUser runs after JWTProtected and rejects tokens whose subject no
// longer names an active user.
func ActiveUser(users UserChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := UserID(c)
		if err != nil {
			return unauthorized(c)
		}
		if err := users.CheckActiveUser(c.UserContext(), userID); err != nil {
			if errors.Is(err, services.ErrUnauthorized) {
				return unauthorized(c)
			}
			return err
		}
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: "Unauthorized: invalid or expired token",
	})
}

// UserID returns the subject of the token validated by JWTProtected.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals(userLocalsKey).(*jwt.Token)
	if !ok || token == nil {
		return uuid.Nil, errNoUser
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return uuid.Nil, errNoUser
	}
	return uuid.Parse(sub)
}
