package middleware

import "github.com/gofiber/fiber/v2"

// SecurityHeaders sets the baseline headers on every response.
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	}
}

var adminHeaders = map[string]string{
	"Cache-Control":           "no-store, max-age=0",
	"Pragma":                  "no-cache",
	"Referrer-Policy":         "no-referrer",
	"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
	"X-Robots-Tag":            "noindex, nofollow",
}

// AdminSecurityHeaders adds the fixed header set carried by every admin
// response, including error responses.
func AdminSecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		for k, v := range adminHeaders {
			c.Set(k, v)
		}
		return c.Next()
	}
}
