package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

// CORS allows the configured comma-separated origins, or all with "*".
func CORS(origins string) fiber.Handler {
	allow := []string{"*"}
	if origins != "" && origins != "*" {
		allow = allow[:0]
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				allow = append(allow, o)
			}
		}
	}
	return cors.New(cors.Config{
		AllowOrigins: allow,
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		AllowMethods: []string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodPatch,
			fiber.MethodDelete,
			fiber.MethodOptions,
		},
	})
}
