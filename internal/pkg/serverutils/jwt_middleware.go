package serverutils

import (
	"os"

	"journal-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// NewJwtMiddleware validates the bearer token and checks that its session
// is still alive in the store, so a signed-out token is rejected even
// before it expires. On success user_id and session_id are set as locals.
func NewJwtMiddleware(sessions store.SessionStore) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			secret := os.Getenv("JWT_SECRET")
			if secret == "" {
				secret = "default_secret"
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid claims"})
		}

		sessionID, _ := claims["jti"].(string)
		if sessionID == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid claims"})
		}

		session, err := sessions.Get(ctx.Context(), sessionID)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Session lookup failed"})
		}
		if session == nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Session expired"})
		}

		ctx.Locals("user_id", claims["user_id"])
		ctx.Locals("session_id", sessionID)
		return ctx.Next()
	}
}
