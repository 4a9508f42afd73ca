package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const viewerIDKey = "viewer_id"

// Identity распознаёт пользователя по Bearer-токену внешнего сервиса
// авторизации. Отсутствующий или невалидный токен не отклоняет запрос:
// пользователь считается анонимным. Пустой секрет отключает проверку.
func Identity(secret string, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Next()
		}

		auth := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(auth, "Bearer ") {
			return c.Next()
		}
		raw := strings.TrimPrefix(auth, "Bearer ")

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			logger.Debug("Ignoring invalid bearer token", zap.Error(err))
			return c.Next()
		}

		if claims, ok := tok.Claims.(jwt.MapClaims); ok {
			if id := subject(claims); id != "" {
				c.Locals(viewerIDKey, id)
			}
		}
		return c.Next()
	}
}

// ViewerID - идентификатор пользователя или "" для анонимного запроса
func ViewerID(c *fiber.Ctx) string {
	id, _ := c.Locals(viewerIDKey).(string)
	return id
}

func subject(claims jwt.MapClaims) string {
	if v, ok := claims["sub"].(string); ok && v != "" {
		return v
	}
	if v, ok := claims["user_id"].(string); ok && v != "" {
		return v
	}
	return ""
}
