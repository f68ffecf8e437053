package server

import (
	"crypto/subtle"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// serviceAPIKeyEnv — переменная окружения с ключом для server-to-server
// вызовов (анализатор документов, воркеры обогащения).
const serviceAPIKeyEnv = "DEVIS_SERVICE_API_KEY"

// ServiceBearerAuthMiddleware создает middleware для аутентификации внутренних
// сервисов по Bearer токену из заголовка Authorization. Пустой secret означает
// "взять из окружения"; отсутствие ключа и там — ошибка развёртывания,
// падаем сразу при сборке роутера, а не на первом запросе.
// serviceName используется для идентификации сервиса в контексте запроса.
func ServiceBearerAuthMiddleware(serviceName string, secret string) gin.HandlerFunc {
	if secret == "" {
		secret = os.Getenv(serviceAPIKeyEnv)
	}
	if secret == "" {
		panic(serviceAPIKeyEnv + " is not set - generate a service key before starting the server")
	}

	secretBytes := []byte(secret)

	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "service auth required"})
			return
		}

		token := []byte(h[7:])
		if subtle.ConstantTimeCompare(token, secretBytes) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid service token"})
			return
		}

		c.Set("service", serviceName)
		c.Next()
	}
}
