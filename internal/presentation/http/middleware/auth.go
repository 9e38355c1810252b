package middleware

import (
	"strings"

	"github.com/dukapoint/pos-engine/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// OperatorClaims are the claims the external identity service puts in an
// operator token. The engine never issues tokens; it only verifies them and
// reads the identities it needs to stamp onto sales.
type OperatorClaims struct {
	OperatorID string `json:"operator_id"`
	TenantID   string `json:"tenant_id"`
	jwt.RegisteredClaims
}

// OperatorAuthMiddleware verifies the bearer token against the shared secret
// and places the operator identity in the request context
func OperatorAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.Unauthorized(c, "Operator token required")
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		claims := &OperatorClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			response.Unauthorized(c, "Invalid operator token")
			c.Abort()
			return
		}

		operatorID, err := uuid.Parse(claims.OperatorID)
		if err != nil {
			response.Unauthorized(c, "Invalid operator identity in token")
			c.Abort()
			return
		}

		c.Set("operator_id", operatorID)
		if tenantID, err := uuid.Parse(claims.TenantID); err == nil {
			c.Set("tenant_id", tenantID)
		}

		c.Next()
	}
}
