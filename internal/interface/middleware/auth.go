package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/customer-directory/internal/application"
	"github.com/oksasatya/customer-directory/internal/domain/entity"
	"github.com/oksasatya/customer-directory/pkg/response"
)

const (
	CtxCustomerKey      = "customer"
	CtxCustomerIDKey    = "customerID"
	CtxCustomerEmailKey = "customerEmail"
)

// Authenticator resolves a bearer token to the customer it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.CustomerView, error)
}

func bearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// Auth requires a valid bearer token and puts the caller's view in the Gin context.
func Auth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing bearer token", nil)
			c.Abort()
			return
		}
		v, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, application.ErrInvalidCredentials) {
				response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			} else {
				response.Error[any](c, http.StatusInternalServerError, "storage failure", nil)
			}
			c.Abort()
			return
		}

		c.Set(CtxCustomerKey, v)
		c.Set(CtxCustomerIDKey, v.ID)
		c.Set(CtxCustomerEmailKey, v.Email)
		c.Next()
	}
}
