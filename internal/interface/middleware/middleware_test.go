package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/customer-directory/internal/application"
	"github.com/oksasatya/customer-directory/internal/domain/entity"
)

type stubAuth struct {
	view *entity.CustomerView
	err  error
}

func (s stubAuth) Authenticate(_ context.Context, token string) (*entity.CustomerView, error) {
	if token != "good" {
		return nil, application.ErrInvalidCredentials
	}
	return s.view, s.err
}

func serve(h gin.HandlerFunc, req *http.Request, after gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", h, after)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	view := &entity.CustomerView{ID: 7, Email: "alex@x.com"}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"good token", "Bearer good", http.StatusOK},
		{"scheme is case-insensitive", "bearer good", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			var gotID any
			w := serve(Auth(stubAuth{view: view}), req, func(c *gin.Context) {
				gotID, _ = c.Get(CtxCustomerIDKey)
				c.Status(http.StatusOK)
			})
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, int64(7), gotID)
			}
		})
	}
}

func TestAuthStorageFailure(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := serve(Auth(stubAuth{err: application.ErrStorage}), req, func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := serve(RequestIDMiddleware(), req, func(c *gin.Context) { c.Status(http.StatusOK) })
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	incoming := uuid.NewString()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	w = serve(RequestIDMiddleware(), req, func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not a uuid")
	w = serve(RequestIDMiddleware(), req, func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.NotEqual(t, "not a uuid", w.Header().Get(RequestIDHeader))
}

func TestRealIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"cloudflare first", map[string]string{"CF-Connecting-IP": "1.1.1.1", "X-Forwarded-For": "2.2.2.2"}, "1.1.1.1"},
		{"left-most forwarded", map[string]string{"X-Forwarded-For": "3.3.3.3, 10.0.0.1"}, "3.3.3.3"},
		{"garbage skipped", map[string]string{"CF-Connecting-IP": "junk", "X-Real-IP": "4.4.4.4"}, "4.4.4.4"},
		{"fallback", nil, "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			var got string
			serve(RealIP(), req, func(c *gin.Context) {
				got = c.GetString(CtxRealIPKey)
				c.Status(http.StatusOK)
			})
			assert.Equal(t, tt.want, got)
		})
	}
}
