package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/customer-directory/internal/interface/http"
	"github.com/oksasatya/customer-directory/internal/interface/middleware"
)

// CustomerModule wires the customer routes.
// Public: POST /customers (registration)
// Protected: everything else, bearer token required
type CustomerModule struct {
	Handler *handlers.CustomerHandler
	Auth    middleware.Authenticator
}

func NewCustomerModule(h *handlers.CustomerHandler, auth middleware.Authenticator) *CustomerModule {
	return &CustomerModule{Handler: h, Auth: auth}
}

func (m *CustomerModule) Name() string { return "customers" }

func (m *CustomerModule) Register(rg *gin.RouterGroup) {
	rg.POST("/customers", m.Handler.Register)

	auth := rg.Group("/customers")
	auth.Use(middleware.Auth(m.Auth))
	{
		auth.GET("", m.Handler.List)
		auth.GET("/search", m.Handler.Search)
		auth.GET("/:id", m.Handler.Get)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
		auth.POST("/:id/profile-image", m.Handler.UploadProfileImage)
		auth.GET("/:id/profile-image", m.Handler.GetProfileImage)
	}
}
