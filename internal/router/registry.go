package router

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// APIPrefix is where every module is mounted.
const APIPrefix = "/api/v1"

// Registry collects modules and the middleware shared by all of them, then
// mounts them under APIPrefix in the order they were added.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group(APIPrefix)}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// ModuleNames lists the added modules in registration order.
func (r *Registry) ModuleNames() []string {
	names := make([]string, 0, len(r.modules))
	for _, m := range r.modules {
		names = append(names, m.Name())
	}
	return names
}

// RegisterAll mounts every module. A nil logger skips the route summary.
func (r *Registry) RegisterAll(logger *logrus.Logger) {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
	if logger == nil {
		return
	}
	routes := 0
	for _, ri := range r.Engine.Routes() {
		if strings.HasPrefix(ri.Path, APIPrefix) {
			routes++
		}
	}
	logger.WithFields(logrus.Fields{
		"modules": strings.Join(r.ModuleNames(), ","),
		"routes":  routes,
	}).Info("api routes registered")
}
