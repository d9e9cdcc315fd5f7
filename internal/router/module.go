package router

import "github.com/gin-gonic/gin"

// Module is a feature slice of the API. Name shows up in startup logs.
type Module interface {
	Name() string
	Register(rg *gin.RouterGroup)
}
