package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxRealIPKey = "real_ip"

// DefaultIPHeaders are consulted in order by RealIP when none are given.
var DefaultIPHeaders = []string{"CF-Connecting-IP", "X-Real-IP", "X-Forwarded-For"}

// RealIP stores the client IP under CtxRealIPKey. The first header holding a
// parseable address wins; list headers use their left-most entry. Falls back to
// c.ClientIP().
func RealIP(headers ...string) gin.HandlerFunc {
	if len(headers) == 0 {
		headers = DefaultIPHeaders
	}
	return func(c *gin.Context) {
		ip := ""
		for _, h := range headers {
			if ip = headerIP(c.GetHeader(h)); ip != "" {
				break
			}
		}
		if ip == "" {
			ip = c.ClientIP()
		}
		c.Set(CtxRealIPKey, ip)
		c.Next()
	}
}

func headerIP(v string) string {
	first, _, _ := strings.Cut(v, ",")
	if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
		return ip.String()
	}
	return ""
}
