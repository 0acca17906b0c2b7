package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func ConfigCORS(allowedDomains string) gin.HandlerFunc {
	conf := cors.DefaultConfig()

	if allowedDomains == "*" {
		conf.AllowAllOrigins = true
	} else {
		conf.AllowOrigins = strings.Split(allowedDomains, ",")
		conf.AllowCredentials = true
	}

	conf.AllowHeaders = append(conf.AllowHeaders, "Authorization")
	conf.MaxAge = 12 * time.Hour

	return cors.New(conf)
}
