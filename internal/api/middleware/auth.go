package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/fixtrack/fixtrack/internal/config"
	"github.com/fixtrack/fixtrack/internal/domain/user"
	"github.com/fixtrack/fixtrack/internal/repository"
	"github.com/fixtrack/fixtrack/pkg/response"
	"github.com/fixtrack/fixtrack/pkg/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Auth handles role-based authorization middleware.
type Auth struct {
	repos *repository.Repos
}

func NewAuth(repos *repository.Repos) *Auth {
	return &Auth{repos: repos}
}

// RequireRole admits only callers whose current role resolves to one of the
// given tags. The role is re-read from the database so an admin changing a
// user's role takes effect without waiting for the token to expire.
func (a *Auth) RequireRole(tags ...user.RoleTag) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.MustGet("claims").(*types.Claims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid token claims"})
			return
		}

		u, err := a.repos.User.GetUserByID(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unknown user"})
			return
		}

		tag := u.Role.Tag()
		for _, t := range tags {
			if tag == t {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Error: "Forbidden"})
	}
}

// Admin is shorthand for the administrator-only gate.
func (a *Auth) Admin() gin.HandlerFunc {
	return a.RequireRole(user.RoleAdmin)
}

// CORSMiddleware allows the configured frontend origins plus local
// development hosts. WebSocket upgrades bypass the CORS handler.
func CORSMiddleware() gin.HandlerFunc {
	cfg := cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if strings.HasPrefix(origin, "http://localhost:") {
				return true
			}
			if strings.HasPrefix(origin, "http://127.0.0.1:") {
				return true
			}
			for _, allowed := range config.CorsOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	corsHandler := cors.New(cfg)
	return func(c *gin.Context) {
		upgrade := c.GetHeader("Upgrade")
		if strings.EqualFold(upgrade, "websocket") {
			c.Next()
			return
		}
		corsHandler(c)
	}
}
