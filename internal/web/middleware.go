package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jyang234/dayplan/internal/auth"
)

// requireSession rejects requests without a valid session cookie. Browser
// navigations get redirected to the login page; API callers get a 401.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		marker, err := c.Cookie(auth.CookieName)
		if err == nil && s.sessions.Verify(marker) {
			c.Next()
			return
		}

		if strings.Contains(c.GetHeader("Accept"), "text/html") {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "authentication required",
		})
	}
}
