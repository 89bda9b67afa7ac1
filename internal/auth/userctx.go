package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/saokim-lighting/skl-backend/internal/users"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxEmail       = "email"
	CtxUserDBID    = "user_db_id"
	CtxUserRole    = "user_role"
)

// WithUser resolves the authenticated Firebase identity to a database
// user row, creating it on first sight, and stores id and role in the
// context for the handlers downstream. Runs after FirebaseAuth.
func WithUser(userRepo *users.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		fuid := strings.TrimSpace(c.GetString(CtxFirebaseUID))
		if fuid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unauthenticated"})
			c.Abort()
			return
		}

		u, err := userRepo.EnsureUser(c.Request.Context(), users.UpsertUser{
			FirebaseUID: fuid,
			Email:       c.GetString(CtxEmail),
			DisplayName: c.GetHeader("X-User-Name"),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "ensure user: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(CtxUserDBID, u.ID)
		c.Set(CtxUserRole, u.Role)
		c.Next()
	}
}

// UserDBID returns the database id of the authenticated user.
func UserDBID(c *gin.Context) string {
	return c.GetString(CtxUserDBID)
}

// UserRole returns the authenticated user's role.
func UserRole(c *gin.Context) string {
	return c.GetString(CtxUserRole)
}

// RequireRole gates a route group to the named roles. Admin always
// passes.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles)+1)
	allowed[users.RoleAdmin] = true
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		if !allowed[UserRole(c)] {
			c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "insufficient role"})
			c.Abort()
			return
		}
		c.Next()
	}
}
