package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxUserID = "identity.user_id"
	ctxRole   = "identity.role"
	ctxPlan   = "identity.plan"
)

// SetIdentity stashes the authenticated caller in the gin context.
// The auth middleware is the only writer.
func SetIdentity(c *gin.Context, id uuid.UUID, role, plan string) {
	c.Set(ctxUserID, id)
	c.Set(ctxRole, role)
	c.Set(ctxPlan, plan)
}

func UserID(c *gin.Context) uuid.UUID {
	v, _ := c.Get(ctxUserID)
	id, _ := v.(uuid.UUID)
	return id
}

func UserRole(c *gin.Context) string {
	v, _ := c.Get(ctxRole)
	role, _ := v.(string)
	return role
}
