package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID extracts the authenticated user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRole extracts the authenticated user's role from the Gin context
func GetUserRole(c *gin.Context) string {
	role, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	r, ok := role.(string)
	if !ok {
		return ""
	}
	return r
}

// GetBranchID extracts the authenticated user's branch from the Gin context.
// Admin tokens carry no branch.
func GetBranchID(c *gin.Context) *uuid.UUID {
	branchVal, exists := c.Get("branch_id")
	if !exists {
		return nil
	}
	branchID, ok := branchVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &branchID
}
