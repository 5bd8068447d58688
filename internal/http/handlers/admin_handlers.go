package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/soumyachk101/HealthTrack-Server/domain"
)

// AdminHandlers handles administrator portal HTTP requests. Routes are
// guarded by the casbin policy layer; handlers assume an admin caller.
type AdminHandlers struct {
	adminSvc domain.AdminService
}

// NewAdminHandlers creates new admin handlers
func NewAdminHandlers(adminSvc domain.AdminService) *AdminHandlers {
	return &AdminHandlers{adminSvc: adminSvc}
}

// Report returns the system-wide counts for the admin dashboard.
func (h *AdminHandlers) Report(c *gin.Context) {
	report, err := h.adminSvc.Report(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"total_users":         report.TotalUsers,
		"total_patients":      report.TotalPatients,
		"total_providers":     report.TotalProviders,
		"pending_approvals":   report.PendingApprovals,
		"total_records":       report.TotalRecords,
		"new_users_this_week": report.NewUsersThisWeek,
	})
}

// PendingApprovals lists provider accounts awaiting approval.
func (h *AdminHandlers) PendingApprovals(c *gin.Context) {
	users, err := h.adminSvc.PendingApprovals(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load approvals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "pending": usersJSON(users)})
}

// ApproveProvider marks a provider account approved.
func (h *AdminHandlers) ApproveProvider(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	if err := h.adminSvc.ApproveProvider(c.Request.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to approve"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "approved": true})
}

// RejectProvider deletes a provider account that was never approved.
func (h *AdminHandlers) RejectProvider(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	if err := h.adminSvc.RejectProvider(c.Request.Context(), userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		case errors.Is(err, domain.ErrUnauthorized):
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Cannot reject an approved provider"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to reject"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "rejected": true})
}

// ListUsers lists accounts, optionally filtered by role and search term.
func (h *AdminHandlers) ListUsers(c *gin.Context) {
	role := c.Query("role")
	search := c.Query("search")

	users, err := h.adminSvc.ListUsers(c.Request.Context(), role, search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": usersJSON(users)})
}

func pathUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid user ID"})
		return 0, false
	}
	return uint(id), true
}

func usersJSON(users []*domain.User) []gin.H {
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{
			"id":          u.ID,
			"username":    u.Username,
			"email":       u.Email,
			"name":        u.FullName(),
			"role":        u.Role,
			"is_approved": u.IsApproved,
			"created_at":  u.CreatedAt,
		})
	}
	return out
}
