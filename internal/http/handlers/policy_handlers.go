package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soumyachk101/HealthTrack-Server/domain"
)

// PolicyHandlers exposes the admin route-authorization policies
type PolicyHandlers struct {
	policySvc domain.PolicyService
}

// NewPolicyHandlers creates new policy handlers
func NewPolicyHandlers(policySvc domain.PolicyService) *PolicyHandlers {
	return &PolicyHandlers{policySvc: policySvc}
}

type policyRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

// List returns all stored policies.
func (h *PolicyHandlers) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "policies": h.policySvc.GetPolicies()})
}

// Add installs a policy rule.
func (h *PolicyHandlers) Add(c *gin.Context) {
	var req policyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err := h.policySvc.AddPolicy(req.Role, req.Resource, req.Action); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to add policy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Remove deletes a policy rule.
func (h *PolicyHandlers) Remove(c *gin.Context) {
	var req policyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err := h.policySvc.RemovePolicy(req.Role, req.Resource, req.Action); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to remove policy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
