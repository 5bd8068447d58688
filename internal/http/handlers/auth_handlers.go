package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soumyachk101/HealthTrack-Server/domain"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// RegisterRequest represents a registration submission. Role accepts
// the public signup labels; "doctor" and "service_provider" both map
// to a provider account pending approval.
type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role,omitempty"`
	Phone     string `json:"phone,omitempty"`
	City      string `json:"city,omitempty"`
	Address   string `json:"address,omitempty"`

	ProviderType    string `json:"provider_type,omitempty"`
	BusinessName    string `json:"business_name,omitempty"`
	LicenseNumber   string `json:"license_number,omitempty"`
	Specialization  string `json:"specialization,omitempty"`
	WorkingHours    string `json:"working_hours,omitempty"`
	ServicesOffered string `json:"services_offered,omitempty"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// OTPVerifyRequest answers an outstanding challenge
type OTPVerifyRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Code    string `json:"code" binding:"required"`
	Purpose string `json:"purpose" binding:"required"`
}

// OTPResendRequest re-requests a challenge
type OTPResendRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Purpose string `json:"purpose" binding:"required"`
	Name    string `json:"name,omitempty"`
}

// Register stages a registration and issues the OTP challenge.
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	reg := stagedFromRequest(&req)

	challenge, err := h.authSvc.Register(c.Request.Context(), reg)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateUsername):
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Username already exists"})
		case errors.Is(err, domain.ErrDuplicateEmail):
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Email already registered"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to register"})
		}
		return
	}

	resp := gin.H{
		"success":          true,
		"challenge_issued": true,
		"registration_id":  challenge.CorrelationID,
	}
	if !challenge.Delivered {
		resp["warning"] = "Could not send email. Please check your email address."
	}
	c.JSON(http.StatusOK, resp)
}

// Login checks credentials and either issues an OTP challenge or, in
// the legacy flow, returns a token immediately.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	challenge, result, err := h.authSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailNotVerified) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Email not verified. A new verification link has been sent."})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid credentials"})
		return
	}

	if result != nil {
		c.JSON(http.StatusOK, authResultJSON(result))
		return
	}

	resp := gin.H{
		"success":          true,
		"challenge_issued": true,
	}
	if !challenge.Delivered {
		resp["warning"] = "Could not send email. Please check your email address."
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyOTP answers a challenge and completes login or registration.
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := h.authSvc.VerifyOTP(c.Request.Context(), req.Email, req.Code, req.Purpose)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionExpired):
			c.JSON(http.StatusGone, gin.H{"success": false, "error": "Registration session expired. Please register again."})
		case errors.Is(err, domain.ErrCodeInvalidOrExpired):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid or expired code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Verification failed"})
		}
		return
	}

	c.JSON(http.StatusOK, authResultJSON(result))
}

// ResendOTP re-issues a challenge. It succeeds for any well-formed
// address, whether or not a prior challenge exists.
func (h *AuthHandlers) ResendOTP(c *gin.Context) {
	var req OTPResendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	switch req.Purpose {
	case domain.PurposeRegister, domain.PurposeLogin, domain.PurposePasswordReset:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unknown purpose"})
		return
	}

	challenge, err := h.authSvc.ResendOTP(c.Request.Context(), req.Email, req.Purpose, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to resend code"})
		return
	}

	resp := gin.H{"success": true, "resent": true}
	if !challenge.Delivered {
		resp["warning"] = "Could not send email. Please check your email address."
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyEmail confirms a link-based email verification token.
func (h *AuthHandlers) VerifyEmail(c *gin.Context) {
	token := c.Param("token")

	user, err := h.authSvc.VerifyEmailToken(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid or expired verification link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"verified": true,
		"username": user.Username,
	})
}

// Me returns the authenticated account's profile.
func (h *AuthHandlers) Me(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	user, err := h.authSvc.GetUserProfile(c.Request.Context(), userID.(uint))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":                user.ID,
			"username":          user.Username,
			"email":             user.Email,
			"first_name":        user.FirstName,
			"last_name":         user.LastName,
			"role":              user.Role,
			"phone":             user.Phone,
			"city":              user.City,
			"blood_group":       user.BloodGroup,
			"is_approved":       user.IsApproved,
			"is_email_verified": user.IsEmailVerified,
			"created_at":        user.CreatedAt,
		},
	})
}

// stagedFromRequest maps the public signup labels onto the stored role
// model: doctors and service providers become provider accounts that
// need approval, everyone else is an auto-approved patient.
func stagedFromRequest(req *RegisterRequest) *domain.PendingRegistration {
	reg := &domain.PendingRegistration{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		City:      req.City,
		Address:   req.Address,
	}

	switch req.Role {
	case "doctor":
		reg.Role = domain.RoleProvider
		reg.ProviderType = domain.ProviderDoctor
	case "service_provider":
		reg.Role = domain.RoleProvider
		reg.ProviderType = req.ProviderType
		if reg.ProviderType == "" {
			reg.ProviderType = domain.ProviderPharmacy
		}
	default:
		reg.Role = domain.RolePatient
		reg.IsApproved = true
	}

	if reg.Role == domain.RoleProvider {
		reg.BusinessName = req.BusinessName
		reg.LicenseNumber = req.LicenseNumber
		reg.Specialization = req.Specialization
		reg.WorkingHours = req.WorkingHours
		reg.ServicesOffered = req.ServicesOffered
	}

	return reg
}

func authResultJSON(result *domain.AuthResult) gin.H {
	return gin.H{
		"success":    true,
		"token":      result.Token,
		"expires_in": result.ExpiresIn,
		"user": gin.H{
			"id":         result.User.ID,
			"username":   result.User.Username,
			"email":      result.User.Email,
			"first_name": result.User.FirstName,
			"last_name":  result.User.LastName,
			"role":       result.Role,
		},
	}
}
