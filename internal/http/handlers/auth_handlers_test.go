package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soumyachk101/HealthTrack-Server/domain"
	"github.com/soumyachk101/HealthTrack-Server/internal/mocks"
)

func performJSON(t *testing.T, handler gin.HandlerFunc, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, &buf)
	c.Request.Header.Set("Content-Type", "application/json")

	handler(c)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestAuthHandlers_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           RegisterRequest
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
		check          func(t *testing.T, body map[string]interface{})
	}{
		{
			name: "successful registration issues challenge",
			body: RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.RegisterFunc = func(ctx context.Context, reg *domain.PendingRegistration) (*domain.ChallengeResult, error) {
					return &domain.ChallengeResult{
						Email:         reg.Email,
						Purpose:       domain.PurposeRegister,
						CorrelationID: "corr-1",
						Delivered:     true,
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, true, body["challenge_issued"])
				assert.Equal(t, "corr-1", body["registration_id"])
				assert.NotContains(t, body, "warning")
			},
		},
		{
			name: "delivery failure surfaces as warning",
			body: RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.RegisterFunc = func(ctx context.Context, reg *domain.PendingRegistration) (*domain.ChallengeResult, error) {
					return &domain.ChallengeResult{Email: reg.Email, Purpose: domain.PurposeRegister, Delivered: false}, nil
				}
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, true, body["challenge_issued"])
				assert.Contains(t, body, "warning")
			},
		},
		{
			name: "duplicate username",
			body: RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.RegisterFunc = func(ctx context.Context, reg *domain.PendingRegistration) (*domain.ChallengeResult, error) {
					return nil, domain.ErrDuplicateUsername
				}
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "duplicate email",
			body: RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.RegisterFunc = func(ctx context.Context, reg *domain.PendingRegistration) (*domain.ChallengeResult, error) {
					return nil, domain.ErrDuplicateEmail
				}
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "missing email rejected by binding",
			body:           RegisterRequest{Username: "alice", Password: "secret123"},
			setupMocks:     func(svc *mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "short password rejected by binding",
			body:           RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "ab"},
			setupMocks:     func(svc *mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAuthService()
			tt.setupMocks(svc)
			h := NewAuthHandlers(svc)

			w, body := performJSON(t, h.Register, http.MethodPost, "/api/auth/register", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.check != nil {
				tt.check(t, body)
			}
		})
	}
}

func TestAuthHandlers_RegisterRoleMapping(t *testing.T) {
	tests := []struct {
		name             string
		role             string
		providerType     string
		wantRole         string
		wantProviderType string
		wantApproved     bool
	}{
		{"default is auto-approved patient", "", "", domain.RolePatient, "", true},
		{"doctor becomes pending provider", "doctor", "", domain.RoleProvider, domain.ProviderDoctor, false},
		{"service provider keeps chosen type", "service_provider", domain.ProviderLab, domain.RoleProvider, domain.ProviderLab, false},
		{"service provider defaults to pharmacy", "service_provider", "", domain.RoleProvider, domain.ProviderPharmacy, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var staged *domain.PendingRegistration
			svc := mocks.NewMockAuthService()
			svc.RegisterFunc = func(ctx context.Context, reg *domain.PendingRegistration) (*domain.ChallengeResult, error) {
				staged = reg
				return &domain.ChallengeResult{Email: reg.Email, Delivered: true}, nil
			}
			h := NewAuthHandlers(svc)

			req := RegisterRequest{
				Username:     "u",
				Email:        "u@example.com",
				Password:     "secret123",
				Role:         tt.role,
				ProviderType: tt.providerType,
			}
			w, _ := performJSON(t, h.Register, http.MethodPost, "/api/auth/register", req)
			require.Equal(t, http.StatusOK, w.Code)
			require.NotNil(t, staged)

			assert.Equal(t, tt.wantRole, staged.Role)
			assert.Equal(t, tt.wantProviderType, staged.ProviderType)
			assert.Equal(t, tt.wantApproved, staged.IsApproved)
		})
	}
}

func TestAuthHandlers_Login(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
		check          func(t *testing.T, body map[string]interface{})
	}{
		{
			name: "challenge flow",
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.LoginFunc = func(ctx context.Context, username, password string) (*domain.ChallengeResult, *domain.AuthResult, error) {
					return &domain.ChallengeResult{Email: "u@example.com", Purpose: domain.PurposeLogin, Delivered: true}, nil, nil
				}
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, true, body["challenge_issued"])
				assert.NotContains(t, body, "token")
			},
		},
		{
			name: "legacy flow returns token",
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.LoginFunc = func(ctx context.Context, username, password string) (*domain.ChallengeResult, *domain.AuthResult, error) {
					return nil, &domain.AuthResult{
						User:      &domain.User{ID: 1, Username: username, Email: "u@example.com"},
						Token:     "tok",
						Role:      domain.RolePatient,
						ExpiresIn: 3600,
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "tok", body["token"])
				user := body["user"].(map[string]interface{})
				assert.Equal(t, domain.RolePatient, user["role"])
			},
		},
		{
			name: "invalid credentials",
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.LoginFunc = func(ctx context.Context, username, password string) (*domain.ChallengeResult, *domain.AuthResult, error) {
					return nil, nil, domain.ErrInvalidCredentials
				}
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAuthService()
			tt.setupMocks(svc)
			h := NewAuthHandlers(svc)

			w, body := performJSON(t, h.Login, http.MethodPost, "/api/auth/login", LoginRequest{Username: "u", Password: "p"})
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.check != nil {
				tt.check(t, body)
			}
		})
	}
}

func TestAuthHandlers_VerifyOTP(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
	}{
		{
			name: "valid code returns token",
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.VerifyOTPFunc = func(ctx context.Context, email, code, purpose string) (*domain.AuthResult, error) {
					return &domain.AuthResult{
						User:  &domain.User{ID: 1, Username: "u", Email: email},
						Token: "tok",
						Role:  domain.RolePatient,
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "invalid code",
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.VerifyOTPFunc = func(ctx context.Context, email, code, purpose string) (*domain.AuthResult, error) {
					return nil, domain.ErrCodeInvalidOrExpired
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "expired staging session",
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.VerifyOTPFunc = func(ctx context.Context, email, code, purpose string) (*domain.AuthResult, error) {
					return nil, domain.ErrSessionExpired
				}
			},
			expectedStatus: http.StatusGone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAuthService()
			tt.setupMocks(svc)
			h := NewAuthHandlers(svc)

			req := OTPVerifyRequest{Email: "u@example.com", Code: "123456", Purpose: domain.PurposeRegister}
			w, _ := performJSON(t, h.VerifyOTP, http.MethodPost, "/api/auth/otp/verify", req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAuthHandlers_ResendOTP(t *testing.T) {
	t.Run("resends for any well-formed address", func(t *testing.T) {
		svc := mocks.NewMockAuthService()
		h := NewAuthHandlers(svc)

		req := OTPResendRequest{Email: "nobody@example.com", Purpose: domain.PurposeLogin}
		w, body := performJSON(t, h.ResendOTP, http.MethodPost, "/api/auth/otp/resend", req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["resent"])
	})

	t.Run("unknown purpose rejected", func(t *testing.T) {
		svc := mocks.NewMockAuthService()
		h := NewAuthHandlers(svc)

		req := OTPResendRequest{Email: "u@example.com", Purpose: "bogus"}
		w, _ := performJSON(t, h.ResendOTP, http.MethodPost, "/api/auth/otp/resend", req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
