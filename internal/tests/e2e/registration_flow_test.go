package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/soumyachk101/HealthTrack-Server/domain"
	httphandlers "github.com/soumyachk101/HealthTrack-Server/internal/http/handlers"
	"github.com/soumyachk101/HealthTrack-Server/internal/http/middleware"
	"github.com/soumyachk101/HealthTrack-Server/internal/infrastructure/auth"
	"github.com/soumyachk101/HealthTrack-Server/internal/infrastructure/repositories"
	"github.com/soumyachk101/HealthTrack-Server/internal/mocks"
	"github.com/soumyachk101/HealthTrack-Server/internal/services"
)

// testServer wires real repositories over sqlite, real password and
// token services, an in-memory staging store and a capturing
// notification sink, then exposes the HTTP surface minus the admin
// group.
type testServer struct {
	engine *gin.Engine
	notif  *mocks.MockNotificationService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&repositories.DBUser{}, &repositories.DBServiceProvider{},
		&repositories.DBOneTimePasscode{}, &repositories.DBHealthRecord{},
		&repositories.DBMedicine{}, &repositories.DBPrescription{},
		&repositories.DBMentalHealthLog{}, &repositories.DBLifestyleLog{},
		&repositories.DBInsurancePolicy{}, &repositories.DBActivityLog{},
	))

	userRepo := repositories.NewUserRepository(db)
	otpRepo := repositories.NewOTPRepository(db)
	healthRepo := repositories.NewHealthDataRepository(db)
	activityRepo := repositories.NewActivityLogRepository(db)
	pendingRepo := mocks.NewMockPendingRegistrationRepository()
	notif := mocks.NewMockNotificationService()

	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService("e2e-secret", "healthtrack", time.Hour)

	otpSvc := services.NewOTPService(otpRepo, notif, services.OTPConfig{Length: 6, TTL: 10 * time.Minute})
	authSvc := services.NewAuthService(userRepo, pendingRepo, otpSvc, passwordSvc, tokenSvc, activityRepo, notif, services.AuthConfig{
		TokenTTL:        time.Hour,
		OTPTTL:          10 * time.Minute,
		RequireLoginOTP: true,
	})
	recordsSvc := services.NewRecordsService(healthRepo, userRepo, activityRepo)

	ah := httphandlers.NewAuthHandlers(authSvc)
	rh := httphandlers.NewRecordsHandlers(recordsSvc)
	jwtMW := middleware.NewAuthMW(tokenSvc, userRepo)

	r := gin.New()
	r.POST("/api/auth/register", ah.Register)
	r.POST("/api/auth/login", ah.Login)
	r.POST("/api/auth/otp/verify", ah.VerifyOTP)
	r.POST("/api/auth/otp/resend", ah.ResendOTP)
	protected := r.Group("/api").Use(jwtMW.WithJWT())
	protected.GET("/auth/me", ah.Me)
	protected.GET("/dashboard", rh.Dashboard)
	protected.POST("/records/health", rh.AddHealthRecord)
	protected.GET("/records/health", rh.ListHealthRecords)

	return &testServer{engine: r, notif: notif}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

// lastCode returns the most recent OTP the notification sink saw.
func (s *testServer) lastCode(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, s.notif.SentCodes, "no OTP was ever dispatched")
	return s.notif.SentCodes[len(s.notif.SentCodes)-1]
}

func TestRegistrationFlow(t *testing.T) {
	srv := newTestServer(t)

	register := map[string]string{
		"username":   "alice",
		"email":      "alice@example.com",
		"password":   "SecurePass123",
		"first_name": "Alice",
	}

	w, body := srv.do(t, http.MethodPost, "/api/auth/register", "", register)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["challenge_issued"])
	assert.NotEmpty(t, body["registration_id"])

	// No account exists before the challenge is answered.
	w, _ = srv.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "alice", "password": "SecurePass123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A wrong code does not confirm.
	w, _ = srv.do(t, http.MethodPost, "/api/auth/otp/verify", "", map[string]string{
		"email": "alice@example.com", "code": "000000", "purpose": domain.PurposeRegister,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The real code does.
	code := srv.lastCode(t)
	w, body = srv.do(t, http.MethodPost, "/api/auth/otp/verify", "", map[string]string{
		"email": "alice@example.com", "code": code, "purpose": domain.PurposeRegister,
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := body["token"].(string)
	require.NotEmpty(t, token)

	// A replayed confirmation fails: the staging record is consumed.
	w, _ = srv.do(t, http.MethodPost, "/api/auth/otp/verify", "", map[string]string{
		"email": "alice@example.com", "code": code, "purpose": domain.PurposeRegister,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The token opens the protected surface.
	w, body = srv.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, true, user["is_email_verified"])
}

func TestLoginFlow(t *testing.T) {
	srv := newTestServer(t)

	// Provision an account through the registration flow.
	srv.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "bob", "email": "bob@example.com", "password": "SecurePass123",
	})
	srv.do(t, http.MethodPost, "/api/auth/otp/verify", "", map[string]string{
		"email": "bob@example.com", "code": srv.lastCode(t), "purpose": domain.PurposeRegister,
	})

	// Wrong password never issues a challenge.
	w, _ := srv.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "bob", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Correct credentials issue a login challenge, not a token.
	w, body := srv.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "bob", "password": "SecurePass123"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["challenge_issued"])
	assert.NotContains(t, body, "token")

	// A login code does not confirm a registration and vice versa.
	loginCode := srv.lastCode(t)
	w, _ = srv.do(t, http.MethodPost, "/api/auth/otp/verify", "", map[string]string{
		"email": "bob@example.com", "code": loginCode, "purpose": domain.PurposeRegister,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = srv.do(t, http.MethodPost, "/api/auth/otp/verify", "", map[string]string{
		"email": "bob@example.com", "code": loginCode, "purpose": domain.PurposeLogin,
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := body["token"].(string)

	// The code burned on success: replaying it fails.
	w, _ = srv.do(t, http.MethodPost, "/api/auth/otp/verify", "", map[string]string{
		"email": "bob@example.com", "code": loginCode, "purpose": domain.PurposeLogin,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Resend supersedes: after a fresh login challenge plus resend, only
	// the newest code validates.
	srv.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "bob", "password": "SecurePass123"})
	staleCode := srv.lastCode(t)
	srv.do(t, http.MethodPost, "/api/auth/otp/resend", "", map[string]string{
		"email": "bob@example.com", "purpose": domain.PurposeLogin,
	})
	freshCode := srv.lastCode(t)

	if staleCode != freshCode {
		w, _ = srv.do(t, http.MethodPost, "/api/auth/otp/verify", "", map[string]string{
			"email": "bob@example.com", "code": staleCode, "purpose": domain.PurposeLogin,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, "superseded code must not validate")
	}
	w, _ = srv.do(t, http.MethodPost, "/api/auth/otp/verify", "", map[string]string{
		"email": "bob@example.com", "code": freshCode, "purpose": domain.PurposeLogin,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Records round trip under the session token.
	w, _ = srv.do(t, http.MethodPost, "/api/records/health", token, map[string]interface{}{
		"systolic_bp": 118, "diastolic_bp": 76, "weight": 70.5,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, body = srv.do(t, http.MethodGet, "/api/records/health", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	records := body["records"].([]interface{})
	require.Len(t, records, 1)
	assert.Equal(t, "Normal", records[0].(map[string]interface{})["bp_status"])

	// No token, no records.
	w, _ = srv.do(t, http.MethodGet, "/api/records/health", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProviderRegistrationNeedsApproval(t *testing.T) {
	srv := newTestServer(t)

	srv.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "drjones", "email": "drjones@example.com", "password": "SecurePass123",
		"role": "doctor", "first_name": "Dana", "last_name": "Jones",
	})

	w, body := srv.do(t, http.MethodPost, "/api/auth/otp/verify", "", map[string]string{
		"email": "drjones@example.com", "code": srv.lastCode(t), "purpose": domain.PurposeRegister,
	})
	require.Equal(t, http.StatusOK, w.Code)

	user := body["user"].(map[string]interface{})
	assert.Equal(t, domain.RoleProvider, user["role"])

	token := body["token"].(string)
	w, body = srv.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := body["user"].(map[string]interface{})
	assert.Equal(t, false, me["is_approved"], "providers start unapproved")
}
