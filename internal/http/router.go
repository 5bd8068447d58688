package httpx

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/soumyachk101/HealthTrack-Server/internal/http/handlers"
	"github.com/soumyachk101/HealthTrack-Server/internal/http/middleware"
)

// BuildRouter assembles the HTTP surface. Auth endpoints are public,
// everything under /api requires a valid token, and /admin adds the
// policy check on top.
func BuildRouter(
	ah *handlers.AuthHandlers,
	rh *handlers.RecordsHandlers,
	adh *handlers.AdminHandlers,
	ph *handlers.PolicyHandlers,
	ch *handlers.ChatHandlers,
	jwtmw *middleware.AuthMW,
	cb *middleware.CasbinMW,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/api/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/otp/verify", ah.VerifyOTP)
	auth.POST("/otp/resend", ah.ResendOTP)
	auth.GET("/verify-email/:token", ah.VerifyEmail)

	api := r.Group("/api").Use(jwtmw.WithJWT())
	api.GET("/auth/me", ah.Me)
	api.GET("/dashboard", rh.Dashboard)
	api.POST("/chat", ch.Ask)

	api.POST("/records/health", rh.AddHealthRecord)
	api.GET("/records/health", rh.ListHealthRecords)
	api.POST("/records/medicines", rh.AddMedicine)
	api.GET("/records/medicines", rh.ListMedicines)
	api.POST("/records/prescriptions", rh.AddPrescription)
	api.GET("/records/prescriptions", rh.ListPrescriptions)
	api.POST("/records/mental", rh.AddMentalHealthLog)
	api.GET("/records/mental", rh.ListMentalHealthLogs)
	api.POST("/records/lifestyle", rh.AddLifestyleLog)
	api.GET("/records/lifestyle", rh.ListLifestyleLogs)
	api.POST("/records/insurance", rh.AddInsurancePolicy)
	api.GET("/records/insurance", rh.ListInsurancePolicies)

	adm := r.Group("/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.GET("/report", adh.Report)
	adm.GET("/approvals", adh.PendingApprovals)
	adm.POST("/approvals/:id/approve", adh.ApproveProvider)
	adm.POST("/approvals/:id/reject", adh.RejectProvider)
	adm.GET("/users", adh.ListUsers)
	adm.GET("/policies", ph.List)
	adm.POST("/policies", ph.Add)
	adm.DELETE("/policies", ph.Remove)

	return r
}
