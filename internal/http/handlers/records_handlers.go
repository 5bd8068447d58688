package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/soumyachk101/HealthTrack-Server/domain"
	"github.com/soumyachk101/HealthTrack-Server/internal/http/middleware"
)

const dateLayout = "2006-01-02"

// RecordsHandlers handles personal health data HTTP requests. Every
// route is scoped to the authenticated user; there is no cross-user
// access at this surface.
type RecordsHandlers struct {
	recordsSvc domain.RecordsService
}

// NewRecordsHandlers creates new records handlers
func NewRecordsHandlers(recordsSvc domain.RecordsService) *RecordsHandlers {
	return &RecordsHandlers{recordsSvc: recordsSvc}
}

type healthRecordRequest struct {
	SystolicBP  int     `json:"systolic_bp"`
	DiastolicBP int     `json:"diastolic_bp"`
	BloodSugar  float64 `json:"blood_sugar"`
	Weight      float64 `json:"weight"`
	HeartRate   int     `json:"heart_rate"`
	Temperature float64 `json:"temperature"`
	OxygenLevel int     `json:"oxygen_level"`
	Notes       string  `json:"notes"`
	RecordedAt  string  `json:"recorded_at"`
}

type medicineRequest struct {
	Name         string `json:"name" binding:"required"`
	Dosage       string `json:"dosage" binding:"required"`
	Frequency    string `json:"frequency" binding:"required"`
	StartDate    string `json:"start_date" binding:"required"`
	EndDate      string `json:"end_date"`
	PrescribedBy string `json:"prescribed_by"`
	Notes        string `json:"notes"`
}

type prescriptionRequest struct {
	DoctorName       string `json:"doctor_name" binding:"required"`
	HospitalName     string `json:"hospital_name"`
	Diagnosis        string `json:"diagnosis" binding:"required"`
	PrescriptionDate string `json:"prescription_date" binding:"required"`
	FollowUpDate     string `json:"follow_up_date"`
	Notes            string `json:"notes"`
}

type mentalHealthRequest struct {
	MoodScore    int     `json:"mood_score" binding:"required,min=1,max=5"`
	StressLevel  int     `json:"stress_level" binding:"required,min=1,max=5"`
	SleepHours   float64 `json:"sleep_hours"`
	SleepQuality int     `json:"sleep_quality" binding:"min=0,max=5"`
	AnxietyLevel int     `json:"anxiety_level" binding:"min=0,max=5"`
	Notes        string  `json:"notes"`
	RecordedAt   string  `json:"recorded_at"`
}

type lifestyleRequest struct {
	WaterIntake      int    `json:"water_intake"`
	ExerciseMinutes  int    `json:"exercise_minutes"`
	StepsCount       int    `json:"steps_count"`
	CaloriesConsumed int    `json:"calories_consumed"`
	CaloriesBurned   int    `json:"calories_burned"`
	SmokingCount     int    `json:"smoking_count"`
	AlcoholUnits     int    `json:"alcohol_units"`
	Notes            string `json:"notes"`
	RecordedAt       string `json:"recorded_at"`
}

type insuranceRequest struct {
	PolicyType     string  `json:"policy_type" binding:"required"`
	ProviderName   string  `json:"provider_name" binding:"required"`
	PolicyNumber   string  `json:"policy_number" binding:"required"`
	CoverageAmount float64 `json:"coverage_amount"`
	PremiumAmount  float64 `json:"premium_amount"`
	StartDate      string  `json:"start_date" binding:"required"`
	EndDate        string  `json:"end_date" binding:"required"`
}

// AddHealthRecord stores a vitals entry for the authenticated user.
func (h *RecordsHandlers) AddHealthRecord(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	var req healthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	rec := &domain.HealthRecord{
		UserID:      userID,
		SystolicBP:  req.SystolicBP,
		DiastolicBP: req.DiastolicBP,
		BloodSugar:  req.BloodSugar,
		Weight:      req.Weight,
		HeartRate:   req.HeartRate,
		Temperature: req.Temperature,
		OxygenLevel: req.OxygenLevel,
		Notes:       req.Notes,
		RecordedAt:  parseDateOr(req.RecordedAt, time.Now()),
	}

	if err := h.recordsSvc.AddHealthRecord(c.Request.Context(), rec); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save record"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"id":        rec.ID,
		"bp_status": rec.BPStatus(),
	})
}

// ListHealthRecords returns the user's vitals history, newest first.
func (h *RecordsHandlers) ListHealthRecords(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	records, err := h.recordsSvc.ListHealthRecords(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load records"})
		return
	}

	out := make([]gin.H, 0, len(records))
	for _, r := range records {
		out = append(out, gin.H{
			"id":           r.ID,
			"systolic_bp":  r.SystolicBP,
			"diastolic_bp": r.DiastolicBP,
			"bp_status":    r.BPStatus(),
			"blood_sugar":  r.BloodSugar,
			"weight":       r.Weight,
			"heart_rate":   r.HeartRate,
			"temperature":  r.Temperature,
			"oxygen_level": r.OxygenLevel,
			"notes":        r.Notes,
			"recorded_at":  r.RecordedAt.Format(dateLayout),
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "records": out})
}

// AddMedicine stores a medicine entry.
func (h *RecordsHandlers) AddMedicine(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	var req medicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid start_date"})
		return
	}

	med := &domain.Medicine{
		UserID:       userID,
		Name:         req.Name,
		Dosage:       req.Dosage,
		Frequency:    req.Frequency,
		StartDate:    start,
		EndDate:      parseDatePtr(req.EndDate),
		PrescribedBy: req.PrescribedBy,
		Notes:        req.Notes,
		IsActive:     true,
	}

	if err := h.recordsSvc.AddMedicine(c.Request.Context(), med); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save medicine"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": med.ID})
}

// ListMedicines returns the user's medicines.
func (h *RecordsHandlers) ListMedicines(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	meds, err := h.recordsSvc.ListMedicines(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load medicines"})
		return
	}

	out := make([]gin.H, 0, len(meds))
	for _, m := range meds {
		item := gin.H{
			"id":            m.ID,
			"name":          m.Name,
			"dosage":        m.Dosage,
			"frequency":     m.Frequency,
			"start_date":    m.StartDate.Format(dateLayout),
			"prescribed_by": m.PrescribedBy,
			"notes":         m.Notes,
			"is_active":     m.IsActive,
		}
		if m.EndDate != nil {
			item["end_date"] = m.EndDate.Format(dateLayout)
		}
		out = append(out, item)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "medicines": out})
}

// AddPrescription stores a prescription entry.
func (h *RecordsHandlers) AddPrescription(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	var req prescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	pdate, err := time.Parse(dateLayout, req.PrescriptionDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid prescription_date"})
		return
	}

	p := &domain.Prescription{
		UserID:           userID,
		DoctorName:       req.DoctorName,
		HospitalName:     req.HospitalName,
		Diagnosis:        req.Diagnosis,
		PrescriptionDate: pdate,
		FollowUpDate:     parseDatePtr(req.FollowUpDate),
		Notes:            req.Notes,
	}

	if err := h.recordsSvc.AddPrescription(c.Request.Context(), p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save prescription"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": p.ID})
}

// ListPrescriptions returns the user's prescriptions.
func (h *RecordsHandlers) ListPrescriptions(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	items, err := h.recordsSvc.ListPrescriptions(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load prescriptions"})
		return
	}

	out := make([]gin.H, 0, len(items))
	for _, p := range items {
		item := gin.H{
			"id":                p.ID,
			"doctor_name":       p.DoctorName,
			"hospital_name":     p.HospitalName,
			"diagnosis":         p.Diagnosis,
			"prescription_date": p.PrescriptionDate.Format(dateLayout),
			"notes":             p.Notes,
		}
		if p.FollowUpDate != nil {
			item["follow_up_date"] = p.FollowUpDate.Format(dateLayout)
		}
		out = append(out, item)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "prescriptions": out})
}

// AddMentalHealthLog stores a mental health entry.
func (h *RecordsHandlers) AddMentalHealthLog(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	var req mentalHealthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	m := &domain.MentalHealthLog{
		UserID:       userID,
		MoodScore:    req.MoodScore,
		StressLevel:  req.StressLevel,
		SleepHours:   req.SleepHours,
		SleepQuality: req.SleepQuality,
		AnxietyLevel: req.AnxietyLevel,
		Notes:        req.Notes,
		RecordedAt:   parseDateOr(req.RecordedAt, time.Now()),
	}

	if err := h.recordsSvc.AddMentalHealthLog(c.Request.Context(), m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save log"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": m.ID})
}

// ListMentalHealthLogs returns the user's mental health history.
func (h *RecordsHandlers) ListMentalHealthLogs(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	logs, err := h.recordsSvc.ListMentalHealthLogs(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load logs"})
		return
	}

	out := make([]gin.H, 0, len(logs))
	for _, m := range logs {
		out = append(out, gin.H{
			"id":            m.ID,
			"mood_score":    m.MoodScore,
			"stress_level":  m.StressLevel,
			"sleep_hours":   m.SleepHours,
			"sleep_quality": m.SleepQuality,
			"anxiety_level": m.AnxietyLevel,
			"notes":         m.Notes,
			"recorded_at":   m.RecordedAt.Format(dateLayout),
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "logs": out})
}

// AddLifestyleLog stores (or replaces) today's lifestyle entry.
func (h *RecordsHandlers) AddLifestyleLog(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	var req lifestyleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	l := &domain.LifestyleLog{
		UserID:           userID,
		WaterIntake:      req.WaterIntake,
		ExerciseMinutes:  req.ExerciseMinutes,
		StepsCount:       req.StepsCount,
		CaloriesConsumed: req.CaloriesConsumed,
		CaloriesBurned:   req.CaloriesBurned,
		SmokingCount:     req.SmokingCount,
		AlcoholUnits:     req.AlcoholUnits,
		Notes:            req.Notes,
		RecordedAt:       parseDateOr(req.RecordedAt, time.Now()).Truncate(24*time.Hour),
	}

	if err := h.recordsSvc.AddLifestyleLog(c.Request.Context(), l); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save log"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": l.ID})
}

// ListLifestyleLogs returns the user's lifestyle history.
func (h *RecordsHandlers) ListLifestyleLogs(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	logs, err := h.recordsSvc.ListLifestyleLogs(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load logs"})
		return
	}

	out := make([]gin.H, 0, len(logs))
	for _, l := range logs {
		out = append(out, gin.H{
			"id":                l.ID,
			"water_intake":      l.WaterIntake,
			"exercise_minutes":  l.ExerciseMinutes,
			"steps_count":       l.StepsCount,
			"calories_consumed": l.CaloriesConsumed,
			"calories_burned":   l.CaloriesBurned,
			"smoking_count":     l.SmokingCount,
			"alcohol_units":     l.AlcoholUnits,
			"notes":             l.Notes,
			"recorded_at":       l.RecordedAt.Format(dateLayout),
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "logs": out})
}

// AddInsurancePolicy stores an insurance policy.
func (h *RecordsHandlers) AddInsurancePolicy(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	var req insuranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid start_date"})
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid end_date"})
		return
	}

	p := &domain.InsurancePolicy{
		UserID:         userID,
		PolicyType:     req.PolicyType,
		ProviderName:   req.ProviderName,
		PolicyNumber:   req.PolicyNumber,
		CoverageAmount: req.CoverageAmount,
		PremiumAmount:  req.PremiumAmount,
		StartDate:      start,
		EndDate:        end,
		IsActive:       true,
	}

	if err := h.recordsSvc.AddInsurancePolicy(c.Request.Context(), p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save policy"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": p.ID})
}

// ListInsurancePolicies returns the user's insurance policies.
func (h *RecordsHandlers) ListInsurancePolicies(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	items, err := h.recordsSvc.ListInsurancePolicies(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load policies"})
		return
	}

	out := make([]gin.H, 0, len(items))
	for _, p := range items {
		out = append(out, gin.H{
			"id":              p.ID,
			"policy_type":     p.PolicyType,
			"provider_name":   p.ProviderName,
			"policy_number":   p.PolicyNumber,
			"coverage_amount": p.CoverageAmount,
			"premium_amount":  p.PremiumAmount,
			"start_date":      p.StartDate.Format(dateLayout),
			"end_date":        p.EndDate.Format(dateLayout),
			"is_active":       p.IsActive,
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "policies": out})
}

// Dashboard aggregates the user's latest data in one response.
func (h *RecordsHandlers) Dashboard(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	summary, err := h.recordsSvc.Dashboard(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load dashboard"})
		return
	}

	resp := gin.H{
		"success":          true,
		"name":             summary.User.FullName(),
		"active_medicines": summary.ActiveMedicines,
	}
	if summary.LatestRecord != nil {
		resp["latest_record"] = gin.H{
			"systolic_bp":  summary.LatestRecord.SystolicBP,
			"diastolic_bp": summary.LatestRecord.DiastolicBP,
			"bp_status":    summary.LatestRecord.BPStatus(),
			"weight":       summary.LatestRecord.Weight,
			"recorded_at":  summary.LatestRecord.RecordedAt.Format(dateLayout),
		}
	}
	if summary.LatestMental != nil {
		resp["latest_mental"] = gin.H{
			"mood_score":   summary.LatestMental.MoodScore,
			"stress_level": summary.LatestMental.StressLevel,
			"sleep_hours":  summary.LatestMental.SleepHours,
			"recorded_at":  summary.LatestMental.RecordedAt.Format(dateLayout),
		}
	}
	activities := make([]gin.H, 0, len(summary.RecentActivities))
	for _, a := range summary.RecentActivities {
		activities = append(activities, gin.H{
			"action":     a.Action.Display(),
			"details":    a.Details,
			"created_at": a.CreatedAt,
		})
	}
	resp["recent_activities"] = activities

	c.JSON(http.StatusOK, resp)
}

func parseDateOr(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fallback
	}
	return t
}

func parseDatePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
