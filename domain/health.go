package domain

import "time"

// Medicine frequencies
const (
	FrequencyOnce     = "once"
	FrequencyTwice    = "twice"
	FrequencyThrice   = "thrice"
	FrequencyAsNeeded = "asneeded"
)

// Insurance policy types
const (
	PolicyHealth = "health"
	PolicyLife   = "life"
	PolicyTerm   = "term"
)

// HealthRecord stores daily health metrics for a user.
type HealthRecord struct {
	ID            uint
	UserID        uint
	SystolicBP    int
	DiastolicBP   int
	BloodSugar    float64
	Weight        float64
	HeartRate     int
	Temperature   float64
	OxygenLevel   int
	Notes         string
	RecordedAt    time.Time
	CreatedAt     time.Time
}

// BPStatus classifies the blood pressure reading into the standard
// categories. Unknown when either value is missing.
func (r *HealthRecord) BPStatus() string {
	if r.SystolicBP == 0 || r.DiastolicBP == 0 {
		return "Unknown"
	}
	switch {
	case r.SystolicBP < 120 && r.DiastolicBP < 80:
		return "Normal"
	case r.SystolicBP < 130 && r.DiastolicBP < 80:
		return "Elevated"
	case r.SystolicBP < 140 || r.DiastolicBP < 90:
		return "High (Stage 1)"
	default:
		return "High (Stage 2)"
	}
}

// Medicine represents a medicine prescribed to or taken by the user.
type Medicine struct {
	ID           uint
	UserID       uint
	Name         string
	Dosage       string
	Frequency    string
	StartDate    time.Time
	EndDate      *time.Time
	PrescribedBy string
	Notes        string
	IsActive     bool
	CreatedAt    time.Time
}

// Prescription stores prescription details including doctor info.
type Prescription struct {
	ID               uint
	UserID           uint
	DoctorName       string
	HospitalName     string
	Diagnosis        string
	PrescriptionDate time.Time
	FollowUpDate     *time.Time
	Notes            string
	CreatedAt        time.Time
}

// MentalHealthLog tracks daily mental health metrics. Scores run 1
// (very low) through 5 (excellent).
type MentalHealthLog struct {
	ID           uint
	UserID       uint
	MoodScore    int
	StressLevel  int
	SleepHours   float64
	SleepQuality int
	AnxietyLevel int
	Notes        string
	RecordedAt   time.Time
	CreatedAt    time.Time
}

// LifestyleLog captures one day of lifestyle data; at most one row per
// (user, date).
type LifestyleLog struct {
	ID               uint
	UserID           uint
	WaterIntake      int
	ExerciseMinutes  int
	StepsCount       int
	CaloriesConsumed int
	CaloriesBurned   int
	SmokingCount     int
	AlcoholUnits     int
	Notes            string
	RecordedAt       time.Time
	CreatedAt        time.Time
}

// InsurancePolicy represents a user's insurance policy.
type InsurancePolicy struct {
	ID             uint
	UserID         uint
	PolicyType     string
	ProviderName   string
	PolicyNumber   string
	CoverageAmount float64
	PremiumAmount  float64
	StartDate      time.Time
	EndDate        time.Time
	IsActive       bool
	CreatedAt      time.Time
}

// DashboardSummary aggregates a user's latest data for the dashboard.
type DashboardSummary struct {
	User             *User
	LatestRecord     *HealthRecord
	ActiveMedicines  int64
	LatestMental     *MentalHealthLog
	RecentActivities []*ActivityLog
}

// AdminReport aggregates system-wide counts for the admin dashboard.
type AdminReport struct {
	TotalUsers       int64
	TotalPatients    int64
	TotalProviders   int64
	PendingApprovals int64
	TotalRecords     int64
	NewUsersThisWeek int64
}
