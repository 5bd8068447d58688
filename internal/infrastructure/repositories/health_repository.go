package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/soumyachk101/HealthTrack-Server/domain"
)

// HealthDataRepositoryImpl implements domain.HealthDataRepository
// using GORM.
type HealthDataRepositoryImpl struct {
	db *gorm.DB
}

// DBHealthRecord is the database model for HealthRecord
type DBHealthRecord struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"index"`
	SystolicBP  int
	DiastolicBP int
	BloodSugar  float64
	Weight      float64
	HeartRate   int
	Temperature float64
	OxygenLevel int
	Notes       string
	RecordedAt  time.Time `gorm:"index"`
	CreatedAt   time.Time
}

func (DBHealthRecord) TableName() string { return "health_records" }

// DBMedicine is the database model for Medicine
type DBMedicine struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"index"`
	Name         string `gorm:"size:200"`
	Dosage       string `gorm:"size:100"`
	Frequency    string `gorm:"size:20"`
	StartDate    time.Time
	EndDate      *time.Time
	PrescribedBy string `gorm:"size:200"`
	Notes        string
	IsActive     bool `gorm:"index"`
	CreatedAt    time.Time
}

func (DBMedicine) TableName() string { return "medicines" }

// DBPrescription is the database model for Prescription
type DBPrescription struct {
	ID               uint   `gorm:"primaryKey"`
	UserID           uint   `gorm:"index"`
	DoctorName       string `gorm:"size:200"`
	HospitalName     string `gorm:"size:200"`
	Diagnosis        string
	PrescriptionDate time.Time `gorm:"index"`
	FollowUpDate     *time.Time
	Notes            string
	CreatedAt        time.Time
}

func (DBPrescription) TableName() string { return "prescriptions" }

// DBMentalHealthLog is the database model for MentalHealthLog
type DBMentalHealthLog struct {
	ID           uint `gorm:"primaryKey"`
	UserID       uint `gorm:"index"`
	MoodScore    int
	StressLevel  int
	SleepHours   float64
	SleepQuality int
	AnxietyLevel int
	Notes        string
	RecordedAt   time.Time `gorm:"index"`
	CreatedAt    time.Time
}

func (DBMentalHealthLog) TableName() string { return "mental_health_logs" }

// DBLifestyleLog is the database model for LifestyleLog. The composite
// unique index keeps one row per (user, date).
type DBLifestyleLog struct {
	ID               uint      `gorm:"primaryKey"`
	UserID           uint      `gorm:"uniqueIndex:idx_lifestyle_user_day"`
	WaterIntake      int
	ExerciseMinutes  int
	StepsCount       int
	CaloriesConsumed int
	CaloriesBurned   int
	SmokingCount     int
	AlcoholUnits     int
	Notes            string
	RecordedAt       time.Time `gorm:"uniqueIndex:idx_lifestyle_user_day"`
	CreatedAt        time.Time
}

func (DBLifestyleLog) TableName() string { return "lifestyle_logs" }

// DBInsurancePolicy is the database model for InsurancePolicy
type DBInsurancePolicy struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         uint   `gorm:"index"`
	PolicyType     string `gorm:"size:20"`
	ProviderName   string `gorm:"size:200"`
	PolicyNumber   string `gorm:"size:100"`
	CoverageAmount float64
	PremiumAmount  float64
	StartDate      time.Time
	EndDate        time.Time
	IsActive       bool
	CreatedAt      time.Time
}

func (DBInsurancePolicy) TableName() string { return "insurance_policies" }

// NewHealthDataRepository creates a new health data repository
func NewHealthDataRepository(db *gorm.DB) domain.HealthDataRepository {
	return &HealthDataRepositoryImpl{db: db}
}

// CreateHealthRecord implements domain.HealthDataRepository
func (r *HealthDataRepositoryImpl) CreateHealthRecord(ctx context.Context, rec *domain.HealthRecord) error {
	row := healthRecordToDB(rec)
	if row.RecordedAt.IsZero() {
		row.RecordedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	rec.ID = row.ID
	rec.RecordedAt = row.RecordedAt
	return nil
}

// ListHealthRecords implements domain.HealthDataRepository
func (r *HealthDataRepositoryImpl) ListHealthRecords(ctx context.Context, userID uint) ([]*domain.HealthRecord, error) {
	var rows []DBHealthRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("recorded_at DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	recs := make([]*domain.HealthRecord, 0, len(rows))
	for i := range rows {
		recs = append(recs, dbToHealthRecord(&rows[i]))
	}
	return recs, nil
}

// LatestHealthRecord returns the most recent record, or nil when the
// user has none.
func (r *HealthDataRepositoryImpl) LatestHealthRecord(ctx context.Context, userID uint) (*domain.HealthRecord, error) {
	var row DBHealthRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("recorded_at DESC").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return dbToHealthRecord(&row), nil
}

// CreateMedicine implements domain.HealthDataRepository
func (r *HealthDataRepositoryImpl) CreateMedicine(ctx context.Context, med *domain.Medicine) error {
	row := &DBMedicine{
		UserID:       med.UserID,
		Name:         med.Name,
		Dosage:       med.Dosage,
		Frequency:    med.Frequency,
		StartDate:    med.StartDate,
		EndDate:      med.EndDate,
		PrescribedBy: med.PrescribedBy,
		Notes:        med.Notes,
		IsActive:     med.IsActive,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	med.ID = row.ID
	return nil
}

// ListMedicines implements domain.HealthDataRepository
func (r *HealthDataRepositoryImpl) ListMedicines(ctx context.Context, userID uint) ([]*domain.Medicine, error) {
	var rows []DBMedicine
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	meds := make([]*domain.Medicine, 0, len(rows))
	for i := range rows {
		row := rows[i]
		meds = append(meds, &domain.Medicine{
			ID:           row.ID,
			UserID:       row.UserID,
			Name:         row.Name,
			Dosage:       row.Dosage,
			Frequency:    row.Frequency,
			StartDate:    row.StartDate,
			EndDate:      row.EndDate,
			PrescribedBy: row.PrescribedBy,
			Notes:        row.Notes,
			IsActive:     row.IsActive,
			CreatedAt:    row.CreatedAt,
		})
	}
	return meds, nil
}

// CountActiveMedicines implements domain.HealthDataRepository
func (r *HealthDataRepositoryImpl) CountActiveMedicines(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBMedicine{}).
		Where("user_id = ? AND is_active = ?", userID, true).Count(&count).Error
	return count, err
}

// CreatePrescription implements domain.HealthDataRepository
func (r *HealthDataRepositoryImpl) CreatePrescription(ctx context.Context, p *domain.Prescription) error {
	row := &DBPrescription{
		UserID:           p.UserID,
		DoctorName:       p.DoctorName,
		HospitalName:     p.HospitalName,
		Diagnosis:        p.Diagnosis,
		PrescriptionDate: p.PrescriptionDate,
		FollowUpDate:     p.FollowUpDate,
		Notes:            p.Notes,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	p.ID = row.ID
	return nil
}

// ListPrescriptions implements domain.HealthDataRepository
func (r *HealthDataRepositoryImpl) ListPrescriptions(ctx context.Context, userID uint) ([]*domain.Prescription, error) {
	var rows []DBPrescription
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("prescription_date DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Prescription, 0, len(rows))
	for i := range rows {
		row := rows[i]
		out = append(out, &domain.Prescription{
			ID:               row.ID,
			UserID:           row.UserID,
			DoctorName:       row.DoctorName,
			HospitalName:     row.HospitalName,
			Diagnosis:        row.Diagnosis,
			PrescriptionDate: row.PrescriptionDate,
			FollowUpDate:     row.FollowUpDate,
			Notes:            row.Notes,
			CreatedAt:        row.CreatedAt,
		})
	}
	return out, nil
}

// CreateMentalHealthLog implements domain.HealthDataRepository
func (r *HealthDataRepositoryImpl) CreateMentalHealthLog(ctx context.Context, m *domain.MentalHealthLog) error {
	row := &DBMentalHealthLog{
		UserID:       m.UserID,
		MoodScore:    m.MoodScore,
		StressLevel:  m.StressLevel,
		SleepHours:   m.SleepHours,
		SleepQuality: m.SleepQuality,
		AnxietyLevel: m.AnxietyLevel,
		Notes:        m.Notes,
		RecordedAt:   m.RecordedAt,
	}
	if row.RecordedAt.IsZero() {
		row.RecordedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	m.ID = row.ID
	m.RecordedAt = row.RecordedAt
	return nil
}

// ListMentalHealthLogs implements domain.HealthDataRepository
func (r *HealthDataRepositoryImpl) ListMentalHealthLogs(ctx context.Context, userID uint) ([]*domain.MentalHealthLog, error) {
	var rows []DBMentalHealthLog
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("recorded_at DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.MentalHealthLog, 0, len(rows))
	for i := range rows {
		out = append(out, dbToMentalHealthLog(&rows[i]))
	}
	return out, nil
}

// LatestMentalHealthLog returns the most recent log, or nil when the
// user has none.
func (r *HealthDataRepositoryImpl) LatestMentalHealthLog(ctx context.Context, userID uint) (*domain.MentalHealthLog, error) {
	var row DBMentalHealthLog
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("recorded_at DESC").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return dbToMentalHealthLog(&row), nil
}

// CreateLifestyleLog upserts the row for (user, date): logging twice on
// the same day replaces that day's entry.
func (r *HealthDataRepositoryImpl) CreateLifestyleLog(ctx context.Context, l *domain.LifestyleLog) error {
	row := &DBLifestyleLog{
		UserID:           l.UserID,
		WaterIntake:      l.WaterIntake,
		ExerciseMinutes:  l.ExerciseMinutes,
		StepsCount:       l.StepsCount,
		CaloriesConsumed: l.CaloriesConsumed,
		CaloriesBurned:   l.CaloriesBurned,
		SmokingCount:     l.SmokingCount,
		AlcoholUnits:     l.AlcoholUnits,
		Notes:            l.Notes,
		RecordedAt:       l.RecordedAt,
	}
	if row.RecordedAt.IsZero() {
		row.RecordedAt = time.Now().Truncate(24 * time.Hour)
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "recorded_at"}},
		UpdateAll: true,
	}).Create(row).Error
	if err != nil {
		return err
	}
	l.ID = row.ID
	l.RecordedAt = row.RecordedAt
	return nil
}

// ListLifestyleLogs implements domain.HealthDataRepository
func (r *HealthDataRepositoryImpl) ListLifestyleLogs(ctx context.Context, userID uint) ([]*domain.LifestyleLog, error) {
	var rows []DBLifestyleLog
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("recorded_at DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.LifestyleLog, 0, len(rows))
	for i := range rows {
		row := rows[i]
		out = append(out, &domain.LifestyleLog{
			ID:               row.ID,
			UserID:           row.UserID,
			WaterIntake:      row.WaterIntake,
			ExerciseMinutes:  row.ExerciseMinutes,
			StepsCount:       row.StepsCount,
			CaloriesConsumed: row.CaloriesConsumed,
			CaloriesBurned:   row.CaloriesBurned,
			SmokingCount:     row.SmokingCount,
			AlcoholUnits:     row.AlcoholUnits,
			Notes:            row.Notes,
			RecordedAt:       row.RecordedAt,
			CreatedAt:        row.CreatedAt,
		})
	}
	return out, nil
}

// CreateInsurancePolicy implements domain.HealthDataRepository
func (r *HealthDataRepositoryImpl) CreateInsurancePolicy(ctx context.Context, p *domain.InsurancePolicy) error {
	row := &DBInsurancePolicy{
		UserID:         p.UserID,
		PolicyType:     p.PolicyType,
		ProviderName:   p.ProviderName,
		PolicyNumber:   p.PolicyNumber,
		CoverageAmount: p.CoverageAmount,
		PremiumAmount:  p.PremiumAmount,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		IsActive:       p.IsActive,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	p.ID = row.ID
	return nil
}

// ListInsurancePolicies implements domain.HealthDataRepository
func (r *HealthDataRepositoryImpl) ListInsurancePolicies(ctx context.Context, userID uint) ([]*domain.InsurancePolicy, error) {
	var rows []DBInsurancePolicy
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.InsurancePolicy, 0, len(rows))
	for i := range rows {
		row := rows[i]
		out = append(out, &domain.InsurancePolicy{
			ID:             row.ID,
			UserID:         row.UserID,
			PolicyType:     row.PolicyType,
			ProviderName:   row.ProviderName,
			PolicyNumber:   row.PolicyNumber,
			CoverageAmount: row.CoverageAmount,
			PremiumAmount:  row.PremiumAmount,
			StartDate:      row.StartDate,
			EndDate:        row.EndDate,
			IsActive:       row.IsActive,
			CreatedAt:      row.CreatedAt,
		})
	}
	return out, nil
}

// CountHealthRecords implements domain.HealthDataRepository
func (r *HealthDataRepositoryImpl) CountHealthRecords(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBHealthRecord{}).Count(&count).Error
	return count, err
}

func healthRecordToDB(rec *domain.HealthRecord) *DBHealthRecord {
	return &DBHealthRecord{
		ID:          rec.ID,
		UserID:      rec.UserID,
		SystolicBP:  rec.SystolicBP,
		DiastolicBP: rec.DiastolicBP,
		BloodSugar:  rec.BloodSugar,
		Weight:      rec.Weight,
		HeartRate:   rec.HeartRate,
		Temperature: rec.Temperature,
		OxygenLevel: rec.OxygenLevel,
		Notes:       rec.Notes,
		RecordedAt:  rec.RecordedAt,
	}
}

func dbToHealthRecord(row *DBHealthRecord) *domain.HealthRecord {
	return &domain.HealthRecord{
		ID:          row.ID,
		UserID:      row.UserID,
		SystolicBP:  row.SystolicBP,
		DiastolicBP: row.DiastolicBP,
		BloodSugar:  row.BloodSugar,
		Weight:      row.Weight,
		HeartRate:   row.HeartRate,
		Temperature: row.Temperature,
		OxygenLevel: row.OxygenLevel,
		Notes:       row.Notes,
		RecordedAt:  row.RecordedAt,
		CreatedAt:   row.CreatedAt,
	}
}

func dbToMentalHealthLog(row *DBMentalHealthLog) *domain.MentalHealthLog {
	return &domain.MentalHealthLog{
		ID:           row.ID,
		UserID:       row.UserID,
		MoodScore:    row.MoodScore,
		StressLevel:  row.StressLevel,
		SleepHours:   row.SleepHours,
		SleepQuality: row.SleepQuality,
		AnxietyLevel: row.AnxietyLevel,
		Notes:        row.Notes,
		RecordedAt:   row.RecordedAt,
		CreatedAt:    row.CreatedAt,
	}
}
