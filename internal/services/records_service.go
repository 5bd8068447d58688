package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/soumyachk101/HealthTrack-Server/domain"
)

// RecordsServiceImpl implements domain.RecordsService
type RecordsServiceImpl struct {
	healthRepo   domain.HealthDataRepository
	userRepo     domain.UserRepository
	activityRepo domain.ActivityLogRepository
}

// NewRecordsService creates a new records service
func NewRecordsService(
	healthRepo domain.HealthDataRepository,
	userRepo domain.UserRepository,
	activityRepo domain.ActivityLogRepository,
) domain.RecordsService {
	return &RecordsServiceImpl{
		healthRepo:   healthRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
	}
}

// AddHealthRecord implements domain.RecordsService
func (s *RecordsServiceImpl) AddHealthRecord(ctx context.Context, rec *domain.HealthRecord) error {
	if err := s.healthRepo.CreateHealthRecord(ctx, rec); err != nil {
		return fmt.Errorf("failed to create health record: %w", err)
	}
	s.logActivity(ctx, rec.UserID, domain.ActionRecordAdded, "Health record added")
	return nil
}

// ListHealthRecords implements domain.RecordsService
func (s *RecordsServiceImpl) ListHealthRecords(ctx context.Context, userID uint) ([]*domain.HealthRecord, error) {
	return s.healthRepo.ListHealthRecords(ctx, userID)
}

// AddMedicine implements domain.RecordsService
func (s *RecordsServiceImpl) AddMedicine(ctx context.Context, med *domain.Medicine) error {
	if err := s.healthRepo.CreateMedicine(ctx, med); err != nil {
		return fmt.Errorf("failed to create medicine: %w", err)
	}
	s.logActivity(ctx, med.UserID, domain.ActionMedicineAdded, fmt.Sprintf("Medicine added: %s", med.Name))
	return nil
}

// ListMedicines implements domain.RecordsService
func (s *RecordsServiceImpl) ListMedicines(ctx context.Context, userID uint) ([]*domain.Medicine, error) {
	return s.healthRepo.ListMedicines(ctx, userID)
}

// AddPrescription implements domain.RecordsService
func (s *RecordsServiceImpl) AddPrescription(ctx context.Context, p *domain.Prescription) error {
	if err := s.healthRepo.CreatePrescription(ctx, p); err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	s.logActivity(ctx, p.UserID, domain.ActionPrescriptionAdded, fmt.Sprintf("Prescription added by %s", p.DoctorName))
	return nil
}

// ListPrescriptions implements domain.RecordsService
func (s *RecordsServiceImpl) ListPrescriptions(ctx context.Context, userID uint) ([]*domain.Prescription, error) {
	return s.healthRepo.ListPrescriptions(ctx, userID)
}

// AddMentalHealthLog implements domain.RecordsService
func (s *RecordsServiceImpl) AddMentalHealthLog(ctx context.Context, m *domain.MentalHealthLog) error {
	if err := s.healthRepo.CreateMentalHealthLog(ctx, m); err != nil {
		return fmt.Errorf("failed to create mental health log: %w", err)
	}
	return nil
}

// ListMentalHealthLogs implements domain.RecordsService
func (s *RecordsServiceImpl) ListMentalHealthLogs(ctx context.Context, userID uint) ([]*domain.MentalHealthLog, error) {
	return s.healthRepo.ListMentalHealthLogs(ctx, userID)
}

// AddLifestyleLog implements domain.RecordsService
func (s *RecordsServiceImpl) AddLifestyleLog(ctx context.Context, l *domain.LifestyleLog) error {
	if err := s.healthRepo.CreateLifestyleLog(ctx, l); err != nil {
		return fmt.Errorf("failed to create lifestyle log: %w", err)
	}
	return nil
}

// ListLifestyleLogs implements domain.RecordsService
func (s *RecordsServiceImpl) ListLifestyleLogs(ctx context.Context, userID uint) ([]*domain.LifestyleLog, error) {
	return s.healthRepo.ListLifestyleLogs(ctx, userID)
}

// AddInsurancePolicy implements domain.RecordsService
func (s *RecordsServiceImpl) AddInsurancePolicy(ctx context.Context, p *domain.InsurancePolicy) error {
	if err := s.healthRepo.CreateInsurancePolicy(ctx, p); err != nil {
		return fmt.Errorf("failed to create insurance policy: %w", err)
	}
	return nil
}

// ListInsurancePolicies implements domain.RecordsService
func (s *RecordsServiceImpl) ListInsurancePolicies(ctx context.Context, userID uint) ([]*domain.InsurancePolicy, error) {
	return s.healthRepo.ListInsurancePolicies(ctx, userID)
}

// Dashboard aggregates the user's latest data for the dashboard view.
func (s *RecordsServiceImpl) Dashboard(ctx context.Context, userID uint) (*domain.DashboardSummary, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	latest, err := s.healthRepo.LatestHealthRecord(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest record: %w", err)
	}

	activeMeds, err := s.healthRepo.CountActiveMedicines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count medicines: %w", err)
	}

	latestMental, err := s.healthRepo.LatestMentalHealthLog(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mental health log: %w", err)
	}

	activities, err := s.activityRepo.ListByUser(ctx, userID, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}

	return &domain.DashboardSummary{
		User:             user,
		LatestRecord:     latest,
		ActiveMedicines:  activeMeds,
		LatestMental:     latestMental,
		RecentActivities: activities,
	}, nil
}

func (s *RecordsServiceImpl) logActivity(ctx context.Context, userID uint, action domain.ActivityAction, details string) {
	entry := &domain.ActivityLog{UserID: userID, Action: action, Details: details}
	if err := s.activityRepo.Record(ctx, entry); err != nil {
		log.Warn().Err(err).Uint("user_id", userID).Msg("records: failed to record activity")
	}
}
