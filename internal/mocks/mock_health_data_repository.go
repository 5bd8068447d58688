package mocks

import (
	"context"

	"github.com/soumyachk101/HealthTrack-Server/domain"
)

// MockHealthDataRepository implements domain.HealthDataRepository for testing
type MockHealthDataRepository struct {
	CreateHealthRecordFunc    func(ctx context.Context, rec *domain.HealthRecord) error
	ListHealthRecordsFunc     func(ctx context.Context, userID uint) ([]*domain.HealthRecord, error)
	LatestHealthRecordFunc    func(ctx context.Context, userID uint) (*domain.HealthRecord, error)
	CreateMedicineFunc        func(ctx context.Context, med *domain.Medicine) error
	ListMedicinesFunc         func(ctx context.Context, userID uint) ([]*domain.Medicine, error)
	CountActiveMedicinesFunc  func(ctx context.Context, userID uint) (int64, error)
	CreatePrescriptionFunc    func(ctx context.Context, p *domain.Prescription) error
	ListPrescriptionsFunc     func(ctx context.Context, userID uint) ([]*domain.Prescription, error)
	CreateMentalHealthLogFunc func(ctx context.Context, m *domain.MentalHealthLog) error
	ListMentalHealthLogsFunc  func(ctx context.Context, userID uint) ([]*domain.MentalHealthLog, error)
	LatestMentalHealthLogFunc func(ctx context.Context, userID uint) (*domain.MentalHealthLog, error)
	CreateLifestyleLogFunc    func(ctx context.Context, l *domain.LifestyleLog) error
	ListLifestyleLogsFunc     func(ctx context.Context, userID uint) ([]*domain.LifestyleLog, error)
	CreateInsurancePolicyFunc func(ctx context.Context, p *domain.InsurancePolicy) error
	ListInsurancePoliciesFunc func(ctx context.Context, userID uint) ([]*domain.InsurancePolicy, error)
	CountHealthRecordsFunc    func(ctx context.Context) (int64, error)
}

// NewMockHealthDataRepository creates a new MockHealthDataRepository
func NewMockHealthDataRepository() *MockHealthDataRepository {
	return &MockHealthDataRepository{}
}

func (m *MockHealthDataRepository) CreateHealthRecord(ctx context.Context, rec *domain.HealthRecord) error {
	if m.CreateHealthRecordFunc != nil {
		return m.CreateHealthRecordFunc(ctx, rec)
	}
	return nil
}

func (m *MockHealthDataRepository) ListHealthRecords(ctx context.Context, userID uint) ([]*domain.HealthRecord, error) {
	if m.ListHealthRecordsFunc != nil {
		return m.ListHealthRecordsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockHealthDataRepository) LatestHealthRecord(ctx context.Context, userID uint) (*domain.HealthRecord, error) {
	if m.LatestHealthRecordFunc != nil {
		return m.LatestHealthRecordFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockHealthDataRepository) CreateMedicine(ctx context.Context, med *domain.Medicine) error {
	if m.CreateMedicineFunc != nil {
		return m.CreateMedicineFunc(ctx, med)
	}
	return nil
}

func (m *MockHealthDataRepository) ListMedicines(ctx context.Context, userID uint) ([]*domain.Medicine, error) {
	if m.ListMedicinesFunc != nil {
		return m.ListMedicinesFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockHealthDataRepository) CountActiveMedicines(ctx context.Context, userID uint) (int64, error) {
	if m.CountActiveMedicinesFunc != nil {
		return m.CountActiveMedicinesFunc(ctx, userID)
	}
	return 0, nil
}

func (m *MockHealthDataRepository) CreatePrescription(ctx context.Context, p *domain.Prescription) error {
	if m.CreatePrescriptionFunc != nil {
		return m.CreatePrescriptionFunc(ctx, p)
	}
	return nil
}

func (m *MockHealthDataRepository) ListPrescriptions(ctx context.Context, userID uint) ([]*domain.Prescription, error) {
	if m.ListPrescriptionsFunc != nil {
		return m.ListPrescriptionsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockHealthDataRepository) CreateMentalHealthLog(ctx context.Context, mh *domain.MentalHealthLog) error {
	if m.CreateMentalHealthLogFunc != nil {
		return m.CreateMentalHealthLogFunc(ctx, mh)
	}
	return nil
}

func (m *MockHealthDataRepository) ListMentalHealthLogs(ctx context.Context, userID uint) ([]*domain.MentalHealthLog, error) {
	if m.ListMentalHealthLogsFunc != nil {
		return m.ListMentalHealthLogsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockHealthDataRepository) LatestMentalHealthLog(ctx context.Context, userID uint) (*domain.MentalHealthLog, error) {
	if m.LatestMentalHealthLogFunc != nil {
		return m.LatestMentalHealthLogFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockHealthDataRepository) CreateLifestyleLog(ctx context.Context, l *domain.LifestyleLog) error {
	if m.CreateLifestyleLogFunc != nil {
		return m.CreateLifestyleLogFunc(ctx, l)
	}
	return nil
}

func (m *MockHealthDataRepository) ListLifestyleLogs(ctx context.Context, userID uint) ([]*domain.LifestyleLog, error) {
	if m.ListLifestyleLogsFunc != nil {
		return m.ListLifestyleLogsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockHealthDataRepository) CreateInsurancePolicy(ctx context.Context, p *domain.InsurancePolicy) error {
	if m.CreateInsurancePolicyFunc != nil {
		return m.CreateInsurancePolicyFunc(ctx, p)
	}
	return nil
}

func (m *MockHealthDataRepository) ListInsurancePolicies(ctx context.Context, userID uint) ([]*domain.InsurancePolicy, error) {
	if m.ListInsurancePoliciesFunc != nil {
		return m.ListInsurancePoliciesFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockHealthDataRepository) CountHealthRecords(ctx context.Context) (int64, error) {
	if m.CountHealthRecordsFunc != nil {
		return m.CountHealthRecordsFunc(ctx)
	}
	return 0, nil
}

// Compile-time interface compliance verification
var _ domain.HealthDataRepository = (*MockHealthDataRepository)(nil)
