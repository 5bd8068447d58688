package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/soumyachk101/HealthTrack-Server/domain"
)

// ActivityLogRepositoryImpl implements domain.ActivityLogRepository
// using GORM.
type ActivityLogRepositoryImpl struct {
	db *gorm.DB
}

// DBActivityLog is the database model for ActivityLog
type DBActivityLog struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	Action    string `gorm:"size:50"`
	Details   string
	IPAddress string    `gorm:"size:45"`
	CreatedAt time.Time `gorm:"index"`
}

func (DBActivityLog) TableName() string { return "activity_logs" }

// NewActivityLogRepository creates a new activity log repository
func NewActivityLogRepository(db *gorm.DB) domain.ActivityLogRepository {
	return &ActivityLogRepositoryImpl{db: db}
}

// Record implements domain.ActivityLogRepository
func (r *ActivityLogRepositoryImpl) Record(ctx context.Context, entry *domain.ActivityLog) error {
	row := &DBActivityLog{
		UserID:    entry.UserID,
		Action:    string(entry.Action),
		Details:   entry.Details,
		IPAddress: entry.IPAddress,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	entry.ID = row.ID
	return nil
}

// ListByUser implements domain.ActivityLogRepository
func (r *ActivityLogRepositoryImpl) ListByUser(ctx context.Context, userID uint, limit int) ([]*domain.ActivityLog, error) {
	var rows []DBActivityLog
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return dbToActivityLogs(rows), nil
}

// ListRecent implements domain.ActivityLogRepository
func (r *ActivityLogRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]*domain.ActivityLog, error) {
	var rows []DBActivityLog
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return dbToActivityLogs(rows), nil
}

func dbToActivityLogs(rows []DBActivityLog) []*domain.ActivityLog {
	out := make([]*domain.ActivityLog, 0, len(rows))
	for i := range rows {
		row := rows[i]
		out = append(out, &domain.ActivityLog{
			ID:        row.ID,
			UserID:    row.UserID,
			Action:    domain.ActivityAction(row.Action),
			Details:   row.Details,
			IPAddress: row.IPAddress,
			CreatedAt: row.CreatedAt,
		})
	}
	return out
}
