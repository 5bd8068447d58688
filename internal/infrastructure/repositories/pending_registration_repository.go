package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/soumyachk101/HealthTrack-Server/domain"
)

// PendingRegistrationRepositoryImpl implements
// domain.PendingRegistrationRepository using Redis. Keying by email
// means a second registration attempt for the same address overwrites
// the staged record; the TTL bounds abandonment.
type PendingRegistrationRepositoryImpl struct {
	client *redis.Client
	prefix string
}

// NewPendingRegistrationRepository creates a new staging repository
func NewPendingRegistrationRepository(client *redis.Client) domain.PendingRegistrationRepository {
	return &PendingRegistrationRepositoryImpl{
		client: client,
		prefix: "pendingreg:",
	}
}

// Put implements domain.PendingRegistrationRepository
func (r *PendingRegistrationRepositoryImpl) Put(ctx context.Context, reg *domain.PendingRegistration, ttl time.Duration) error {
	data, err := json.Marshal(reg)
	if err != nil {
		return fmt.Errorf("failed to marshal pending registration: %w", err)
	}
	return r.client.Set(ctx, r.prefix+reg.Email, data, ttl).Err()
}

// Get implements domain.PendingRegistrationRepository
func (r *PendingRegistrationRepositoryImpl) Get(ctx context.Context, email string) (*domain.PendingRegistration, error) {
	data, err := r.client.Get(ctx, r.prefix+email).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionExpired
		}
		return nil, err
	}

	var reg domain.PendingRegistration
	if err := json.Unmarshal([]byte(data), &reg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending registration: %w", err)
	}
	return &reg, nil
}

// Delete implements domain.PendingRegistrationRepository
func (r *PendingRegistrationRepositoryImpl) Delete(ctx context.Context, email string) error {
	return r.client.Del(ctx, r.prefix+email).Err()
}
