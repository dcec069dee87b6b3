package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/marketplace-auth/internal/domain"
	"github.com/spec-kit/marketplace-auth/internal/events"
	"github.com/spec-kit/marketplace-auth/internal/repository"
)

// ProfileService owns the one credential-record mutation that happens after
// creation: marking the profile complete.
type ProfileService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewProfileService builds the service.
func NewProfileService(users repository.UserRepository, dispatcher events.Dispatcher) *ProfileService {
	return &ProfileService{users: users, dispatcher: dispatcher}
}

// CompleteProfile flips profileCompleted for the user. Idempotent; completing
// an already-complete profile is a no-op.
func (s *ProfileService) CompleteProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.ProfileCompleted {
		return user, nil
	}

	user.ProfileCompleted = true
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventProfileCompleted,
			UserID:    user.ID,
			Timestamp: time.Now(),
			Payload:   events.ProfileCompletedPayload{Role: user.Role},
		})
	}

	return user, nil
}
