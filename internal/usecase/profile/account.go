package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdugdh24/devconnector-backend/internal/domain"
	"github.com/gdugdh24/devconnector-backend/internal/infrastructure/messaging"
	"go.uber.org/zap"
)

// DeleteAccount removes the actor's profile and then the user record.
//
// The two deletes are independent writes. If the second one fails the profile
// stays deleted while the user remains, and the error is returned as is.
// Missing documents at either step are not errors.
func (uc *ProfileUseCase) DeleteAccount(ctx context.Context, userID string) error {
	if err := uc.profileRepo.DeleteByUserID(ctx, userID); err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	if err := uc.userRepo.Delete(ctx, userID); err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		uc.log.Error("user left without profile after failed delete",
			zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if err := uc.publisher.Publish(messaging.NewEvent(messaging.SubjectAccountDeleted, userID)); err != nil {
		uc.log.Warn("failed to publish event",
			zap.String("subject", messaging.SubjectAccountDeleted), zap.Error(err))
	}
	return nil
}
