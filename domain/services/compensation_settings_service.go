package services

import (
	"context"
	"fmt"

	"beatledger/domain/entities"
	"beatledger/domain/interfaces"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// compensationSettingsService implements the CompensationSettingsService interface
type compensationSettingsService struct {
	settingsRepo interfaces.CompensationSettingsRepository
	authorizer   interfaces.Authorizer
}

// NewCompensationSettingsService creates a new compensation settings service
func NewCompensationSettingsService(
	settingsRepo interfaces.CompensationSettingsRepository,
	authorizer interfaces.Authorizer,
) interfaces.CompensationSettingsService {
	return &compensationSettingsService{
		settingsRepo: settingsRepo,
		authorizer:   authorizer,
	}
}

// Get returns the current settings, or defaults when nothing has been written
func (s *compensationSettingsService) Get(ctx context.Context) (*entities.CompensationSettings, error) {
	settings, err := s.settingsRepo.GetCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get compensation settings: %w", err)
	}
	if settings == nil {
		return entities.DefaultCompensationSettings(), nil
	}
	return settings, nil
}

// Update validates and writes a new settings version. Validation runs before
// any write, so a rejected update leaves the prior settings fully in effect.
// Changes only apply to distributions executed after the write.
func (s *compensationSettingsService) Update(ctx context.Context, actorID uuid.UUID, settings *entities.CompensationSettings) error {
	allowed, err := s.authorizer.CanManageCompensation(ctx, actorID)
	if err != nil {
		return fmt.Errorf("failed to check authorization for actor %s: %w", actorID, err)
	}
	if !allowed {
		return fmt.Errorf("%w: actor %s cannot manage compensation settings",
			entities.ErrUnauthorized, actorID)
	}

	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.settingsRepo.Create(ctx, settings); err != nil {
		return fmt.Errorf("failed to write compensation settings: %w", err)
	}

	log.WithField("actor_id", actorID).Info("compensation settings updated")
	return nil
}
