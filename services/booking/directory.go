package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"panditseva/database/repository"
	panditRepo "panditseva/database/repository/pandit"
	"panditseva/models"

	"go.uber.org/zap"
)

// Directory is the read side of the pandit store. Every profile leaving it
// has passed PanditProfile.Validate against the ritual catalog.
type Directory struct {
	pandits  panditRepo.PanditRepository
	currency string
	logger   *zap.Logger
}

func NewDirectory(pandits panditRepo.PanditRepository, currency string, logger *zap.Logger) *Directory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Directory{pandits: pandits, currency: currency, logger: logger}
}

// ListAvailablePandits returns the valid profiles matching filter.
func (d *Directory) ListAvailablePandits(ctx context.Context, filter models.PanditFilter) ([]models.PanditProfile, error) {
	all, err := d.pandits.List(ctx, filter)
	if err != nil {
		d.logger.Error("Directory query failed", zap.Any("filter", filter), zap.Error(err))
		return nil, fmt.Errorf("failed to list pandits: %w", err)
	}
	out := make([]models.PanditProfile, 0, len(all))
	for i := range all {
		if err := all[i].Validate(KnownRitual); err != nil {
			d.logger.Warn("Dropping invalid pandit profile", zap.String("panditID", all[i].ID), zap.Error(err))
			continue
		}
		out = append(out, all[i])
	}
	return out, nil
}

// GetPandit returns ErrPanditNotFound for unknown ids and for profiles that
// fail validation.
func (d *Directory) GetPandit(ctx context.Context, id string) (*models.PanditProfile, error) {
	p, err := d.pandits.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPanditNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load pandit %s: %w", id, err)
	}
	if err := p.Validate(KnownRitual); err != nil {
		d.logger.Warn("Refusing invalid pandit profile", zap.String("panditID", id), zap.Error(err))
		return nil, ErrPanditNotFound
	}
	return p, nil
}

func (d *Directory) Offerings(ctx context.Context, id string) ([]models.RitualOffering, error) {
	p, err := d.GetPandit(ctx, id)
	if err != nil {
		return nil, err
	}
	return Offerings(p, d.currency), nil
}

func (d *Directory) Slots(ctx context.Context, id, date string) ([]string, error) {
	p, err := d.GetPandit(ctx, id)
	if err != nil {
		return nil, err
	}
	return ResolveSlots(p, date), nil
}

func (d *Directory) Dates(ctx context.Context, id string, from time.Time, days int) ([]string, error) {
	p, err := d.GetPandit(ctx, id)
	if err != nil {
		return nil, err
	}
	return AvailableDates(p, from, days), nil
}
