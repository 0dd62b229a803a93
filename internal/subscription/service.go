package subscription

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/beheryahmed1991/subscription-tracker/internal/billing"
)

// Service defines the business operations exposed to handlers. Every
// operation acts on behalf of caller and only ever touches caller's records.
type Service interface {
	List(ctx context.Context, caller uuid.UUID) ([]Subscription, error)
	Create(ctx context.Context, caller uuid.UUID, f Fields) (Subscription, error)
	Get(ctx context.Context, caller, id uuid.UUID) (Subscription, error)
	Update(ctx context.Context, caller, id uuid.UUID, f Fields) (Subscription, error)
	Delete(ctx context.Context, caller, id uuid.UUID) error
	Summary(ctx context.Context, caller uuid.UUID) (billing.Summary, error)
}

type service struct {
	store Store
	log   *slog.Logger
}

// NewService creates a Service backed by the provided store.
func NewService(store Store, log *slog.Logger) Service {
	if log == nil {
		log = slog.Default()
	}
	return &service{store: store, log: log.With("component", "subscription.service")}
}

func (s *service) List(ctx context.Context, caller uuid.UUID) ([]Subscription, error) {
	return s.store.FindAllByOwner(ctx, caller)
}

func (s *service) Create(ctx context.Context, caller uuid.UUID, f Fields) (Subscription, error) {
	sub, err := s.store.Create(ctx, caller, f)
	if err != nil {
		return Subscription{}, err
	}
	s.log.InfoContext(ctx, "subscription created", "id", sub.ID, "owner", caller)
	return sub, nil
}

func (s *service) Get(ctx context.Context, caller, id uuid.UUID) (Subscription, error) {
	return s.authorize(ctx, caller, id)
}

func (s *service) Update(ctx context.Context, caller, id uuid.UUID, f Fields) (Subscription, error) {
	if _, err := s.authorize(ctx, caller, id); err != nil {
		return Subscription{}, err
	}

	sub, err := s.store.Update(ctx, id, f)
	if err != nil {
		return Subscription{}, err
	}
	s.log.InfoContext(ctx, "subscription updated", "id", id, "owner", caller)
	return sub, nil
}

func (s *service) Delete(ctx context.Context, caller, id uuid.UUID) error {
	if _, err := s.authorize(ctx, caller, id); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "subscription deleted", "id", id, "owner", caller)
	return nil
}

func (s *service) Summary(ctx context.Context, caller uuid.UUID) (billing.Summary, error) {
	subs, err := s.List(ctx, caller)
	if err != nil {
		return billing.Summary{}, err
	}
	return billing.Summarize(subs), nil
}

// authorize loads the record and confirms caller owns it. A missing record
// yields ErrNotFound; a foreign one yields ErrForbidden.
func (s *service) authorize(ctx context.Context, caller, id uuid.UUID) (Subscription, error) {
	sub, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Subscription{}, err
	}
	if sub.Owner != caller {
		s.log.WarnContext(ctx, "forbidden subscription access", "id", id, "caller", caller)
		return Subscription{}, ErrForbidden
	}
	return sub, nil
}
