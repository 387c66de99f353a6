package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/refund-service/internal/auth"
	"github.com/spec-kit/refund-service/internal/domain"
	"github.com/spec-kit/refund-service/internal/events"
	"github.com/spec-kit/refund-service/internal/repository"
	apperrors "github.com/spec-kit/refund-service/pkg/util"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// RefundCreateInput carries validated refund fields. The owner comes from the identity, never from here.
type RefundCreateInput struct {
	Name     string
	Category domain.RefundCategory
	Amount   float64
	Filename string
}

// RefundPage is one page of a refund listing.
type RefundPage struct {
	Refunds      []domain.Refund
	Page         int
	PerPage      int
	TotalRecords int
	TotalPages   int
}

// RefundService handles refund submission and review.
type RefundService struct {
	refunds    repository.RefundRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewRefundService builds the service.
func NewRefundService(refunds repository.RefundRepository, dispatcher events.Dispatcher, logger *zap.Logger) *RefundService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RefundService{refunds: refunds, dispatcher: dispatcher, logger: logger}
}

// Create stores a refund owned by userID.
func (s *RefundService) Create(ctx context.Context, userID string, input RefundCreateInput) (*domain.Refund, error) {
	refund := &domain.Refund{
		Name:     input.Name,
		Category: input.Category,
		Amount:   input.Amount,
		Filename: input.Filename,
		UserID:   userID,
	}
	if err := s.refunds.Create(ctx, refund); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		event := events.NewEvent(events.EventRefundCreated, refund.ID, userID, events.RefundCreatedPayload{
			Name:     refund.Name,
			Category: refund.Category,
			Amount:   refund.Amount,
			Filename: refund.Filename,
		})
		if err := s.dispatcher.Publish(ctx, event); err != nil {
			s.logger.Warn("refund event handlers failed", zap.String("refund_id", refund.ID), zap.Error(err))
		}
	}
	return refund, nil
}

// List returns a page of refunds whose owner's name contains name.
func (s *RefundService) List(ctx context.Context, name string, page, perPage int) (*RefundPage, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	refunds, total, err := s.refunds.List(ctx, domain.RefundFilter{
		Name:   name,
		Offset: (page - 1) * perPage,
		Limit:  perPage,
	})
	if err != nil {
		return nil, err
	}

	return &RefundPage{
		Refunds:      refunds,
		Page:         page,
		PerPage:      perPage,
		TotalRecords: total,
		TotalPages:   (total + perPage - 1) / perPage,
	}, nil
}

// Get returns one refund. Employees only see their own; others look absent.
func (s *RefundService) Get(ctx context.Context, identity auth.Identity, id string) (*domain.Refund, error) {
	refund, err := s.refunds.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Solicitação")
		}
		return nil, err
	}
	if identity.Role == domain.RoleEmployee && refund.UserID != identity.SubjectID {
		return nil, apperrors.NewNotFound("Solicitação")
	}
	return refund, nil
}
