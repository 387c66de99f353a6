package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/refund-service/internal/auth"
	"github.com/spec-kit/refund-service/internal/domain"
	"github.com/spec-kit/refund-service/internal/events"
	apperrors "github.com/spec-kit/refund-service/pkg/util"
)

func validInput(name string) RefundCreateInput {
	return RefundCreateInput{
		Name:     name,
		Category: domain.CategoryFood,
		Amount:   42.5,
		Filename: "0123456789abcdef0123-recibo.png",
	}
}

func TestCreateOwnsRefundAndPublishes(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var got []events.Event
	dispatcher.Subscribe(events.EventRefundCreated, func(_ context.Context, e events.Event) error {
		got = append(got, e)
		return nil
	})
	svc := NewRefundService(&memoryRefunds{}, dispatcher, nil)

	refund, err := svc.Create(context.Background(), "user-7", validInput("Almoço"))
	require.NoError(t, err)
	assert.Equal(t, "user-7", refund.UserID)
	assert.NotEmpty(t, refund.ID)

	require.Len(t, got, 1)
	assert.Equal(t, refund.ID, got[0].ResourceID)
	assert.Equal(t, "user-7", got[0].ActorID)
}

func TestCreatePropagatesRepositoryFailure(t *testing.T) {
	boom := errors.New("db down")
	svc := NewRefundService(&memoryRefunds{err: boom}, nil, nil)

	_, err := svc.Create(context.Background(), "user-7", validInput("Almoço"))
	assert.ErrorIs(t, err, boom)
}

func TestListPaginates(t *testing.T) {
	users := newMemoryUsers()
	require.NoError(t, users.Create(context.Background(), &domain.User{Name: "Ana"}))
	require.NoError(t, users.Create(context.Background(), &domain.User{Name: "Bruno"}))
	refunds := &memoryRefunds{users: users}
	svc := NewRefundService(refunds, nil, nil)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), "user-1", validInput("Táxi"))
		require.NoError(t, err)
	}
	_, err := svc.Create(context.Background(), "user-2", validInput("Hotel"))
	require.NoError(t, err)

	page, err := svc.List(context.Background(), "", 1, 3)
	require.NoError(t, err)
	assert.Len(t, page.Refunds, 3)
	assert.Equal(t, 4, page.TotalRecords)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "refund-4", page.Refunds[0].ID)

	page, err = svc.List(context.Background(), "ana", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, defaultPerPage, page.PerPage)
	assert.Equal(t, 3, page.TotalRecords)

	page, err = svc.List(context.Background(), "", 5, 1000)
	require.NoError(t, err)
	assert.Equal(t, maxPerPage, page.PerPage)
	assert.Empty(t, page.Refunds)
}

func TestGetHidesOtherEmployeesRefunds(t *testing.T) {
	svc := NewRefundService(&memoryRefunds{}, nil, nil)
	refund, err := svc.Create(context.Background(), "owner", validInput("Almoço"))
	require.NoError(t, err)

	owner := auth.Identity{SubjectID: "owner", Role: domain.RoleEmployee}
	stranger := auth.Identity{SubjectID: "stranger", Role: domain.RoleEmployee}
	manager := auth.Identity{SubjectID: "boss", Role: domain.RoleManager}

	got, err := svc.Get(context.Background(), owner, refund.ID)
	require.NoError(t, err)
	assert.Equal(t, refund.ID, got.ID)

	_, err = svc.Get(context.Background(), stranger, refund.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	_, err = svc.Get(context.Background(), manager, refund.ID)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), manager, "missing")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}
