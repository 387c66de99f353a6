package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/refund-service/internal/domain"
	"github.com/spec-kit/refund-service/internal/repository"
)

type memoryUsers struct {
	mu    sync.Mutex
	byID  map[string]*domain.User
	seq   int
	names map[string]string
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: map[string]*domain.User{}, names: map[string]string{}}
}

func (m *memoryUsers) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	user.ID = fmt.Sprintf("user-%d", m.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	m.byID[user.ID] = &stored
	m.names[user.ID] = user.Name
	return nil
}

func (m *memoryUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memoryRefunds struct {
	mu      sync.Mutex
	refunds []domain.Refund
	users   *memoryUsers
	err     error
}

func (m *memoryRefunds) Create(_ context.Context, refund *domain.Refund) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	refund.ID = fmt.Sprintf("refund-%d", len(m.refunds)+1)
	refund.CreatedAt = time.Now().Add(time.Duration(len(m.refunds)) * time.Second)
	m.refunds = append(m.refunds, *refund)
	return nil
}

func (m *memoryRefunds) GetByID(_ context.Context, id string) (*domain.Refund, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.refunds {
		if r.ID == id {
			copied := r
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryRefunds) List(_ context.Context, filter domain.RefundFilter) ([]domain.Refund, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []domain.Refund
	for _, r := range m.refunds {
		owner := ""
		if m.users != nil {
			owner = m.users.names[r.UserID]
		}
		if strings.Contains(strings.ToLower(owner), strings.ToLower(filter.Name)) {
			matched = append(matched, r)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	total := len(matched)
	if filter.Offset >= total {
		return []domain.Refund{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}
	return matched[filter.Offset:end], total, nil
}
