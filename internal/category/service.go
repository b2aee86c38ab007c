package category

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

var ErrUnknownKind = errors.New("unknown transaction kind")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	LoadCategories(ctx context.Context) (Lists, error)
	SaveCategories(ctx context.Context, lists Lists) error
}

// Service guards a Registry and persists it after every change.
// Removing a category leaves transactions that reference it untouched.
type Service struct {
	repo Repository

	mu       sync.RWMutex
	registry *Registry
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, registry: NewRegistry(Defaults())}
}

func (s *Service) Load(ctx context.Context) error {
	lists, err := s.repo.LoadCategories(ctx)
	if err != nil {
		return fmt.Errorf("loading categories: %w", err)
	}

	s.mu.Lock()
	s.registry = NewRegistry(lists)
	s.mu.Unlock()

	return nil
}

func (s *Service) Add(ctx context.Context, kind transaction.Type, name string) error {
	return s.mutate(ctx, kind, func(r *Registry) bool { return r.Add(kind, name) })
}

func (s *Service) Remove(ctx context.Context, kind transaction.Type, name string) error {
	return s.mutate(ctx, kind, func(r *Registry) bool { return r.Remove(kind, name) })
}

func (s *Service) List(kind transaction.Type) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.registry.List(kind)
}

func (s *Service) mutate(ctx context.Context, kind transaction.Type, apply func(*Registry) bool) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := NewRegistry(s.registry.Lists())
	if !apply(next) {
		return nil
	}

	if err := s.repo.SaveCategories(ctx, next.Lists()); err != nil {
		return fmt.Errorf("saving categories: %w", err)
	}

	s.registry = next

	return nil
}
