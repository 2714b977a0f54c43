package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dlfindex/internal/db"
	"github.com/kailas-cloud/dlfindex/internal/domain"
	domcore "github.com/kailas-cloud/dlfindex/internal/domain/core"
)

// Service creates and resolves named search cores.
type Service struct {
	repo    Repository
	newName func() string
	logger  *zap.Logger
}

// New creates a core manager.
func New(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:    repo,
		newName: func() string { return domcore.GeneratedNamePrefix + uuid.NewString() },
		logger:  logger,
	}
}

// GetInstance resolves name. A missing core yields a handle with an empty Core and no error.
func (s *Service) GetInstance(ctx context.Context, name string) (domcore.Handle, error) {
	h, err := s.repo.Resolve(ctx, name)
	if err != nil {
		return domcore.Handle{}, fmt.Errorf("%w: resolve core %s: %w", domain.ErrSearchEngineUnavailable, name, err)
	}
	return h, nil
}

// CreateCore creates a core and returns its name. An empty name gets a generated one.
// Every failure is a core creation error; an existing name also matches domain.ErrAlreadyExists.
func (s *Service) CreateCore(ctx context.Context, name string) (string, error) {
	if name == "" {
		name = s.newName()
	}

	if err := s.repo.Create(ctx, name); err != nil {
		if errors.Is(err, db.ErrUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrSearchEngineUnavailable, err)
		}
		s.logger.Warn("core creation failed", zap.String("core", name), zap.Error(err))
		return "", domain.NewCoreCreationError(name, err)
	}

	s.logger.Info("core created", zap.String("core", name))
	return name, nil
}

// List returns all cores ordered by creation time.
func (s *Service) List(ctx context.Context) ([]domcore.Info, error) {
	cores, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list cores: %w", domain.ErrSearchEngineUnavailable, err)
	}
	return cores, nil
}
