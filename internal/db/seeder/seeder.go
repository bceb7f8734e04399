package seeder

import (
	"context"
	"fmt"
	"time"

	"messageboard/internal/app/board"
	"messageboard/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Seeder posts a welcome thread on each configured board that has no threads yet.
type Seeder struct {
	repo   board.Repository
	hasher *utils.PasswordHasher
	logger *zap.Logger
	now    func() time.Time
}

func NewSeeder(repo board.Repository, hasher *utils.PasswordHasher, logger *zap.Logger) *Seeder {
	return &Seeder{
		repo:   repo,
		hasher: hasher,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Seeder) Seed(ctx context.Context, boards []string) error {
	if len(boards) == 0 {
		return nil
	}
	s.logger.Info("Running board seeders...")

	seeded := 0
	for _, name := range boards {
		ok, err := s.seedBoard(ctx, name)
		if err != nil {
			return err
		}
		if ok {
			seeded++
		}
	}

	s.logger.Info("Board seeders completed", zap.Int("seeded", seeded), zap.Int("boards", len(boards)))
	return nil
}

func (s *Seeder) seedBoard(ctx context.Context, name string) (bool, error) {
	existing, err := s.repo.ListThreads(ctx, name, 1)
	if err != nil {
		return false, fmt.Errorf("check board %s: %w", name, err)
	}
	if len(existing) > 0 {
		s.logger.Debug("Board already has threads, skipping seed", zap.String("board", name))
		return false, nil
	}

	// nobody knows this password, so the welcome thread cannot be deleted
	hash, err := s.hasher.Hash(uuid.NewString())
	if err != nil {
		return false, err
	}
	now := s.now().UTC()
	err = s.repo.CreateThread(ctx, &board.Thread{
		ID:             primitive.NewObjectID().Hex(),
		Board:          name,
		Text:           "Welcome to /" + name + "/",
		DeletePassword: hash,
		CreatedOn:      now,
		BumpedOn:       now,
	})
	if err != nil {
		return false, fmt.Errorf("seed board %s: %w", name, err)
	}
	return true, nil
}
