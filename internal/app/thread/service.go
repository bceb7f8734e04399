package thread

import (
	"context"
	"errors"
	"fmt"
	"time"

	"messageboard/internal/app/board"
	"messageboard/internal/providers/redis"
	"messageboard/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Service interface {
	CreateThread(ctx context.Context, boardName, text, password string) (*board.Thread, error)
	ListThreads(ctx context.Context, boardName string) ([]*board.ThreadView, error)
	ReportThread(ctx context.Context, boardName, threadID string) error
	DeleteThread(ctx context.Context, boardName, threadID, password string) error
}

type service struct {
	repo     board.Repository
	cache    redis.Cache
	hasher   *utils.PasswordHasher
	eventBus *utils.EventBus
	logger   *zap.SugaredLogger
	limits   Limits
	now      func() time.Time
}

func NewService(
	repo board.Repository,
	cache redis.Cache,
	hasher *utils.PasswordHasher,
	eventBus *utils.EventBus,
	logger *zap.Logger,
	limits Limits,
) Service {
	return &service{
		repo:     repo,
		cache:    cache,
		hasher:   hasher,
		eventBus: eventBus,
		logger:   logger.Sugar(),
		limits:   limits,
		now:      time.Now,
	}
}

func (s *service) CreateThread(ctx context.Context, boardName, text, password string) (*board.Thread, error) {
	if utils.IsBlank(text) {
		return nil, board.ErrEmptyText
	}
	if password == "" {
		return nil, board.ErrEmptyPassword
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash delete password: %w", err)
	}

	now := s.now().UTC()
	thread := &board.Thread{
		ID:             primitive.NewObjectID().Hex(),
		Board:          boardName,
		Text:           text,
		DeletePassword: hash,
		CreatedOn:      now,
		BumpedOn:       now,
	}
	if err := s.repo.CreateThread(ctx, thread); err != nil {
		return nil, fmt.Errorf("failed to create thread: %w", err)
	}

	s.invalidateCache(ctx, boardName)
	s.eventBus.Publish(utils.EventThreadCreated, boardName, board.NewThreadView(thread, 0))
	s.logger.Debugw("Thread created", "board", boardName, "thread_id", thread.ID)

	return thread, nil
}

func (s *service) ListThreads(ctx context.Context, boardName string) ([]*board.ThreadView, error) {
	gen, cacheable := s.cache.Generation(ctx, board.GenerationKey(boardName))
	cacheKey := board.ListCacheKey(boardName, gen)

	var views []*board.ThreadView
	if cacheable && s.cache.GetJSON(ctx, cacheKey, &views) {
		return views, nil
	}

	threads, err := s.repo.ListThreads(ctx, boardName, s.limits.Threads)
	if err != nil {
		return nil, fmt.Errorf("failed to get threads: %w", err)
	}

	views = make([]*board.ThreadView, 0, len(threads))
	for _, t := range threads {
		views = append(views, board.NewThreadView(t, s.limits.RepliesPerView))
	}

	if cacheable {
		s.cache.SetJSON(ctx, cacheKey, views, 0)
	}
	return views, nil
}

func (s *service) ReportThread(ctx context.Context, boardName, threadID string) error {
	if err := s.repo.ReportThread(ctx, boardName, threadID); err != nil {
		if errors.Is(err, board.ErrThreadNotFound) {
			return err
		}
		return fmt.Errorf("failed to report thread: %w", err)
	}

	s.eventBus.Publish(utils.EventThreadReported, boardName, map[string]string{"_id": threadID})
	s.logger.Infow("Thread reported", "board", boardName, "thread_id", threadID)
	return nil
}

// DeleteThread removes the thread and its replies when password matches.
// It returns board.ErrThreadNotFound or board.ErrIncorrectPassword otherwise.
func (s *service) DeleteThread(ctx context.Context, boardName, threadID, password string) error {
	thread, err := s.repo.GetThread(ctx, boardName, threadID)
	if err != nil {
		if errors.Is(err, board.ErrThreadNotFound) {
			return err
		}
		return fmt.Errorf("failed to get thread: %w", err)
	}

	if !s.hasher.Matches(thread.DeletePassword, password) {
		s.logger.Debugw("Thread delete rejected", "board", boardName, "thread_id", threadID)
		return board.ErrIncorrectPassword
	}

	if err := s.repo.DeleteThread(ctx, boardName, threadID); err != nil {
		if errors.Is(err, board.ErrThreadNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete thread: %w", err)
	}

	s.invalidateCache(ctx, boardName)
	s.eventBus.Publish(utils.EventThreadDeleted, boardName, map[string]string{"_id": threadID})
	s.logger.Infow("Thread deleted", "board", boardName, "thread_id", threadID)
	return nil
}

// invalidateCache retires every cached view of the board. The generation bump
// must follow the repository write: a reader that fetched data before the
// write cached it under the old generation, which no later reader asks for.
func (s *service) invalidateCache(ctx context.Context, boardName string) {
	s.cache.BumpGeneration(ctx, board.GenerationKey(boardName))
	if n := s.cache.DeletePattern(ctx, board.CachePattern(boardName)); n > 0 {
		s.logger.Debugw("Board cache invalidated", "board", boardName, "deleted_keys", n)
	}
}
