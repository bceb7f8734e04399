package reply

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
	CreateReply(ctx context.Context, boardName, threadID, text, password string) (*board.Reply, error)
	GetThread(ctx context.Context, boardName, threadID string) (*board.ThreadView, error)
	ReportReply(ctx context.Context, boardName, threadID, replyID string) error
	DeleteReply(ctx context.Context, boardName, threadID, replyID, password string) error
}

type service struct {
	repo     board.Repository
	cache    redis.Cache
	hasher   *utils.PasswordHasher
	eventBus *utils.EventBus
	logger   *zap.SugaredLogger
	now      func() time.Time
}

func NewService(
	repo board.Repository,
	cache redis.Cache,
	hasher *utils.PasswordHasher,
	eventBus *utils.EventBus,
	logger *zap.Logger,
) Service {
	return &service{
		repo:     repo,
		cache:    cache,
		hasher:   hasher,
		eventBus: eventBus,
		logger:   logger.Sugar(),
		now:      time.Now,
	}
}

// CreateReply appends a reply to the thread and bumps the thread to the
// reply's creation time.
func (s *service) CreateReply(ctx context.Context, boardName, threadID, text, password string) (*board.Reply, error) {
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

	r := &board.Reply{
		ID:             primitive.NewObjectID().Hex(),
		ThreadID:       threadID,
		Text:           text,
		DeletePassword: hash,
		CreatedOn:      s.now().UTC(),
	}
	if err := s.repo.AddReply(ctx, boardName, r); err != nil {
		if errors.Is(err, board.ErrThreadNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create reply: %w", err)
	}

	s.invalidateCache(ctx, boardName)
	s.eventBus.Publish(utils.EventReplyCreated, boardName, map[string]interface{}{
		"thread_id": threadID,
		"reply": &board.ReplyView{
			ID:        r.ID,
			Text:      r.Text,
			CreatedOn: r.CreatedOn,
		},
	})
	s.logger.Debugw("Reply created", "board", boardName, "thread_id", threadID, "reply_id", r.ID)

	return r, nil
}

func (s *service) GetThread(ctx context.Context, boardName, threadID string) (*board.ThreadView, error) {
	gen, cacheable := s.cache.Generation(ctx, board.GenerationKey(boardName))
	cacheKey := board.ThreadCacheKey(boardName, gen, threadID)

	var view board.ThreadView
	if cacheable && s.cache.GetJSON(ctx, cacheKey, &view) {
		return &view, nil
	}

	thread, err := s.repo.GetThread(ctx, boardName, threadID)
	if err != nil {
		if errors.Is(err, board.ErrThreadNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get thread: %w", err)
	}

	full := board.NewThreadView(thread, -1)
	if cacheable {
		s.cache.SetJSON(ctx, cacheKey, full, 0)
	}
	return full, nil
}

func (s *service) ReportReply(ctx context.Context, boardName, threadID, replyID string) error {
	if err := s.repo.ReportReply(ctx, boardName, threadID, replyID); err != nil {
		if errors.Is(err, board.ErrReplyNotFound) {
			return err
		}
		return fmt.Errorf("failed to report reply: %w", err)
	}

	s.eventBus.Publish(utils.EventReplyReported, boardName, map[string]string{
		"thread_id": threadID,
		"_id":       replyID,
	})
	s.logger.Infow("Reply reported", "board", boardName, "thread_id", threadID, "reply_id", replyID)
	return nil
}

// DeleteReply replaces the reply text with board.DeletedReplyText when the
// password matches. The reply keeps its id and position in the thread.
func (s *service) DeleteReply(ctx context.Context, boardName, threadID, replyID, password string) error {
	r, err := s.repo.GetReply(ctx, boardName, threadID, replyID)
	if err != nil {
		if errors.Is(err, board.ErrReplyNotFound) {
			return err
		}
		return fmt.Errorf("failed to get reply: %w", err)
	}

	if !s.hasher.Matches(r.DeletePassword, password) {
		s.logger.Debugw("Reply delete rejected", "board", boardName, "reply_id", replyID)
		return board.ErrIncorrectPassword
	}

	if err := s.repo.SetReplyText(ctx, boardName, threadID, replyID, board.DeletedReplyText); err != nil {
		if errors.Is(err, board.ErrReplyNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete reply: %w", err)
	}

	s.invalidateCache(ctx, boardName)
	s.eventBus.Publish(utils.EventReplyDeleted, boardName, map[string]string{
		"thread_id": threadID,
		"_id":       replyID,
	})
	s.logger.Infow("Reply deleted", "board", boardName, "thread_id", threadID, "reply_id", replyID)
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
