package board

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Repository persists threads and their replies. Every lookup is scoped to a
// board: a thread that lives on another board does not exist for the caller.
type Repository interface {
	Ping(ctx context.Context) error
	CreateThread(ctx context.Context, thread *Thread) error
	// ListThreads returns up to limit threads ordered by bump time, newest first,
	// with all of their replies loaded.
	ListThreads(ctx context.Context, board string, limit int) ([]*Thread, error)
	GetThread(ctx context.Context, board, threadID string) (*Thread, error)
	ReportThread(ctx context.Context, board, threadID string) error
	DeleteThread(ctx context.Context, board, threadID string) error
	// AddReply appends reply to its thread and bumps the thread to reply.CreatedOn.
	AddReply(ctx context.Context, board string, reply *Reply) error
	GetReply(ctx context.Context, board, threadID, replyID string) (*Reply, error)
	ReportReply(ctx context.Context, board, threadID, replyID string) error
	SetReplyText(ctx context.Context, board, threadID, replyID, text string) error
	ListBoards(ctx context.Context) ([]*Summary, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Migrate creates or updates the threads and replies tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Thread{}, &Reply{})
}

func (r *repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *repository) CreateThread(ctx context.Context, thread *Thread) error {
	return errors.Wrap(r.db.WithContext(ctx).Omit("Replies").Create(thread).Error, "create thread")
}

func (r *repository) ListThreads(ctx context.Context, board string, limit int) ([]*Thread, error) {
	var threads []*Thread
	err := r.db.WithContext(ctx).
		Where("board = ?", board).
		Order("bumped_on DESC").
		Limit(limit).
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("replies.created_on DESC")
		}).
		Find(&threads).Error
	if err != nil {
		return nil, errors.Wrapf(err, "list threads of board %q", board)
	}
	return threads, nil
}

func (r *repository) GetThread(ctx context.Context, board, threadID string) (*Thread, error) {
	var thread Thread
	err := r.db.WithContext(ctx).
		Where("id = ? AND board = ?", threadID, board).
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("replies.created_on DESC")
		}).
		First(&thread).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrThreadNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get thread %s", threadID)
	}
	return &thread, nil
}

func (r *repository) ReportThread(ctx context.Context, board, threadID string) error {
	res := r.db.WithContext(ctx).
		Model(&Thread{}).
		Where("id = ? AND board = ?", threadID, board).
		Update("reported", true)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "report thread %s", threadID)
	}
	if res.RowsAffected == 0 {
		return ErrThreadNotFound
	}
	return nil
}

func (r *repository) DeleteThread(ctx context.Context, board, threadID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("thread_id = ?", threadID).Delete(&Reply{}).Error; err != nil {
			return errors.Wrapf(err, "delete replies of thread %s", threadID)
		}
		res := tx.Where("id = ? AND board = ?", threadID, board).Delete(&Thread{})
		if res.Error != nil {
			return errors.Wrapf(res.Error, "delete thread %s", threadID)
		}
		if res.RowsAffected == 0 {
			return ErrThreadNotFound
		}
		return nil
	})
}

func (r *repository) AddReply(ctx context.Context, board string, reply *Reply) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Thread{}).
			Where("id = ? AND board = ?", reply.ThreadID, board).
			Update("bumped_on", reply.CreatedOn)
		if res.Error != nil {
			return errors.Wrapf(res.Error, "bump thread %s", reply.ThreadID)
		}
		if res.RowsAffected == 0 {
			return ErrThreadNotFound
		}
		return errors.Wrap(tx.Create(reply).Error, "create reply")
	})
}

func (r *repository) GetReply(ctx context.Context, board, threadID, replyID string) (*Reply, error) {
	var reply Reply
	err := r.db.WithContext(ctx).
		Joins("JOIN threads ON threads.id = replies.thread_id").
		Where("replies.id = ? AND replies.thread_id = ? AND threads.board = ?", replyID, threadID, board).
		First(&reply).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReplyNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get reply %s", replyID)
	}
	return &reply, nil
}

func (r *repository) ReportReply(ctx context.Context, board, threadID, replyID string) error {
	return r.updateReply(ctx, board, threadID, replyID, "reported", true)
}

func (r *repository) SetReplyText(ctx context.Context, board, threadID, replyID, text string) error {
	return r.updateReply(ctx, board, threadID, replyID, "text", text)
}

func (r *repository) updateReply(ctx context.Context, board, threadID, replyID, column string, value interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&Reply{}).
		Where("id = ? AND thread_id = ?", replyID, threadID).
		Where("thread_id IN (?)", r.db.Model(&Thread{}).Select("id").Where("board = ?", board)).
		Update(column, value)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "update reply %s", replyID)
	}
	if res.RowsAffected == 0 {
		return ErrReplyNotFound
	}
	return nil
}

func (r *repository) ListBoards(ctx context.Context) ([]*Summary, error) {
	var boards []*Summary
	err := r.db.WithContext(ctx).
		Model(&Thread{}).
		Select("board, COUNT(*) AS thread_count, MAX(bumped_on) AS bumped_on").
		Group("board").
		Order("MAX(bumped_on) DESC").
		Scan(&boards).Error
	if err != nil {
		return nil, errors.Wrap(err, "list boards")
	}
	return boards, nil
}
