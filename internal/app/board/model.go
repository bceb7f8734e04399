package board

import (
	"errors"
	"sort"
	"time"
)

// DeletedReplyText replaces the text of a reply removed by its author.
const DeletedReplyText = "[deleted]"

var (
	ErrThreadNotFound    = errors.New("thread not found")
	ErrReplyNotFound     = errors.New("reply not found")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrEmptyText         = errors.New("text must not be empty")
	ErrEmptyPassword     = errors.New("delete_password must not be empty")
)

type Thread struct {
	ID             string    `gorm:"primaryKey;size:24" bson:"_id"`
	Board          string    `gorm:"not null;index:idx_threads_board_bumped,priority:1" bson:"board"`
	Text           string    `gorm:"type:text;not null" bson:"text"`
	DeletePassword string    `gorm:"not null" bson:"delete_password"`
	Reported       bool      `gorm:"not null;default:false" bson:"reported"`
	CreatedOn      time.Time `gorm:"not null" bson:"created_on"`
	BumpedOn       time.Time `gorm:"not null;index:idx_threads_board_bumped,priority:2,sort:desc" bson:"bumped_on"`
	Replies        []*Reply  `gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE" bson:"replies"`
}

type Reply struct {
	ID             string    `gorm:"primaryKey;size:24" bson:"_id"`
	ThreadID       string    `gorm:"size:24;not null;index" bson:"-"`
	Text           string    `gorm:"type:text;not null" bson:"text"`
	DeletePassword string    `gorm:"not null" bson:"delete_password"`
	Reported       bool      `gorm:"not null;default:false" bson:"reported"`
	CreatedOn      time.Time `gorm:"not null;index" bson:"created_on"`
}

// ThreadView is the public shape of a thread. Passwords and report flags are
// never exposed.
type ThreadView struct {
	ID         string       `json:"_id"`
	Text       string       `json:"text"`
	CreatedOn  time.Time    `json:"created_on"`
	BumpedOn   time.Time    `json:"bumped_on"`
	Replies    []*ReplyView `json:"replies"`
	ReplyCount int          `json:"replycount"`
}

type ReplyView struct {
	ID        string    `json:"_id"`
	Text      string    `json:"text"`
	CreatedOn time.Time `json:"created_on"`
}

// Summary describes one board in the board index.
type Summary struct {
	Board       string    `json:"board" gorm:"column:board"`
	ThreadCount int64     `json:"thread_count" gorm:"column:thread_count"`
	BumpedOn    time.Time `json:"bumped_on" gorm:"column:bumped_on"`
}

type BoardListResponse struct {
	Boards []*Summary `json:"boards"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// NewThreadView renders t with at most replyLimit of its newest replies.
// A negative replyLimit keeps every reply.
func NewThreadView(t *Thread, replyLimit int) *ThreadView {
	replies := SortRepliesNewestFirst(t.Replies)
	if replyLimit >= 0 && len(replies) > replyLimit {
		replies = replies[:replyLimit]
	}

	view := &ThreadView{
		ID:         t.ID,
		Text:       t.Text,
		CreatedOn:  t.CreatedOn,
		BumpedOn:   t.BumpedOn,
		Replies:    make([]*ReplyView, 0, len(replies)),
		ReplyCount: len(t.Replies),
	}
	for _, r := range replies {
		view.Replies = append(view.Replies, &ReplyView{
			ID:        r.ID,
			Text:      r.Text,
			CreatedOn: r.CreatedOn,
		})
	}
	return view
}

// SortRepliesNewestFirst returns a copy of replies ordered by creation time,
// newest first. Replies created at the same instant keep the later-appended one first.
func SortRepliesNewestFirst(replies []*Reply) []*Reply {
	out := make([]*Reply, len(replies))
	for i, r := range replies {
		out[len(replies)-1-i] = r
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedOn.After(out[j].CreatedOn)
	})
	return out
}
