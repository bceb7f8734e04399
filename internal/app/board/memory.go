package board

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	threads map[string]*Thread
}

// NewMemoryRepository returns a process-local Repository. Values handed out are
// copies; callers may mutate them freely.
func NewMemoryRepository() Repository {
	return &memoryRepository{threads: make(map[string]*Thread)}
}

func (m *memoryRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *memoryRepository) CreateThread(ctx context.Context, thread *Thread) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := copyThread(thread)
	m.threads[thread.ID] = stored
	return nil
}

func (m *memoryRepository) ListThreads(ctx context.Context, board string, limit int) ([]*Thread, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var threads []*Thread
	for _, t := range m.threads {
		if t.Board == board {
			threads = append(threads, t)
		}
	}
	sort.Slice(threads, func(i, j int) bool {
		if threads[i].BumpedOn.Equal(threads[j].BumpedOn) {
			return threads[i].ID > threads[j].ID
		}
		return threads[i].BumpedOn.After(threads[j].BumpedOn)
	})
	if len(threads) > limit {
		threads = threads[:limit]
	}

	out := make([]*Thread, 0, len(threads))
	for _, t := range threads {
		out = append(out, copyThread(t))
	}
	return out, nil
}

func (m *memoryRepository) GetThread(ctx context.Context, board, threadID string) (*Thread, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, err := m.lookup(board, threadID)
	if err != nil {
		return nil, err
	}
	return copyThread(t), nil
}

func (m *memoryRepository) ReportThread(ctx context.Context, board, threadID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.lookup(board, threadID)
	if err != nil {
		return err
	}
	t.Reported = true
	return nil
}

func (m *memoryRepository) DeleteThread(ctx context.Context, board, threadID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.lookup(board, threadID); err != nil {
		return err
	}
	delete(m.threads, threadID)
	return nil
}

func (m *memoryRepository) AddReply(ctx context.Context, board string, reply *Reply) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.lookup(board, reply.ThreadID)
	if err != nil {
		return err
	}
	r := *reply
	t.Replies = append(t.Replies, &r)
	t.BumpedOn = reply.CreatedOn
	return nil
}

func (m *memoryRepository) GetReply(ctx context.Context, board, threadID, replyID string) (*Reply, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, err := m.lookupReply(board, threadID, replyID)
	if err != nil {
		return nil, err
	}
	out := *r
	return &out, nil
}

func (m *memoryRepository) ReportReply(ctx context.Context, board, threadID, replyID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, err := m.lookupReply(board, threadID, replyID)
	if err != nil {
		return err
	}
	r.Reported = true
	return nil
}

func (m *memoryRepository) SetReplyText(ctx context.Context, board, threadID, replyID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, err := m.lookupReply(board, threadID, replyID)
	if err != nil {
		return err
	}
	r.Text = text
	return nil
}

func (m *memoryRepository) ListBoards(ctx context.Context) ([]*Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byBoard := make(map[string]*Summary)
	for _, t := range m.threads {
		s, ok := byBoard[t.Board]
		if !ok {
			s = &Summary{Board: t.Board}
			byBoard[t.Board] = s
		}
		s.ThreadCount++
		if t.BumpedOn.After(s.BumpedOn) {
			s.BumpedOn = t.BumpedOn
		}
	}

	boards := make([]*Summary, 0, len(byBoard))
	for _, s := range byBoard {
		boards = append(boards, s)
	}
	sort.Slice(boards, func(i, j int) bool {
		return boards[i].BumpedOn.After(boards[j].BumpedOn)
	})
	return boards, nil
}

func (m *memoryRepository) lookup(board, threadID string) (*Thread, error) {
	t, ok := m.threads[threadID]
	if !ok || t.Board != board {
		return nil, ErrThreadNotFound
	}
	return t, nil
}

func (m *memoryRepository) lookupReply(board, threadID, replyID string) (*Reply, error) {
	t, err := m.lookup(board, threadID)
	if err != nil {
		return nil, ErrReplyNotFound
	}
	for _, r := range t.Replies {
		if r.ID == replyID {
			return r, nil
		}
	}
	return nil, ErrReplyNotFound
}

func copyThread(t *Thread) *Thread {
	out := *t
	out.Replies = make([]*Reply, 0, len(t.Replies))
	for _, r := range t.Replies {
		rc := *r
		out.Replies = append(out.Replies, &rc)
	}
	return &out
}
