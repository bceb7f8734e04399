package board

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// runRepositoryContract exercises behaviour every Repository implementation
// must share. Each subtest works on its own board.
func runRepositoryContract(t *testing.T, repo Repository) {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	newThread := func(board string, at time.Time) *Thread {
		return &Thread{
			ID:             primitive.NewObjectID().Hex(),
			Board:          board,
			Text:           "thread " + at.Format(time.Kitchen),
			DeletePassword: "hash",
			CreatedOn:      at,
			BumpedOn:       at,
		}
	}
	newReply := func(threadID string, at time.Time) *Reply {
		return &Reply{
			ID:             primitive.NewObjectID().Hex(),
			ThreadID:       threadID,
			Text:           "reply " + at.Format(time.StampMilli),
			DeletePassword: "hash",
			CreatedOn:      at,
		}
	}
	uniqueBoard := func(prefix string) string {
		return prefix + "_" + primitive.NewObjectID().Hex()
	}

	require.NoError(t, repo.Ping(ctx))

	t.Run("list orders by bump and respects limit", func(t *testing.T) {
		board := uniqueBoard("list")
		var ids []string
		for i := 0; i < 4; i++ {
			th := newThread(board, base.Add(time.Duration(i)*time.Minute))
			require.NoError(t, repo.CreateThread(ctx, th))
			ids = append(ids, th.ID)
		}

		threads, err := repo.ListThreads(ctx, board, 3)
		require.NoError(t, err)
		require.Len(t, threads, 3)
		assert.Equal(t, ids[3], threads[0].ID)
		assert.Equal(t, ids[2], threads[1].ID)
		assert.Equal(t, ids[1], threads[2].ID)

		// a reply on the oldest thread bumps it to the top
		require.NoError(t, repo.AddReply(ctx, board, newReply(ids[0], base.Add(time.Hour))))
		threads, err = repo.ListThreads(ctx, board, 3)
		require.NoError(t, err)
		assert.Equal(t, ids[0], threads[0].ID)
		require.Len(t, threads[0].Replies, 1)
		assert.True(t, threads[0].BumpedOn.Equal(base.Add(time.Hour)))
	})

	t.Run("unknown board lists nothing", func(t *testing.T) {
		threads, err := repo.ListThreads(ctx, uniqueBoard("empty"), 10)
		require.NoError(t, err)
		assert.Empty(t, threads)
	})

	t.Run("threads are scoped to their board", func(t *testing.T) {
		board := uniqueBoard("scoped")
		th := newThread(board, base)
		require.NoError(t, repo.CreateThread(ctx, th))

		_, err := repo.GetThread(ctx, "other_"+board, th.ID)
		assert.ErrorIs(t, err, ErrThreadNotFound)
		assert.ErrorIs(t, repo.ReportThread(ctx, "other_"+board, th.ID), ErrThreadNotFound)
		assert.ErrorIs(t, repo.DeleteThread(ctx, "other_"+board, th.ID), ErrThreadNotFound)

		got, err := repo.GetThread(ctx, board, th.ID)
		require.NoError(t, err)
		assert.Equal(t, th.Text, got.Text)
		assert.False(t, got.Reported)
	})

	t.Run("report thread", func(t *testing.T) {
		board := uniqueBoard("report")
		th := newThread(board, base)
		require.NoError(t, repo.CreateThread(ctx, th))

		require.NoError(t, repo.ReportThread(ctx, board, th.ID))
		require.NoError(t, repo.ReportThread(ctx, board, th.ID))
		got, err := repo.GetThread(ctx, board, th.ID)
		require.NoError(t, err)
		assert.True(t, got.Reported)

		assert.ErrorIs(t, repo.ReportThread(ctx, board, primitive.NewObjectID().Hex()), ErrThreadNotFound)
	})

	t.Run("delete thread removes replies", func(t *testing.T) {
		board := uniqueBoard("delete")
		th := newThread(board, base)
		require.NoError(t, repo.CreateThread(ctx, th))
		r := newReply(th.ID, base.Add(time.Second))
		require.NoError(t, repo.AddReply(ctx, board, r))

		require.NoError(t, repo.DeleteThread(ctx, board, th.ID))
		_, err := repo.GetThread(ctx, board, th.ID)
		assert.ErrorIs(t, err, ErrThreadNotFound)
		_, err = repo.GetReply(ctx, board, th.ID, r.ID)
		assert.ErrorIs(t, err, ErrReplyNotFound)
		assert.ErrorIs(t, repo.DeleteThread(ctx, board, th.ID), ErrThreadNotFound)
	})

	t.Run("replies", func(t *testing.T) {
		board := uniqueBoard("replies")
		th := newThread(board, base)
		require.NoError(t, repo.CreateThread(ctx, th))

		first := newReply(th.ID, base.Add(time.Second))
		second := newReply(th.ID, base.Add(2*time.Second))
		require.NoError(t, repo.AddReply(ctx, board, first))
		require.NoError(t, repo.AddReply(ctx, board, second))

		got, err := repo.GetReply(ctx, board, th.ID, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first.Text, got.Text)
		assert.Equal(t, th.ID, got.ThreadID)

		require.NoError(t, repo.ReportReply(ctx, board, th.ID, first.ID))
		require.NoError(t, repo.SetReplyText(ctx, board, th.ID, second.ID, DeletedReplyText))

		full, err := repo.GetThread(ctx, board, th.ID)
		require.NoError(t, err)
		require.Len(t, full.Replies, 2)
		byID := map[string]*Reply{}
		for _, r := range full.Replies {
			byID[r.ID] = r
		}
		assert.True(t, byID[first.ID].Reported)
		assert.False(t, byID[second.ID].Reported)
		assert.Equal(t, DeletedReplyText, byID[second.ID].Text)
		assert.False(t, full.Reported, "reporting a reply must not report its thread")

		missing := primitive.NewObjectID().Hex()
		_, err = repo.GetReply(ctx, board, th.ID, missing)
		assert.ErrorIs(t, err, ErrReplyNotFound)
		assert.ErrorIs(t, repo.ReportReply(ctx, board, th.ID, missing), ErrReplyNotFound)
		assert.ErrorIs(t, repo.SetReplyText(ctx, board, th.ID, missing, "x"), ErrReplyNotFound)
		assert.ErrorIs(t, repo.ReportReply(ctx, "other_"+board, th.ID, first.ID), ErrReplyNotFound)
	})

	t.Run("reply to unknown thread", func(t *testing.T) {
		board := uniqueBoard("orphan")
		err := repo.AddReply(ctx, board, newReply(primitive.NewObjectID().Hex(), base))
		assert.ErrorIs(t, err, ErrThreadNotFound)
	})

	t.Run("list boards", func(t *testing.T) {
		board := uniqueBoard("index")
		future := base.Add(24 * 365 * time.Hour)
		require.NoError(t, repo.CreateThread(ctx, newThread(board, future)))
		require.NoError(t, repo.CreateThread(ctx, newThread(board, future.Add(-time.Minute))))

		boards, err := repo.ListBoards(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, boards)
		assert.Equal(t, board, boards[0].Board)
		assert.EqualValues(t, 2, boards[0].ThreadCount)
		assert.True(t, boards[0].BumpedOn.Equal(future))
	})
}
