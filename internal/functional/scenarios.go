package functional

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const (
	bodyReported          = "Reported"
	bodySuccess           = "success"
	bodyIncorrectPassword = "incorrect password"
	bodyReplyDeleteFailed = "no reply/ wrong pw"
	listCap               = 10
)

// Scenarios returns the board's acceptance scenarios. Each one sets up its
// own threads and replies on its own board.
func Scenarios() []Scenario {
	return []Scenario{
		{Name: "create thread", Run: createThread},
		{Name: "list recent threads", Run: listThreads},
		{Name: "delete thread with incorrect password", Run: deleteThreadWrongPassword},
		{Name: "delete thread with correct password", Run: deleteThreadRightPassword},
		{Name: "report thread", Run: reportThread},
		{Name: "create reply", Run: createReply},
		{Name: "view thread with all replies", Run: viewThread},
		{Name: "delete reply with incorrect password", Run: deleteReplyWrongPassword},
		{Name: "delete reply with correct password", Run: deleteReplyRightPassword},
		{Name: "report reply", Run: reportReply},
	}
}

func createThread(ctx context.Context, e *Env) error {
	resp, err := e.Client.CreateThread(ctx, e.Fixture.Board, e.Fixture.ThreadText, e.Fixture.ThreadPassword)
	if err != nil {
		return err
	}
	e.Equal(http.StatusFound, resp.Status, "create thread status")
	e.Empty(strings.TrimSpace(resp.Body), "create thread body")
	return nil
}

func listThreads(ctx context.Context, e *Env) error {
	if _, err := postThread(ctx, e); err != nil {
		return err
	}

	threads, resp, err := e.Client.ListThreads(ctx, e.Fixture.Board)
	if err != nil {
		return err
	}
	e.Equal(http.StatusOK, resp.Status, "list threads status")
	if !e.NotEmpty(threads, "list threads") {
		return nil
	}
	e.LessOrEqual(len(threads), listCap)
	e.Equal(e.Fixture.ThreadText, threads[0].Text)
	e.NotNil(threads[0].Replies, "replies must be an array")
	e.NotContains(resp.Body, "delete_password")
	e.NotContains(resp.Body, "reported")
	return nil
}

func deleteThreadWrongPassword(ctx context.Context, e *Env) error {
	id, err := postThread(ctx, e)
	if err != nil {
		return err
	}

	resp, err := e.Client.DeleteThread(ctx, e.Fixture.Board, id, e.Fixture.WrongPassword)
	if err != nil {
		return err
	}
	e.Equal(bodyIncorrectPassword, resp.Body)

	_, ok, err := findThread(ctx, e, e.Fixture.ThreadText)
	if err != nil {
		return err
	}
	e.True(ok, "thread must survive a delete with the wrong password")
	return nil
}

func deleteThreadRightPassword(ctx context.Context, e *Env) error {
	id, err := postThread(ctx, e)
	if err != nil {
		return err
	}

	resp, err := e.Client.DeleteThread(ctx, e.Fixture.Board, id, e.Fixture.ThreadPassword)
	if err != nil {
		return err
	}
	e.Equal(bodySuccess, resp.Body)

	_, ok, err := findThread(ctx, e, e.Fixture.ThreadText)
	if err != nil {
		return err
	}
	e.False(ok, "deleted thread must not be listed")
	return nil
}

func reportThread(ctx context.Context, e *Env) error {
	id, err := postThread(ctx, e)
	if err != nil {
		return err
	}

	resp, err := e.Client.ReportThread(ctx, e.Fixture.Board, id)
	if err != nil {
		return err
	}
	e.Equal(bodyReported, resp.Body)
	return nil
}

func createReply(ctx context.Context, e *Env) error {
	id, err := postThread(ctx, e)
	if err != nil {
		return err
	}

	resp, err := e.Client.CreateReply(ctx, e.Fixture.Board, id, e.Fixture.ReplyText, e.Fixture.ReplyPassword)
	if err != nil {
		return err
	}
	e.Equal(http.StatusFound, resp.Status, "create reply status")
	e.True(strings.HasSuffix(resp.Location, "/"+string(id)), "redirect %q should point at the thread", resp.Location)
	return nil
}

func viewThread(ctx context.Context, e *Env) error {
	id, err := postThread(ctx, e)
	if err != nil {
		return err
	}
	if _, err := postReply(ctx, e, id); err != nil {
		return err
	}

	thread, resp, err := e.Client.GetThread(ctx, e.Fixture.Board, id)
	if err != nil {
		return err
	}
	if !e.Equal(http.StatusOK, resp.Status, "get thread status") {
		return nil
	}
	e.Equal(id, thread.ID)
	if e.Len(thread.Replies, 1) {
		e.Equal(e.Fixture.ReplyText, thread.Replies[0].Text)
	}
	e.False(thread.BumpedOn.Before(thread.CreatedOn), "replying must not move bumped_on backwards")
	e.NotContains(resp.Body, "delete_password")
	return nil
}

func deleteReplyWrongPassword(ctx context.Context, e *Env) error {
	id, err := postThread(ctx, e)
	if err != nil {
		return err
	}
	replyID, err := postReply(ctx, e, id)
	if err != nil {
		return err
	}

	resp, err := e.Client.DeleteReply(ctx, e.Fixture.Board, id, replyID, e.Fixture.WrongPassword)
	if err != nil {
		return err
	}
	e.Equal(bodyReplyDeleteFailed, resp.Body)

	thread, _, err := e.Client.GetThread(ctx, e.Fixture.Board, id)
	if err != nil {
		return err
	}
	if e.NotNil(thread) && e.NotEmpty(thread.Replies) {
		e.Equal(e.Fixture.ReplyText, thread.Replies[0].Text, "reply must be untouched")
	}
	return nil
}

func deleteReplyRightPassword(ctx context.Context, e *Env) error {
	id, err := postThread(ctx, e)
	if err != nil {
		return err
	}
	replyID, err := postReply(ctx, e, id)
	if err != nil {
		return err
	}

	resp, err := e.Client.DeleteReply(ctx, e.Fixture.Board, id, replyID, e.Fixture.ReplyPassword)
	if err != nil {
		return err
	}
	e.Equal(http.StatusOK, resp.Status)
	e.NotEqual(bodyReplyDeleteFailed, resp.Body)

	_, getResp, err := e.Client.GetThread(ctx, e.Fixture.Board, id)
	if err != nil {
		return err
	}
	e.Equal(http.StatusOK, getResp.Status, "deleting a reply must keep its thread")
	return nil
}

func reportReply(ctx context.Context, e *Env) error {
	id, err := postThread(ctx, e)
	if err != nil {
		return err
	}
	replyID, err := postReply(ctx, e, id)
	if err != nil {
		return err
	}

	resp, err := e.Client.ReportReply(ctx, e.Fixture.Board, id, replyID)
	if err != nil {
		return err
	}
	e.Equal(bodyReported, resp.Body)
	return nil
}

// postThread creates the fixture thread and looks up the id the board gave it.
func postThread(ctx context.Context, e *Env) (ThreadID, error) {
	resp, err := e.Client.CreateThread(ctx, e.Fixture.Board, e.Fixture.ThreadText, e.Fixture.ThreadPassword)
	if err != nil {
		return "", err
	}
	if resp.Status != http.StatusFound {
		return "", fmt.Errorf("create thread: status %d: %s", resp.Status, resp.Body)
	}

	id, ok, err := findThread(ctx, e, e.Fixture.ThreadText)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("created thread %q not listed on %s", e.Fixture.ThreadText, e.Fixture.Board)
	}
	return id, nil
}

// postReply replies to thread id with the fixture reply and returns the new reply's id.
func postReply(ctx context.Context, e *Env, id ThreadID) (ReplyID, error) {
	resp, err := e.Client.CreateReply(ctx, e.Fixture.Board, id, e.Fixture.ReplyText, e.Fixture.ReplyPassword)
	if err != nil {
		return "", err
	}
	if resp.Status != http.StatusFound {
		return "", fmt.Errorf("create reply: status %d: %s", resp.Status, resp.Body)
	}

	thread, getResp, err := e.Client.GetThread(ctx, e.Fixture.Board, id)
	if err != nil {
		return "", err
	}
	if thread == nil {
		return "", fmt.Errorf("get thread %s: status %d", id, getResp.Status)
	}
	for _, r := range thread.Replies {
		if r.Text == e.Fixture.ReplyText {
			return r.ID, nil
		}
	}
	return "", fmt.Errorf("reply %q not found in thread %s", e.Fixture.ReplyText, id)
}

func findThread(ctx context.Context, e *Env, text string) (ThreadID, bool, error) {
	threads, resp, err := e.Client.ListThreads(ctx, e.Fixture.Board)
	if err != nil {
		return "", false, err
	}
	if resp.Status != http.StatusOK {
		return "", false, fmt.Errorf("list threads: status %d: %s", resp.Status, resp.Body)
	}
	for _, t := range threads {
		if t.Text == text {
			return t.ID, true, nil
		}
	}
	return "", false, nil
}
