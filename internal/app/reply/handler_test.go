package reply

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"messageboard/internal/app/board"
	"messageboard/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	threadID = "65f1c0ffee0123456789abcd"
	replyID  = "65f1c0ffee0123456789abce"
)

type MockReplyService struct {
	MockCreate    func(boardName, threadID, text, password string) (*board.Reply, error)
	MockGetThread func(boardName, threadID string) (*board.ThreadView, error)
	MockReport    func(boardName, threadID, replyID string) error
	MockDelete    func(boardName, threadID, replyID, password string) error
}

func (m *MockReplyService) CreateReply(ctx context.Context, boardName, threadID, text, password string) (*board.Reply, error) {
	if m.MockCreate != nil {
		return m.MockCreate(boardName, threadID, text, password)
	}
	return &board.Reply{}, nil
}

func (m *MockReplyService) GetThread(ctx context.Context, boardName, threadID string) (*board.ThreadView, error) {
	if m.MockGetThread != nil {
		return m.MockGetThread(boardName, threadID)
	}
	return &board.ThreadView{}, nil
}

func (m *MockReplyService) ReportReply(ctx context.Context, boardName, threadID, replyID string) error {
	if m.MockReport != nil {
		return m.MockReport(boardName, threadID, replyID)
	}
	return nil
}

func (m *MockReplyService) DeleteReply(ctx context.Context, boardName, threadID, replyID, password string) error {
	if m.MockDelete != nil {
		return m.MockDelete(boardName, threadID, replyID, password)
	}
	return nil
}

func newRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.RegisterValidators()
	r := gin.New()
	RegisterRoutes(r.Group("/api"), NewHandler(svc))
	return r
}

func do(r http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestCreateReplyHandler(t *testing.T) {
	svc := &MockReplyService{}
	r := newRouter(svc)

	t.Run("redirects to thread", func(t *testing.T) {
		var gotText string
		svc.MockCreate = func(_, _, text, _ string) (*board.Reply, error) {
			gotText = text
			return &board.Reply{ID: replyID}, nil
		}
		form := url.Values{"thread_id": {threadID}, "text": {"hi"}, "delete_password": {"pw"}}
		rr := do(r, http.MethodPost, "/api/replies/test_board", "application/x-www-form-urlencoded", form.Encode())
		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/b/test_board/"+threadID, rr.Header().Get("Location"))
		assert.Equal(t, "hi", gotText)
	})

	t.Run("unknown thread", func(t *testing.T) {
		svc.MockCreate = func(string, string, string, string) (*board.Reply, error) { return nil, board.ErrThreadNotFound }
		rr := do(r, http.MethodPost, "/api/replies/b", "application/json",
			`{"thread_id":"`+threadID+`","text":"hi","delete_password":"pw"}`)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "thread not found", rr.Body.String())
	})

	t.Run("missing fields", func(t *testing.T) {
		rr := do(r, http.MethodPost, "/api/replies/b", "application/json", `{"thread_id":"`+threadID+`"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed thread id", func(t *testing.T) {
		rr := do(r, http.MethodPost, "/api/replies/b", "application/json",
			`{"thread_id":"123","text":"hi","delete_password":"pw"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("service error", func(t *testing.T) {
		svc.MockCreate = func(string, string, string, string) (*board.Reply, error) { return nil, errors.New("mock error") }
		rr := do(r, http.MethodPost, "/api/replies/b", "application/json",
			`{"thread_id":"`+threadID+`","text":"hi","delete_password":"pw"}`)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestGetThreadHandler(t *testing.T) {
	svc := &MockReplyService{
		MockGetThread: func(boardName, id string) (*board.ThreadView, error) {
			if id != threadID {
				return nil, board.ErrThreadNotFound
			}
			return &board.ThreadView{
				ID:         threadID,
				Text:       "op",
				Replies:    []*board.ReplyView{{ID: replyID, Text: "reply"}},
				ReplyCount: 1,
			}, nil
		},
	}
	r := newRouter(svc)

	rr := do(r, http.MethodGet, "/api/replies/b?thread_id="+threadID, "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, threadID, body["_id"])
	assert.NotContains(t, body, "delete_password")
	assert.NotContains(t, body, "reported")
	replies, ok := body["replies"].([]interface{})
	require.True(t, ok)
	assert.Len(t, replies, 1)

	rr = do(r, http.MethodGet, "/api/replies/b?thread_id="+replyID, "", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "thread not found", rr.Body.String())

	rr = do(r, http.MethodGet, "/api/replies/b?thread_id=xyz", "", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(r, http.MethodGet, "/api/replies/b", "", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestReportReplyHandler(t *testing.T) {
	svc := &MockReplyService{}
	r := newRouter(svc)
	body := `{"thread_id":"` + threadID + `","reply_id":"` + replyID + `"}`

	rr := do(r, http.MethodPut, "/api/replies/b", "application/json", body)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Reported", rr.Body.String())

	svc.MockReport = func(string, string, string) error { return board.ErrReplyNotFound }
	rr = do(r, http.MethodPut, "/api/replies/b", "application/json", body)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "reply not found", rr.Body.String())

	rr = do(r, http.MethodPut, "/api/replies/b", "application/json", `{"thread_id":"`+threadID+`"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeleteReplyHandler(t *testing.T) {
	svc := &MockReplyService{}
	r := newRouter(svc)
	form := url.Values{"thread_id": {threadID}, "reply_id": {replyID}, "delete_password": {"pw"}}.Encode()

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"success", nil, http.StatusOK, "success"},
		{"wrong password", board.ErrIncorrectPassword, http.StatusOK, "no reply/ wrong pw"},
		{"unknown reply", board.ErrReplyNotFound, http.StatusOK, "no reply/ wrong pw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPassword string
			svc.MockDelete = func(_, _, _, password string) error {
				gotPassword = password
				return tt.err
			}
			rr := do(r, http.MethodDelete, "/api/replies/b", "application/x-www-form-urlencoded", form)
			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Equal(t, tt.wantBody, rr.Body.String())
			assert.Equal(t, "pw", gotPassword)
		})
	}

	t.Run("service failure", func(t *testing.T) {
		svc.MockDelete = func(string, string, string, string) error { return errors.New("db down") }
		rr := do(r, http.MethodDelete, "/api/replies/b", "application/json", `{"thread_id":"`+threadID+`"}`)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
