package thread

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

const validID = "65f1c0ffee0123456789abcd"

type MockThreadService struct {
	MockCreate func(boardName, text, password string) (*board.Thread, error)
	MockList   func(boardName string) ([]*board.ThreadView, error)
	MockReport func(boardName, threadID string) error
	MockDelete func(boardName, threadID, password string) error
}

func (m *MockThreadService) CreateThread(ctx context.Context, boardName, text, password string) (*board.Thread, error) {
	if m.MockCreate != nil {
		return m.MockCreate(boardName, text, password)
	}
	return &board.Thread{}, nil
}

func (m *MockThreadService) ListThreads(ctx context.Context, boardName string) ([]*board.ThreadView, error) {
	if m.MockList != nil {
		return m.MockList(boardName)
	}
	return []*board.ThreadView{}, nil
}

func (m *MockThreadService) ReportThread(ctx context.Context, boardName, threadID string) error {
	if m.MockReport != nil {
		return m.MockReport(boardName, threadID)
	}
	return nil
}

func (m *MockThreadService) DeleteThread(ctx context.Context, boardName, threadID, password string) error {
	if m.MockDelete != nil {
		return m.MockDelete(boardName, threadID, password)
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

func TestCreateThreadHandler(t *testing.T) {
	var gotBoard, gotText, gotPassword string
	svc := &MockThreadService{
		MockCreate: func(boardName, text, password string) (*board.Thread, error) {
			gotBoard, gotText, gotPassword = boardName, text, password
			return &board.Thread{ID: validID}, nil
		},
	}
	r := newRouter(svc)

	t.Run("json body redirects", func(t *testing.T) {
		rr := do(r, http.MethodPost, "/api/threads/test_board", "application/json",
			`{"text":"hello","delete_password":"pw1"}`)
		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/b/test_board/", rr.Header().Get("Location"))
		assert.Equal(t, "test_board", gotBoard)
		assert.Equal(t, "hello", gotText)
		assert.Equal(t, "pw1", gotPassword)
	})

	t.Run("form body redirects", func(t *testing.T) {
		form := url.Values{"text": {"from form"}, "delete_password": {"pw2"}}
		rr := do(r, http.MethodPost, "/api/threads/general", "application/x-www-form-urlencoded", form.Encode())
		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "from form", gotText)
	})

	t.Run("missing password", func(t *testing.T) {
		rr := do(r, http.MethodPost, "/api/threads/b", "application/json", `{"text":"hello"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		rr := do(r, http.MethodPost, "/api/threads/b", "application/json", `{ivalid json::}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("text empty after sanitizing", func(t *testing.T) {
		svc.MockCreate = func(string, string, string) (*board.Thread, error) { return nil, board.ErrEmptyText }
		rr := do(r, http.MethodPost, "/api/threads/b", "application/json", `{"text":"<b></b>","delete_password":"pw"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("service error", func(t *testing.T) {
		svc.MockCreate = func(string, string, string) (*board.Thread, error) { return nil, errors.New("mock error") }
		rr := do(r, http.MethodPost, "/api/threads/b", "application/json", `{"text":"a","delete_password":"pw"}`)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestListThreadsHandler(t *testing.T) {
	svc := &MockThreadService{
		MockList: func(boardName string) ([]*board.ThreadView, error) {
			return []*board.ThreadView{{ID: validID, Text: "hello", Replies: []*board.ReplyView{}}}, nil
		},
	}
	r := newRouter(svc)

	rr := do(r, http.MethodGet, "/api/threads/test_board", "", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "hello", body[0]["text"])
	assert.Equal(t, validID, body[0]["_id"])

	svc.MockList = func(string) ([]*board.ThreadView, error) { return nil, errors.New("mock error") }
	rr = do(r, http.MethodGet, "/api/threads/test_board", "", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestReportThreadHandler(t *testing.T) {
	var reported string
	svc := &MockThreadService{
		MockReport: func(boardName, threadID string) error {
			reported = threadID
			return nil
		},
	}
	r := newRouter(svc)

	rr := do(r, http.MethodPut, "/api/threads/b", "application/json", `{"report_id":"`+validID+`"}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Reported", rr.Body.String())
	assert.Equal(t, validID, reported)

	rr = do(r, http.MethodPut, "/api/threads/b", "application/x-www-form-urlencoded", "thread_id="+validID)
	assert.Equal(t, "Reported", rr.Body.String())

	rr = do(r, http.MethodPut, "/api/threads/b", "application/json", `{"report_id":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(r, http.MethodPut, "/api/threads/b", "application/json", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	svc.MockReport = func(string, string) error { return board.ErrThreadNotFound }
	rr = do(r, http.MethodPut, "/api/threads/b", "application/json", `{"report_id":"`+validID+`"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "thread not found", rr.Body.String())
}

func TestDeleteThreadHandler(t *testing.T) {
	svc := &MockThreadService{}
	r := newRouter(svc)
	body := `{"thread_id":"` + validID + `","delete_password":"pw"}`

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"success", nil, http.StatusOK, "success"},
		{"wrong password", board.ErrIncorrectPassword, http.StatusOK, "incorrect password"},
		{"unknown thread", board.ErrThreadNotFound, http.StatusOK, "incorrect password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc.MockDelete = func(string, string, string) error { return tt.err }
			rr := do(r, http.MethodDelete, "/api/threads/b", "application/json", body)
			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Equal(t, tt.wantBody, rr.Body.String())
		})
	}

	t.Run("form body on delete", func(t *testing.T) {
		var gotID, gotPassword string
		svc.MockDelete = func(_, threadID, password string) error {
			gotID, gotPassword = threadID, password
			return nil
		}
		form := url.Values{"thread_id": {validID}, "delete_password": {"form_pw"}}
		rr := do(r, http.MethodDelete, "/api/threads/b", "application/x-www-form-urlencoded", form.Encode())
		assert.Equal(t, "success", rr.Body.String())
		assert.Equal(t, validID, gotID)
		assert.Equal(t, "form_pw", gotPassword)
	})

	t.Run("service failure", func(t *testing.T) {
		svc.MockDelete = func(string, string, string) error { return errors.New("db down") }
		rr := do(r, http.MethodDelete, "/api/threads/b", "application/json", body)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
