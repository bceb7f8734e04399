package functional

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

type (
	ThreadID string
	ReplyID  string
)

// Thread and Reply mirror the JSON the board returns. They are decoded
// independently of the server's own types so the suite stays a black box.
type Thread struct {
	ID         ThreadID  `json:"_id"`
	Text       string    `json:"text"`
	CreatedOn  time.Time `json:"created_on"`
	BumpedOn   time.Time `json:"bumped_on"`
	Replies    []Reply   `json:"replies"`
	ReplyCount int       `json:"replycount"`
}

type Reply struct {
	ID        ReplyID   `json:"_id"`
	Text      string    `json:"text"`
	CreatedOn time.Time `json:"created_on"`
}

// Response is the raw outcome of a call.
type Response struct {
	Status   int
	Body     string
	Location string
}

// Client talks to a running board over HTTP. Redirects are never followed so
// the 302 of a create is observable.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	noRedirect := *httpClient
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &noRedirect,
	}
}

func (c *Client) CreateThread(ctx context.Context, board, text, password string) (Response, error) {
	return c.send(ctx, http.MethodPost, threadsPath(board), map[string]string{
		"text":            text,
		"delete_password": password,
	})
}

func (c *Client) ListThreads(ctx context.Context, board string) ([]Thread, Response, error) {
	var threads []Thread
	resp, err := c.getJSON(ctx, threadsPath(board), &threads)
	return threads, resp, err
}

func (c *Client) ReportThread(ctx context.Context, board string, id ThreadID) (Response, error) {
	return c.send(ctx, http.MethodPut, threadsPath(board), map[string]string{
		"report_id": string(id),
	})
}

func (c *Client) DeleteThread(ctx context.Context, board string, id ThreadID, password string) (Response, error) {
	return c.send(ctx, http.MethodDelete, threadsPath(board), map[string]string{
		"thread_id":       string(id),
		"delete_password": password,
	})
}

func (c *Client) CreateReply(ctx context.Context, board string, id ThreadID, text, password string) (Response, error) {
	return c.send(ctx, http.MethodPost, repliesPath(board), map[string]string{
		"thread_id":       string(id),
		"text":            text,
		"delete_password": password,
	})
}

// GetThread returns nil and the raw response when the board does not answer 200.
func (c *Client) GetThread(ctx context.Context, board string, id ThreadID) (*Thread, Response, error) {
	var thread Thread
	resp, err := c.getJSON(ctx, repliesPath(board)+"?thread_id="+url.QueryEscape(string(id)), &thread)
	if err != nil || resp.Status != http.StatusOK {
		return nil, resp, err
	}
	return &thread, resp, nil
}

func (c *Client) ReportReply(ctx context.Context, board string, threadID ThreadID, replyID ReplyID) (Response, error) {
	return c.send(ctx, http.MethodPut, repliesPath(board), map[string]string{
		"thread_id": string(threadID),
		"reply_id":  string(replyID),
	})
}

func (c *Client) DeleteReply(ctx context.Context, board string, threadID ThreadID, replyID ReplyID, password string) (Response, error) {
	return c.send(ctx, http.MethodDelete, repliesPath(board), map[string]string{
		"thread_id":       string(threadID),
		"reply_id":        string(replyID),
		"delete_password": password,
	})
}

func (c *Client) send(ctx context.Context, method, path string, body map[string]string) (Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return Response{}, err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) getJSON(ctx context.Context, path string, dst interface{}) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return resp, err
	}
	if resp.Status != http.StatusOK {
		return resp, nil
	}
	if err := json.Unmarshal([]byte(resp.Body), dst); err != nil {
		return resp, fmt.Errorf("decode %s %s: %w", req.Method, path, err)
	}
	return resp, nil
}

func (c *Client) do(req *http.Request) (Response, error) {
	res, err := c.http.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return Response{}, fmt.Errorf("read %s %s: %w", req.Method, req.URL.Path, err)
	}
	return Response{
		Status:   res.StatusCode,
		Body:     string(body),
		Location: res.Header.Get("Location"),
	}, nil
}

func threadsPath(board string) string {
	return "/api/threads/" + url.PathEscape(board)
}

func repliesPath(board string) string {
	return "/api/replies/" + url.PathEscape(board)
}
