package websocket

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"messageboard/internal/utils"

	"github.com/gin-gonic/gin"
	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeConn struct {
	mu      sync.Mutex
	written []utils.Event
	closed  chan struct{}
	once    sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{closed: make(chan struct{})}
}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	<-f.closed
	return 0, nil, errors.New("closed")
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.written = append(f.written, v.(utils.Event))
	return nil
}

func (f *fakeConn) Close() error {
	f.once.Do(func() { close(f.closed) })
	return nil
}

func (f *fakeConn) events() []utils.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]utils.Event(nil), f.written...)
}

func startHub(t *testing.T) (*Hub, *utils.EventBus) {
	t.Helper()
	bus := utils.NewEventBus()
	hub := NewHub(zap.NewNop(), bus)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub, bus
}

func TestHubFiltersByBoard(t *testing.T) {
	hub, bus := startHub(t)

	all := newFakeConn()
	onlyA := newFakeConn()
	hub.Attach(all, "")
	hub.Attach(onlyA, "a")
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	bus.Publish(utils.EventThreadCreated, "a", map[string]string{"_id": "1"})
	bus.Publish(utils.EventThreadCreated, "b", map[string]string{"_id": "2"})

	require.Eventually(t, func() bool { return len(all.events()) == 2 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return len(onlyA.events()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "a", onlyA.events()[0].Board)
	assert.Equal(t, utils.EventThreadCreated, onlyA.events()[0].Event)
}

func TestHubDetachClosesConnection(t *testing.T) {
	hub, _ := startHub(t)

	conn := newFakeConn()
	client := hub.Attach(conn, "a")
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Detach(client)
	select {
	case <-conn.closed:
	case <-time.After(time.Second):
		t.Fatal("connection was not closed")
	}
	assert.Equal(t, 0, hub.ClientCount())
}

func TestServeWS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub, bus := startHub(t)

	r := gin.New()
	RegisterRoutes(r, hub)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?board=general"
	conn, _, err := gws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	bus.Publish(utils.EventReplyCreated, "general", map[string]string{"thread_id": "t"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got utils.Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, utils.EventReplyCreated, got.Event)
	assert.Equal(t, "general", got.Board)
}
