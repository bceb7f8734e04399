package functional

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/assert"
)

type Scenario struct {
	Name string
	Run  func(ctx context.Context, e *Env) error
}

// Env is what a scenario runs against. Failed assertions are recorded and
// the scenario keeps going; a returned error stops it.
type Env struct {
	*assert.Assertions
	Client  *Client
	Fixture Fixture

	rec *recorder
}

func newEnv(client *Client, fixture Fixture) *Env {
	rec := &recorder{}
	return &Env{
		Assertions: assert.New(rec),
		Client:     client,
		Fixture:    fixture,
		rec:        rec,
	}
}

func (e *Env) Failures() []string {
	return e.rec.all()
}

// recorder satisfies assert.TestingT outside of go test.
type recorder struct {
	mu       sync.Mutex
	failures []string
}

func (r *recorder) Errorf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.failures...)
}
