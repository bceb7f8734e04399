package functional

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	// Parallel bounds how many scenarios run at once. Values below 1 run them one by one.
	Parallel    int
	Timeout     time.Duration
	BoardPrefix string
}

type Result struct {
	Name     string
	Board    string
	Passed   bool
	Err      error
	Failures []string
	Duration time.Duration
}

type Report struct {
	Results  []Result
	Duration time.Duration
}

func (r Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.Passed {
			n++
		}
	}
	return n
}

func (r Report) Passed() bool {
	return r.Failed() == 0
}

func (r Report) String() string {
	var b strings.Builder
	for _, res := range r.Results {
		status := "PASS"
		if !res.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "%s  %-40s %s\n", status, res.Name, res.Duration.Round(time.Millisecond))
		if res.Err != nil {
			fmt.Fprintf(&b, "      error: %v\n", res.Err)
		}
		for _, f := range res.Failures {
			fmt.Fprintf(&b, "      %s\n", strings.ReplaceAll(strings.TrimSpace(f), "\n", "\n      "))
		}
	}
	fmt.Fprintf(&b, "%d/%d passed in %s\n", len(r.Results)-r.Failed(), len(r.Results), r.Duration.Round(time.Millisecond))
	return b.String()
}

type Runner struct {
	client *Client
	logger *zap.SugaredLogger
	opts   Options
}

func NewRunner(client *Client, logger *zap.Logger, opts Options) *Runner {
	if opts.Parallel < 1 {
		opts.Parallel = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.BoardPrefix == "" {
		opts.BoardPrefix = "test_board"
	}
	return &Runner{client: client, logger: logger.Sugar(), opts: opts}
}

// Run executes every scenario and reports each one. A failing scenario does
// not stop the others; results keep the order of scenarios.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) Report {
	start := time.Now()
	results := make([]Result, len(scenarios))

	g := new(errgroup.Group)
	g.SetLimit(r.opts.Parallel)
	for i, sc := range scenarios {
		i, sc := i, sc
		g.Go(func() error {
			results[i] = r.runOne(ctx, sc)
			return nil
		})
	}
	_ = g.Wait()

	report := Report{Results: results, Duration: time.Since(start)}
	r.logger.Infow("Functional suite finished",
		"scenarios", len(results),
		"failed", report.Failed(),
		"duration", report.Duration.String(),
	)
	return report
}

func (r *Runner) runOne(ctx context.Context, sc Scenario) (res Result) {
	fixture := NewFixture(r.opts.BoardPrefix)
	env := newEnv(r.client, fixture)
	res = Result{Name: sc.Name, Board: fixture.Board}

	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			res.Err = fmt.Errorf("panic: %v", p)
		}
		res.Duration = time.Since(start)
		res.Failures = env.Failures()
		res.Passed = res.Err == nil && len(res.Failures) == 0

		if res.Passed {
			r.logger.Debugw("Scenario passed", "scenario", sc.Name, "board", fixture.Board, "duration", res.Duration.String())
		} else {
			r.logger.Warnw("Scenario failed",
				"scenario", sc.Name,
				"board", fixture.Board,
				"error", res.Err,
				"failures", len(res.Failures),
			)
		}
	}()

	res.Err = sc.Run(ctx, env)
	return res
}
