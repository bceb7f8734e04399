package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"messageboard/internal/functional"
	"messageboard/internal/utils"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := &cli.App{
		Name:  "boardcheck",
		Usage: "run the functional scenarios against a running message board",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "base-url",
				Value:   "http://localhost:8080",
				Usage:   "board to test",
				EnvVars: []string{"BOARDCHECK_BASE_URL"},
			},
			&cli.IntFlag{
				Name:  "parallel",
				Value: 4,
				Usage: "scenarios to run at once",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 30 * time.Second,
				Usage: "time limit per scenario",
			},
			&cli.StringFlag{
				Name:  "board-prefix",
				Value: "test_board",
				Usage: "prefix of the boards the scenarios post to",
			},
			&cli.StringSliceFlag{
				Name:  "run",
				Usage: "only run scenarios whose name contains this text (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "list",
				Usage: "print scenario names and exit",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	scenarios := selectScenarios(functional.Scenarios(), c.StringSlice("run"))

	if c.Bool("list") {
		for _, sc := range scenarios {
			fmt.Fprintln(c.App.Writer, sc.Name)
		}
		return nil
	}
	if len(scenarios) == 0 {
		return cli.Exit("no scenario matches --run", 2)
	}

	logger, err := utils.NewLogger("dev", c.String("log-level"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	baseURL := c.String("base-url")
	logger.Info("Running functional scenarios",
		zap.String("base_url", baseURL),
		zap.Int("scenarios", len(scenarios)),
	)

	runner := functional.NewRunner(functional.NewClient(baseURL, nil), logger, functional.Options{
		Parallel:    c.Int("parallel"),
		Timeout:     c.Duration("timeout"),
		BoardPrefix: c.String("board-prefix"),
	})
	report := runner.Run(ctx, scenarios)

	fmt.Fprint(c.App.Writer, report.String())
	if !report.Passed() {
		return cli.Exit(fmt.Sprintf("%d scenario(s) failed", report.Failed()), 1)
	}
	return nil
}

func selectScenarios(all []functional.Scenario, filters []string) []functional.Scenario {
	if len(filters) == 0 {
		return all
	}
	var out []functional.Scenario
	for _, sc := range all {
		for _, f := range filters {
			if strings.Contains(sc.Name, f) {
				out = append(out, sc)
				break
			}
		}
	}
	return out
}
