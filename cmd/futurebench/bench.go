package main

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/b97tsk/future"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// A scenario describes one benchmark run. Values come from a TOML
// file, overridden by flags.
type scenario struct {
	Workers    int `toml:"workers"`
	Tasks      int `toml:"tasks"`
	Submitters int `toml:"submitters"`
	Chain      int `toml:"chain"`
}

var defaultScenario = scenario{
	Workers:    0, // Pool default: env or CPU count.
	Tasks:      10000,
	Submitters: 4,
	Chain:      0,
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure pool throughput and verify no task is lost",
	Long:  `bench submits a burst of index-returning tasks from several goroutines, optionally chains continuations onto each, collects every result, and checks that each index came back exactly once.`,
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().String("config", "", "TOML scenario file")
	benchCmd.Flags().Int("workers", defaultScenario.Workers, "pool size (0 = default)")
	benchCmd.Flags().Int("tasks", defaultScenario.Tasks, "number of tasks to submit")
	benchCmd.Flags().Int("submitters", defaultScenario.Submitters, "concurrent submitting goroutines")
	benchCmd.Flags().Int("chain", defaultScenario.Chain, "continuations chained onto each task")
}

func loadScenario(cmd *cobra.Command) (scenario, error) {
	sc := defaultScenario
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if _, err := toml.DecodeFile(path, &sc); err != nil {
			return sc, fmt.Errorf("loading scenario: %w", err)
		}
		log.WithField("config", path).Debug("scenario file loaded")
	}
	for name, dst := range map[string]*int{
		"workers":    &sc.Workers,
		"tasks":      &sc.Tasks,
		"submitters": &sc.Submitters,
		"chain":      &sc.Chain,
	} {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetInt(name)
		}
	}
	if sc.Tasks < 1 || sc.Submitters < 1 || sc.Chain < 0 {
		return sc, fmt.Errorf("invalid scenario: %+v", sc)
	}
	return sc, nil
}

func runBench(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	pool := future.NewThreadPool(sc.Workers)
	defer pool.Shutdown()
	log.WithFields(map[string]any{
		"workers":    pool.NumWorkers(),
		"tasks":      sc.Tasks,
		"submitters": sc.Submitters,
		"chain":      sc.Chain,
	}).Debug("starting bench")

	start := time.Now()

	futs := make([]future.Future[int], sc.Tasks)
	var eg errgroup.Group
	per := (sc.Tasks + sc.Submitters - 1) / sc.Submitters
	for s := 0; s < sc.Submitters; s++ {
		lo := s * per
		hi := min(lo+per, sc.Tasks)
		eg.Go(func() error {
			for i := lo; i < hi; i++ {
				f := future.SpawnOn(pool, func() (int, error) { return i, nil })
				for c := 0; c < sc.Chain; c++ {
					f = future.Then(&f, func(v int) (int, error) { return v, nil })
				}
				futs[i] = f
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	submitted := time.Since(start)

	seen := make([]bool, sc.Tasks)
	for i := range futs {
		v, err := futs[i].Get()
		if err != nil {
			return fmt.Errorf("task %d failed: %w", i, err)
		}
		if v < 0 || v >= sc.Tasks || seen[v] {
			return fmt.Errorf("index %d missing or duplicated", v)
		}
		seen[v] = true
	}
	elapsed := time.Since(start)

	color.Green("ok: %d tasks, %d results, none lost", sc.Tasks, sc.Tasks)
	fmt.Printf("submitted in %v, completed in %v (%.0f tasks/s)\n",
		submitted.Round(time.Microsecond),
		elapsed.Round(time.Microsecond),
		float64(sc.Tasks)/elapsed.Seconds())
	return nil
}
