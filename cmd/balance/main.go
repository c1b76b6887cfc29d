// Balance search tool - optimizes behavior parameters for a stable ecosystem.
//
// Runs headless simulations under CMA-ES, scoring how well both roles stay
// populated over the run, and prints the best parameter set as YAML.
//
// Usage: go run ./cmd/balance -max-ticks 36000 -max-evals 60
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/game"
	"github.com/pthm-cable/terrarium/species"
)

// paramSpec is one tunable dimension with its search range.
type paramSpec struct {
	Name     string
	Min, Max float64
	Default  float64
	Apply    func(cfg *config.Config, v float64)
}

var specs = []paramSpec{
	{
		Name: "respawn_delay", Min: 1, Max: 20, Default: 8,
		Apply: func(cfg *config.Config, v float64) { cfg.Lifecycle.RespawnDelay = v },
	},
	{
		Name: "speed_scale", Min: 0.5, Max: 3, Default: 1,
		Apply: func(cfg *config.Config, v float64) { cfg.Movement.SpeedScale = v },
	},
	{
		Name: "wander_radius", Min: 0.05, Max: 0.3, Default: 0.15,
		Apply: func(cfg *config.Config, v float64) { cfg.Behavior.WanderRadius = v },
	},
}

func denormalize(x []float64) []float64 {
	raw := make([]float64, len(specs))
	for i, s := range specs {
		t := x[i]
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		raw[i] = s.Min + t*(s.Max-s.Min)
	}
	return raw
}

// sampleEvery is the census interval in ticks.
const sampleEvery = 600

// evaluate scores one parameter vector across the given seeds. Higher is
// better: 2.0 means both roles fully populated at every sample.
func evaluate(configPath string, raw []float64, seeds []int64, maxTicks int) (float64, error) {
	var total float64
	var samples int

	for _, seed := range seeds {
		cfg, err := config.Load(configPath)
		if err != nil {
			return 0, err
		}
		for i, s := range specs {
			s.Apply(cfg, raw[i])
		}

		wantHerb, wantPred := 0, 0
		for _, p := range cfg.Population {
			sp, ok := species.FromKey(p.Species)
			if !ok {
				return 0, fmt.Errorf("unknown species %q", p.Species)
			}
			if species.IsPredator(sp) {
				wantPred += p.Count
			} else {
				wantHerb += p.Count
			}
		}
		if wantHerb == 0 || wantPred == 0 {
			return 0, fmt.Errorf("population table needs both roles")
		}

		g, err := game.New(game.Options{Config: cfg, Seed: seed})
		if err != nil {
			return 0, err
		}

		for t := 0; t < maxTicks; t += sampleEvery {
			g.Run(sampleEvery)
			total += float64(g.HerbivoreCount()) / float64(wantHerb)
			total += float64(g.PredatorCount()) / float64(wantPred)
			samples++
		}
		g.Close()
	}

	return total / float64(samples), nil
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 36000, "Simulation length per run in ticks")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 60, "Maximum function evaluations")
	outputDir := flag.String("output-dir", "balance_out", "Directory for the evaluation log")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		slog.Error("creating output dir", "error", err)
		os.Exit(1)
	}
	logFile, err := os.Create(filepath.Join(*outputDir, "balance_log.csv"))
	if err != nil {
		slog.Error("creating log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()
	header := []string{"eval", "score"}
	for _, s := range specs {
		header = append(header, s.Name)
	}
	logWriter.Write(header)

	evalCount := 0
	bestScore := -1e9
	var bestParams []float64

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := denormalize(x)
			score, err := evaluate(*configPath, raw, evalSeeds, *maxTicks)
			if err != nil {
				slog.Error("evaluation failed", "error", err)
				os.Exit(1)
			}
			evalCount++

			row := []string{strconv.Itoa(evalCount), fmt.Sprintf("%.4f", score)}
			for _, v := range raw {
				row = append(row, fmt.Sprintf("%.4f", v))
			}
			logWriter.Write(row)
			logWriter.Flush()

			if score > bestScore {
				bestScore = score
				bestParams = raw
			}
			slog.Info("evaluation", "eval", evalCount, "score", score, "best", bestScore)

			// CMA-ES minimizes.
			return -score
		},
	}

	initX := make([]float64, len(specs))
	for i, s := range specs {
		initX[i] = (s.Default - s.Min) / (s.Max - s.Min)
	}

	settings := &optimize.Settings{FuncEvaluations: *maxEvals}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   4 + 3*len(specs)/2,
	}

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		slog.Warn("optimization ended", "reason", err)
	}
	if bestParams == nil && result != nil {
		bestParams = denormalize(result.X)
	}

	fmt.Printf("# best score: %.4f over %d evals\n", bestScore, evalCount)
	fmt.Println("lifecycle:")
	fmt.Printf("  respawn_delay: %.2f\n", bestParams[0])
	fmt.Println("movement:")
	fmt.Printf("  speed_scale: %.2f\n", bestParams[1])
	fmt.Println("behavior:")
	fmt.Printf("  wander_radius: %.3f\n", bestParams[2])
}
