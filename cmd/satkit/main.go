// Command satkit reads a DIMACS CNF instance and reports its satisfiability
// using either the CDCL or the DPLL engine.
package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/alexflint/go-arg"

	"github.com/satkit/cdcl/cdcl"
	"github.com/satkit/cdcl/cdcl/branch"
	"github.com/satkit/cdcl/cdcl/deletion"
	"github.com/satkit/cdcl/cdcl/restart"
	"github.com/satkit/cdcl/cnf"
	"github.com/satkit/cdcl/dpll"
	"github.com/satkit/cdcl/preprocess"
	"github.com/satkit/cdcl/solution"
)

type config struct {
	Instance string `arg:"positional,required" help:"path to a DIMACS CNF instance"`

	Engine   string `arg:"--engine" default:"cdcl" help:"solving engine: cdcl or dpll"`
	Brancher string `arg:"--brancher" default:"vsids" help:"cdcl: vsids, naive; dpll: naive, dlis, dlcs, jw, mom"`
	Restart  string `arg:"--restart" default:"luby" help:"cdcl restart policy: never, fixed, geometric, luby"`
	Deletion string `arg:"--deletion" default:"berkmin" help:"cdcl deletion policy: none, berkmin"`

	NoPreprocess bool `arg:"--no-preprocess" help:"skip tautology/subsumption/NiVER preprocessing"`

	MaxConflicts int64         `arg:"--max-conflicts" default:"-1" help:"conflict budget, <0 disables it (cdcl only)"`
	Timeout      time.Duration `arg:"--timeout" default:"0s" help:"wall-clock budget, 0 disables it"`

	ProgressPeriod int    `arg:"--progress-period" default:"0" help:"iterations between progress lines (cdcl; dpll writes one line per iteration), 0 disables progress output"`
	ProofTrace     string `arg:"--proof-trace" help:"write a DRUP-style proof trace to this path (cdcl only)"`

	CPUProfile string `arg:"--cpuprofile" help:"write a pprof CPU profile to this path"`
	MemProfile string `arg:"--memprofile" help:"write a pprof heap profile to this path"`
}

func (config) Description() string {
	return "satkit solves a DIMACS CNF instance with a CDCL or DPLL SAT solver."
}

func main() {
	var cfg config
	arg.MustParse(&cfg)

	if err := run(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "satkit: %s\n", err)
		os.Exit(1)
	}

	if cfg.MemProfile != "" {
		f, err := os.Create(cfg.MemProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "satkit: could not create mem profile: %s\n", err)
			os.Exit(1)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}

func run(cfg *config) error {
	if cfg.CPUProfile != "" {
		f, err := os.Create(cfg.CPUProfile)
		if err != nil {
			return fmt.Errorf("could not create cpu profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start cpu profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	f, err := cnf.ParseDIMACSFile(cfg.Instance)
	if err != nil {
		return fmt.Errorf("could not parse instance: %w", err)
	}
	fmt.Printf("c variables:  %d\n", f.NumVars)
	fmt.Printf("c clauses:    %d\n", f.NumClauses())

	pre := preprocessorFor(cfg)
	preprocessed, err := pre.Preprocess(f)
	if err != nil {
		return fmt.Errorf("could not preprocess instance: %w", err)
	}

	start := time.Now()
	var sol solution.Solution
	var conflicts int64
	switch cfg.Engine {
	case "cdcl":
		sol, conflicts, err = runCDCL(cfg, preprocessed)
	case "dpll":
		sol, err = runDPLL(cfg, preprocessed)
	default:
		err = fmt.Errorf("unknown engine %q: want cdcl or dpll", cfg.Engine)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	sol = pre.Restore(sol)

	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	if cfg.Engine == "cdcl" {
		fmt.Printf("c conflicts:  %d (%.2f /sec)\n", conflicts, float64(conflicts)/elapsed.Seconds())
	}
	return solution.WriteDIMACS(os.Stdout, sol)
}

// preprocessorFor returns the composed preprocessing pipeline for cfg, or the
// identity (an empty List) if preprocessing was disabled.
func preprocessorFor(cfg *config) preprocess.Preprocessor {
	if cfg.NoPreprocess {
		return preprocess.List(nil)
	}
	return preprocess.List{
		preprocess.RemoveTautology{},
		preprocess.SelfSubsumption{},
		preprocess.NewNiVER(),
	}
}

func runCDCL(cfg *config, f *cnf.CNF) (solution.Solution, int64, error) {
	b, err := cdclBrancher(cfg.Brancher)
	if err != nil {
		return solution.Solution{}, 0, err
	}
	r, err := restartPolicy(cfg.Restart)
	if err != nil {
		return solution.Solution{}, 0, err
	}
	d, err := deletionPolicy(cfg.Deletion)
	if err != nil {
		return solution.Solution{}, 0, err
	}

	var proofTrace *os.File
	if cfg.ProofTrace != "" {
		proofTrace, err = os.Create(cfg.ProofTrace)
		if err != nil {
			return solution.Solution{}, 0, fmt.Errorf("could not create proof trace: %w", err)
		}
		defer proofTrace.Close()
	}

	opts := cdcl.Options{
		Brancher:       b,
		Restart:        r,
		Deletion:       d,
		MaxConflicts:   cfg.MaxConflicts,
		Timeout:        cfg.Timeout,
		ProgressPeriod: cfg.ProgressPeriod,
	}
	if cfg.ProgressPeriod > 0 {
		opts.Progress = os.Stdout
	}
	if proofTrace != nil {
		opts.ProofTrace = proofTrace
	}

	s, err := cdcl.NewSolver(f.NumVars, opts)
	if err != nil {
		return solution.Solution{}, 0, err
	}
	for _, c := range f.Clauses {
		s.AddClause(c)
	}
	sol, err := s.Solve(f)
	if err != nil {
		return solution.Solution{}, 0, err
	}
	return sol, s.TotalConflicts, nil
}

func runDPLL(cfg *config, f *cnf.CNF) (solution.Solution, error) {
	b, err := dpllBrancher(cfg.Brancher)
	if err != nil {
		return solution.Solution{}, err
	}
	opts := dpll.Options{
		Brancher: b,
		Timeout:  cfg.Timeout,
	}
	if cfg.ProgressPeriod > 0 {
		opts.Progress = os.Stdout
	}
	s, err := dpll.NewSolver(f, opts)
	if err != nil {
		return solution.Solution{}, err
	}
	return s.Solve()
}

func cdclBrancher(name string) (cdcl.Brancher, error) {
	switch name {
	case "vsids", "":
		return branch.NewVSIDS(0), nil
	case "naive":
		return branch.Naive{}, nil
	default:
		return nil, fmt.Errorf("unknown cdcl brancher %q: want vsids or naive", name)
	}
}

func dpllBrancher(name string) (dpll.Brancher, error) {
	switch name {
	case "naive", "":
		return dpll.Naive{}, nil
	case "dlis":
		return dpll.DLIS{}, nil
	case "dlcs":
		return dpll.DLCS{}, nil
	case "jw":
		return dpll.JeroslawWang{}, nil
	case "mom":
		return dpll.MOM{}, nil
	default:
		return nil, fmt.Errorf("unknown dpll brancher %q: want naive, dlis, dlcs, jw or mom", name)
	}
}

func restartPolicy(name string) (cdcl.RestartPolicy, error) {
	switch name {
	case "luby", "":
		return restart.NewLuby(100), nil
	case "never":
		return restart.Never{}, nil
	case "fixed":
		return restart.NewFixed(700), nil
	case "geometric":
		return restart.NewGeometric(100, 150), nil
	default:
		return nil, fmt.Errorf("unknown restart policy %q: want never, fixed, geometric or luby", name)
	}
}

func deletionPolicy(name string) (cdcl.DeletionPolicy, error) {
	switch name {
	case "berkmin", "":
		return deletion.NewBerkMin(), nil
	case "none":
		return deletion.NoDeletion{}, nil
	default:
		return nil, fmt.Errorf("unknown deletion policy %q: want none or berkmin", name)
	}
}
