package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/xor-shift/rngeasy/common"
	"github.com/xor-shift/rngeasy/ingest"
	"github.com/xor-shift/rngeasy/stats"
	"github.com/xor-shift/rngeasy/store"
	"github.com/xor-shift/rngeasy/util/rng"
)

type globals struct {
	out    io.Writer
	logger *log.Logger
}

type VectorsCmd struct {
	Seed   uint32 `name:"seed" short:"s" default:"0" help:"Seed to expand"`
	N      int    `name:"n" short:"n" default:"20" help:"Number of raw outputs"`
	Format string `name:"format" short:"f" enum:"csv,json" default:"csv" help:"Data format"`
}

func (c *VectorsCmd) Run(g *globals) error {
	if c.N < 0 {
		return errors.Errorf("negative output count %d", c.N)
	}

	state := rng.Seed(c.Seed)
	outputs := make([]uint32, c.N)
	for i := range outputs {
		outputs[i] = state.Advance()
	}

	return writeVectors(g.out, c.Format, outputs)
}

type ShuffleCmd struct {
	Count uint32 `name:"count" short:"c" required:"" help:"Number of indices to permute"`
	Seed  uint32 `name:"seed" short:"s" default:"0" help:"Permutation seed"`
}

func (c *ShuffleCmd) Run(g *globals) error {
	if c.Count == 0 {
		return errors.New("count must be positive")
	}

	return json.NewEncoder(g.out).Encode(rng.NewShuffler(c.Count, c.Seed).Permutation())
}

type SampleCmd struct {
	Seed uint32 `name:"seed" short:"s" default:"0" help:"Seed of the stream"`
	Op   string `name:"op" short:"o" required:"" help:"Operation to sample"`
	Args string `name:"args" short:"a" default:"{}" help:"Operation arguments as a JSON object"`
	N    int    `name:"n" short:"n" default:"10" help:"Number of samples"`
}

func (c *SampleCmd) Run(g *globals) error {
	var rawArgs map[string]any
	if err := json.Unmarshal([]byte(c.Args), &rawArgs); err != nil {
		return errors.Wrap(err, "parsing --args")
	}

	parsed, err := common.DecodeArgs(c.Op, rawArgs)
	if err != nil {
		return err
	}

	return sample(g.out, rng.Seed(c.Seed), c.Op, parsed, c.N)
}

func sample(w io.Writer, state rng.State, op common.Operation, parsed any, n int) error {
	for i := 0; i < n; i++ {
		words, err := ingest.Replay(&state, op, parsed)
		if err != nil {
			return err
		}

		if _, err = fmt.Fprintln(w, formatWords(op, words)); err != nil {
			return err
		}
	}

	return nil
}

type CheckCmd struct {
	Seed   uint32 `name:"seed" short:"s" default:"0" help:"Seed of the stream"`
	Trials int    `name:"trials" short:"t" default:"1000000" help:"Trials per check"`
}

func (c *CheckCmd) Run(g *globals) error {
	checks := stats.Run(c.Seed, c.Trials)

	for _, check := range checks {
		status := "PASS"
		if !check.OK {
			status = "FAIL"
		}
		_, _ = fmt.Fprintf(g.out, "%s %s: %s\n", status, check.Name, check.Detail)
	}

	if failed := stats.Failed(checks); len(failed) != 0 {
		return errors.Errorf("%d of %d checks failed", len(failed), len(checks))
	}

	return nil
}

type ExportCmd struct {
	Session            uint64 `name:"session" short:"s" help:"session number to export" required:""`
	Out                string `name:"out" short:"o" default:"session_{{.SessionNo}}.csv" help:"File to output to (templated)"`
	Format             string `name:"format" short:"f" enum:"csv,json" default:"csv" help:"Data format"`
	ExportColumnTitles bool   `name:"export_column_titles" negatable:"" default:"true" help:"(applicable only to CSV outputs) whether to include column titles for CSV exports"`
	Env                string `name:"env" default:".env" help:"dotenv file with the database settings"`
}

func (c *ExportCmd) Run(g *globals) error {
	cfg, err := common.LoadConfig(c.Env)
	if err != nil {
		return err
	}

	db, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := db.Verdicts(context.Background(), c.Session)
	if err != nil {
		return err
	}

	outFile, err := outFileName(c.Out, c.Session)
	if err != nil {
		return err
	}

	f, err := os.Create(outFile)
	if err != nil {
		return errors.Wrapf(err, "creating the output file %q", outFile)
	}
	defer f.Close()

	if err = writeVerdicts(f, c.Format, rows, c.ExportColumnTitles); err != nil {
		return errors.Wrapf(err, "writing %q", outFile)
	}

	g.logger.Info("exported session", "session", c.Session, "rows", len(rows), "file", outFile)
	return f.Close()
}

type cli struct {
	LogLevel string `name:"log-level" default:"info" help:"Log level"`

	Vectors VectorsCmd `cmd:"" help:"Print the raw outputs of a seeded stream."`
	Shuffle ShuffleCmd `cmd:"" help:"Print a seeded permutation."`
	Sample  SampleCmd  `cmd:"" help:"Print samples of a distribution operation."`
	Check   CheckCmd   `cmd:"" help:"Run the statistical checks."`
	Export  ExportCmd  `cmd:"" help:"Export the stored verdicts of a session."`
}

func main() {
	var args cli
	ctx := kong.Parse(&args,
		kong.Name("rngeasy"),
		kong.Description("Deterministic xoroshiro64** streams and their verification records."))

	g := &globals{
		out:    os.Stdout,
		logger: common.NewLogger("rngeasy", args.LogLevel),
	}

	ctx.FatalIfErrorf(ctx.Run(g))
}
