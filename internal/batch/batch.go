// Package batch converts every workbook of an input directory.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aerissecure/calbin"
	"github.com/aerissecure/calbin/internal/config"
	"github.com/aerissecure/calbin/xlsx"
)

// Summary counts the outcome of a run.
type Summary struct {
	Converted int
	Failed    int
	Skipped   int
}

func (s Summary) String() string {
	return fmt.Sprintf("Converted: %d, Failed: %d, Skipped: %d", s.Converted, s.Failed, s.Skipped)
}

// Input is one workbook to convert.
type Input struct {
	Name string // file name inside the input directory
	Path string
	Stem string // output name without extension
}

// Stem returns name up to its first '.'.
func Stem(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}

// Inputs lists the .xlsx workbooks of dir in name order. Legacy .xls files
// are reported separately.
func Inputs(dir string) (inputs []Input, skipped []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read input directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".xlsx"):
			inputs = append(inputs, Input{Name: name, Path: filepath.Join(dir, name), Stem: Stem(name)})
		case strings.HasSuffix(name, ".xls"):
			skipped = append(skipped, name)
		}
	}
	return inputs, skipped, nil
}

type result struct {
	res calbin.Result
	err error
}

// Runner converts workbooks and writes their outputs.
type Runner struct {
	cfg *config.Config
	log *zap.Logger
}

// NewRunner returns a Runner for cfg.
func NewRunner(cfg *config.Config, log *zap.Logger) *Runner {
	return &Runner{cfg: cfg, log: log}
}

// Run converts every workbook of the input directory.
//
// Each workbook yields <stem>.bin in the output directory. The header
// declarations of all converted workbooks are written, in input order, to a
// single header file. A failing workbook does not stop the others; all
// failures are returned together.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	if err := r.cfg.Validate(); err != nil {
		return sum, err
	}

	inputs, skipped, err := Inputs(r.cfg.InputDir)
	if err != nil {
		return sum, err
	}
	for _, name := range skipped {
		r.log.Warn("Skipping legacy workbook", zap.String("file", name))
	}
	sum.Skipped = len(skipped)

	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return sum, fmt.Errorf("failed to create output directory: %w", err)
	}

	results := make([]result, len(inputs))
	owners := make(map[string]string, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)
	for i, in := range inputs {
		if owner, ok := owners[in.Stem]; ok {
			results[i].err = fmt.Errorf("output %s.bin is already written for %s", in.Stem, owner)
			continue
		}
		owners[in.Stem] = in.Name

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.convert(in)
			results[i] = result{res: res, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sum, err
	}

	var (
		errs   error
		header strings.Builder
	)
	for i, in := range inputs {
		if err := results[i].err; err != nil {
			r.log.Error("Failed to convert workbook", zap.String("file", in.Name), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", in.Name, err))
			sum.Failed++
			continue
		}
		header.WriteString(results[i].res.Header)
		sum.Converted++
	}

	if sum.Converted > 0 {
		path := filepath.Join(r.cfg.OutputDir, r.cfg.HeaderFile)
		if err := os.WriteFile(path, []byte(header.String()), 0o644); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("failed to write header: %w", err))
		} else {
			r.log.Info("Wrote header",
				zap.String("file", path),
				zap.String("size", humanize.Bytes(uint64(header.Len()))),
			)
		}
	}
	return sum, errs
}

func (r *Runner) convert(in Input) (calbin.Result, error) {
	log := r.log.With(zap.String("file", in.Name))
	start := time.Now()
	log.Info("Processing workbook")

	sheet, err := xlsx.Open(in.Path, r.cfg.Sheet)
	if err != nil {
		return calbin.Result{}, err
	}
	log.Debug("Read sheet", zap.String("sheet", sheet.Name), zap.Stringer("columns", sheet.Columns))

	res, err := calbin.Convert(sheet.Rows)
	if err != nil {
		return calbin.Result{}, err
	}

	path := filepath.Join(r.cfg.OutputDir, in.Stem+".bin")
	if err := os.WriteFile(path, res.Binary, 0o644); err != nil {
		return calbin.Result{}, fmt.Errorf("failed to write binary: %w", err)
	}

	log.Info("Converted workbook",
		zap.String("output", path),
		zap.Int("rows", res.Rows),
		zap.Int("fragments", res.Fragments),
		zap.Int("merged", res.Merged),
		zap.String("size", humanize.Bytes(uint64(len(res.Binary)))),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}
