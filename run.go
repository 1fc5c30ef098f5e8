// SPDX-License-Identifier: EPL-2.0

package sf2pack

import (
	"context"
	"fmt"

	"github.com/ik5/sf2pack/bank"
	"github.com/ik5/sf2pack/internal/config"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result describes a completed run.
type Result struct {
	Output     string
	Presets    int
	Candidates int
	Skipped    []*bank.ItemError
	Rejected   []*bank.ItemError
}

// Run assembles every candidate in dir into one bank and writes it to
// cfg.Output. Per-file failures follow cfg.Assemble.OnError; any other
// failure, including cancellation of ctx, returns before the output file
// is created.
func Run(ctx context.Context, cfg *config.Config, dir string, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	paths, err := Candidates(dir, cfg.Load.Formats, cfg.MinFileSize())
	if err != nil {
		return nil, err
	}
	logger.Info("scanned input directory",
		zap.String("dir", dir),
		zap.Int("candidates", len(paths)),
	)

	loader, err := bank.NewLoader(cfg.LoaderOptions(), logger)
	if err != nil {
		return nil, err
	}
	asm := bank.NewAssembler(cfg.AssemblerOptions(), loader, logger)

	if err := assemble(ctx, asm, paths, cfg.Assemble.Workers); err != nil {
		return nil, err
	}

	b, err := asm.Finalize()
	if err != nil {
		return nil, err
	}

	n, err := WriteFile(cfg.Output, b)
	if err != nil {
		return nil, err
	}

	if cfg.Verify {
		if err := Verify(cfg.Output, b); err != nil {
			return nil, err
		}
		logger.Debug("verified output", zap.String("output", cfg.Output))
	}

	return &Result{
		Output:     cfg.Output,
		Presets:    n,
		Candidates: len(paths),
		Skipped:    asm.Skipped(),
		Rejected:   asm.Rejected(),
	}, nil
}

// assemble prepares candidates on up to workers goroutines and commits
// them on the calling goroutine in index order.
func assemble(ctx context.Context, asm *bank.Assembler, paths []string, workers int) error {
	ctx, cancel := context.WithCancel(ctx)

	results := make([]chan *bank.Item, len(paths))
	for i := range results {
		results[i] = make(chan *bank.Item, 1)
	}

	var g errgroup.Group
	g.SetLimit(max(workers, 1))

	produced := make(chan struct{})
	go func() {
		defer close(produced)

		for i, path := range paths {
			if ctx.Err() != nil {
				return
			}
			g.Go(func() error {
				results[i] <- asm.Prepare(path, i)
				return nil
			})
		}
	}()

	defer func() {
		cancel()
		<-produced
		_ = g.Wait()
	}()

	for i := range paths {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case it := <-results[i]:
			if err := asm.Commit(it); err != nil {
				return err
			}
		}
	}

	return nil
}
