// SPDX-License-Identifier: EPL-2.0

// Command sf2pack packs a directory of audio samples into a SoundFont 2 bank.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ik5/sf2pack"
	"github.com/ik5/sf2pack/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

type rootFlags struct {
	configPath  string
	output      string
	mode        string
	onError     string
	limitPolicy string
	workers     int
	formats     []string
	verify      bool
	verbose     bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "sf2pack <directory>",
		Short: "Pack a directory of audio samples into a SoundFont 2 bank",
		Long: `sf2pack reads every sample in a directory, in name order, and writes a
SoundFont 2 bank with one preset per sample. Preset names come from the
file names; program numbers follow the sorted order.

Settings come from the YAML file given by --config, then SF2PACK_*
environment variables, then flags.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Argument errors above still get cobra's usage and error lines;
			// from here on runPack logs the failure itself.
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			return runPack(cmd, &flags, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.configPath, "config", "c", "", "path to a YAML configuration file")
	f.StringVarP(&flags.output, "output", "o", "", "output SF2 file (default output.sf2)")
	f.StringVar(&flags.mode, "mode", "", "input validation: strict or lenient")
	f.StringVar(&flags.onError, "on-error", "", "per-file failure policy: skip or abort")
	f.StringVar(&flags.limitPolicy, "limit-policy", "", "more than 128 samples: cap or wrap")
	f.IntVarP(&flags.workers, "workers", "j", 0, "number of files decoded in parallel")
	f.StringSliceVar(&flags.formats, "formats", nil, "accepted extensions (wav, aif, aiff, mp3, ogg)")
	f.BoolVar(&flags.verify, "verify", false, "read the bank back after writing it")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newInspectCmd())

	return cmd
}

func runPack(cmd *cobra.Command, flags *rootFlags, dir string) error {
	logger := newLogger(cmd.ErrOrStderr(), flags.verbose)
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		logger.Error("loading configuration failed", zap.String("config", flags.configPath), zap.Error(err))
		return err
	}
	flags.apply(cmd, cfg)

	res, err := sf2pack.Run(cmd.Context(), cfg, dir, logger)
	if err != nil {
		logger.Error("packing failed", zap.String("dir", dir), zap.Error(err))
		return err
	}

	if len(res.Skipped) > 0 || len(res.Rejected) > 0 {
		logger.Info("some samples were left out",
			zap.Int("candidates", res.Candidates),
			zap.Int("skipped", len(res.Skipped)),
			zap.Int("rejected", len(res.Rejected)),
		)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s with %d presets\n", res.Output, res.Presets)

	return nil
}

// apply copies the flags the user set over cfg.
func (f *rootFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed

	if changed("output") {
		cfg.Output = f.output
	}
	if changed("mode") {
		cfg.Load.Mode = f.mode
	}
	if changed("on-error") {
		cfg.Assemble.OnError = f.onError
	}
	if changed("limit-policy") {
		cfg.Assemble.LimitPolicy = f.limitPolicy
	}
	if changed("workers") {
		cfg.Assemble.Workers = f.workers
	}
	if changed("formats") {
		cfg.Load.Formats = f.formats
	}
	if changed("verify") {
		cfg.Verify = f.verify
	}
}

// newLogger builds a console logger on w; Info level unless verbose.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		level,
	)

	return zap.New(core)
}
