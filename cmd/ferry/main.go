package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/abeckett/ferry/internal/checksum"
	"github.com/abeckett/ferry/internal/config"
	"github.com/abeckett/ferry/internal/engine"
	"github.com/abeckett/ferry/internal/event"
	"github.com/abeckett/ferry/internal/filter"
	"github.com/abeckett/ferry/internal/stats"
	"github.com/abeckett/ferry/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

// excludeFlag is a custom pflag.Value that appends each --exclude pattern
// to a shared filter.Chain as it is parsed.
type excludeFlag struct {
	chain *filter.Chain
}

func (*excludeFlag) String() string { return "" }
func (*excludeFlag) Type() string   { return "string" }

func (f *excludeFlag) Set(val string) error {
	return f.chain.AddExclude(val)
}

//nolint:gocyclo,revive // cyclomatic,cognitive-complexity: main CLI entry point orchestrates all flag parsing
func run() int {
	var (
		modeStr      string
		overwriteStr string
		hashStr      string
		verifyFlag   bool
		dryRun       bool
		quiet        bool
		verbose      bool
		noProgress   bool
		noColor      bool
		showVersion  bool
		minSizeStr   string
		maxSizeStr   string
		bwLimitStr   string
		filterFile   string
		logFile      string
	)

	chain := filter.NewChain()

	rootCmd := &cobra.Command{
		Use:   "ferry [flags] <source> <destination>",
		Short: "Recursive directory transfer with skip policies and checksum verification",
		Args: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(os.Stdout, "ferry %s\n", version)
				return nil
			}

			src, dst := args[0], args[1]

			// Load optional config file.
			cfg, err := config.Load()
			if err != nil {
				slog.Warn("failed to load config", "error", err)
			}
			applyConfigDefaults(cmd, cfg.Defaults,
				&overwriteStr, &verifyFlag, &hashStr, &bwLimitStr,
				&minSizeStr, &maxSizeStr, &noProgress, &noColor)
			for _, pattern := range cfg.Defaults.Exclude {
				if err := chain.AddExclude(pattern); err != nil {
					return fmt.Errorf("config exclude %q: %w", pattern, err)
				}
			}

			// Configure logging. The default level stays at warn on a TTY
			// so records do not fight the status line.
			logLevel := slog.LevelInfo
			if ui.IsTTY(os.Stderr.Fd()) && !noProgress {
				logLevel = slog.LevelWarn
			}
			switch {
			case quiet:
				logLevel = slog.LevelError
			case verbose:
				logLevel = slog.LevelDebug
			}
			textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})
			var logHandler slog.Handler = textHandler
			if logFile != "" {
				lf, lfErr := os.Create(logFile)
				if lfErr != nil {
					return fmt.Errorf("open log file: %w", lfErr)
				}
				defer lf.Close()
				jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})
				logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
			}
			slog.SetDefault(slog.New(logHandler))

			mode, err := engine.ParseMode(modeStr)
			if err != nil {
				return err
			}
			if mode == engine.Move {
				slog.Warn("move mode transfers without removing the source")
			}

			if strings.EqualFold(strings.TrimSpace(overwriteStr), "ask") {
				return errors.New(
					"--overwrite=ask needs an interactive session; use skip, overwrite or smart",
				)
			}
			policy, err := engine.ParseOverwritePolicy(overwriteStr)
			if err != nil {
				return err
			}

			var algo checksum.Algorithm
			if hashStr != "" {
				algo, err = checksum.ParseAlgorithm(hashStr)
				if err != nil {
					return err
				}
			}

			if filterFile != "" {
				if err := chain.LoadFile(filterFile); err != nil {
					return fmt.Errorf("load filter file: %w", err)
				}
			}

			// Parse size filters.
			if minSizeStr != "" {
				n, err := filter.ParseSize(minSizeStr)
				if err != nil {
					return fmt.Errorf("invalid --min-size: %w", err)
				}
				chain.SetMinSize(n)
			}
			if maxSizeStr != "" {
				n, err := filter.ParseSize(maxSizeStr)
				if err != nil {
					return fmt.Errorf("invalid --max-size: %w", err)
				}
				chain.SetMaxSize(n)
			}

			// Parse bandwidth limit.
			var bwLimit int64
			if bwLimitStr != "" {
				bwLimit, err = filter.ParseSize(bwLimitStr)
				if err != nil {
					return fmt.Errorf("invalid --bwlimit: %w", err)
				}
			}

			spec := engine.Spec{
				Source:      src,
				Destination: dst,
				Mode:        mode,
				Policy:      policy,
				Verify:      verifyFlag,
				Algorithm:   algo,
				BWLimit:     bwLimit,
			}
			if !chain.Empty() {
				spec.Filter = chain
			}

			job, err := engine.NewJob(spec)
			if err != nil {
				return err
			}
			if err := job.Plan(); err != nil {
				return err
			}

			slog.Debug("transfer planned",
				"source", src,
				"destination", dst,
				"mode", mode.String(),
				"policy", policy.String(),
				"items", len(job.Items),
				"bytes", job.BytesTotal,
			)

			if dryRun {
				printPlan(os.Stdout, job, src)
				return nil
			}

			collector := stats.NewCollector()
			events := make(chan event.Event, 256)

			// When --log is set, tee events through a logging goroutine that
			// writes structured records before forwarding to the presenter.
			presenterEvents := (<-chan event.Event)(events)
			if logFile != "" {
				teed := make(chan event.Event, 256)
				go func() {
					for ev := range events {
						attrs := []slog.Attr{
							slog.String("type", ev.Type.String()),
							slog.String("path", ev.Path),
							slog.Int64("size", ev.Size),
						}
						if ev.Type == event.ItemCompleted {
							attrs = append(attrs, slog.String("outcome", ev.Outcome.String()))
						}
						if ev.Error != "" {
							attrs = append(attrs, slog.String("error", ev.Error))
						}
						if ev.VerifyFailed {
							attrs = append(attrs, slog.Bool("verify_failed", true))
						}
						slog.LogAttrs(context.Background(), slog.LevelInfo, "ferry.event", attrs...)
						teed <- ev
					}
					close(teed)
				}()
				presenterEvents = teed
			}

			presenter := ui.NewPresenter(ui.Config{
				Writer:     os.Stdout,
				ErrWriter:  os.Stderr,
				Stats:      collector,
				SrcRoot:    src,
				Width:      ui.Width(os.Stderr.Fd()),
				IsTTY:      ui.IsTTY(os.Stderr.Fd()),
				Quiet:      quiet,
				Verbose:    verbose,
				NoProgress: noProgress,
				NoColor:    noColor,
			})

			var presenterErr error
			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				presenterErr = presenter.Run(presenterEvents)
			}()

			obs := engine.MultiObserver(
				stats.NewRecorder(collector),
				engine.NewEventEmitter(events),
			)
			execErr := job.Execute(obs)
			close(events)
			wg.Wait()
			if presenterErr != nil {
				fmt.Fprintf(os.Stderr, "presenter: %v\n", presenterErr)
			}
			if execErr != nil {
				return execErr
			}

			if !quiet {
				if summary := presenter.Summary(); summary != "" {
					fmt.Fprintln(os.Stderr, summary)
				}
			}

			if job.HasFailures() || job.HasVerifyFailures() {
				snap := collector.Snapshot()
				slog.Error("transfer completed with failures",
					"failed", snap.ItemsFailed,
					"mismatched", snap.ItemsVerifyFailed,
				)
				return &exitError{code: 1}
			}
			return nil
		},
	}

	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")

	rootCmd.Flags().StringVar(&modeStr, "mode", "copy", "transfer mode (copy or move)")
	rootCmd.Flags().
		StringVar(&overwriteStr, "overwrite", "skip", "existing-file policy (skip, overwrite or smart)")
	rootCmd.Flags().BoolVar(&verifyFlag, "verify", false, "verify checksums after copy")
	rootCmd.Flags().
		StringVar(&hashStr, "hash", "", "checksum algorithm (crc32, md5, sha256 or blake3; default blake3)")
	rootCmd.Flags().
		Var(&excludeFlag{chain: chain}, "exclude", "exclude files matching PATTERN (repeatable)")
	rootCmd.Flags().StringVar(&filterFile, "filter", "", "read exclude patterns from FILE")
	rootCmd.Flags().
		StringVar(&minSizeStr, "min-size", "", "skip files smaller than SIZE (e.g. 1M, 100K)")
	rootCmd.Flags().
		StringVar(&maxSizeStr, "max-size", "", "skip files larger than SIZE (e.g. 1G, 500M)")
	rootCmd.Flags().StringVar(&bwLimitStr, "bwlimit", "", "bandwidth limit (e.g. 100M, 1G)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be copied without writing")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable progress display")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.Flags().StringVar(&logFile, "log", "", "write structured JSON log to FILE")

	rootCmd.AddCommand(sumCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(docsCmd)

	if err := rootCmd.Execute(); err != nil {
		if exitErr, ok := err.(*exitError); ok {
			return exitErr.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	return 0
}

// printPlan writes the dry-run listing: one line per item with the action
// Execute would take right now.
func printPlan(w io.Writer, job *engine.Job, srcRoot string) {
	var toCopy int64
	var toCopyBytes int64
	for i := range job.Items {
		item := &job.Items[i]
		action := job.WouldCopy(item)
		path := ui.StripRoot(srcRoot, item.Source)
		if item.IsDir {
			fmt.Fprintf(w, "%s  %s/\n", action, path)
		} else {
			fmt.Fprintf(w, "%s  %s  %s\n", action, path, ui.FormatBytes(item.Size))
		}
		if action == engine.ActionCopy && !item.IsDir {
			toCopy++
			toCopyBytes += item.Size
		}
	}
	fmt.Fprintf(w, "plan: %s items, %s files to copy (%s)\n",
		ui.FormatCount(int64(len(job.Items))),
		ui.FormatCount(toCopy),
		ui.FormatBytes(toCopyBytes),
	)
}

// applyConfigDefaults applies config file defaults for flags not
// explicitly set on the CLI.
func applyConfigDefaults(
	cmd *cobra.Command,
	defaults config.DefaultsConfig,
	overwrite *string,
	verify *bool,
	hash *string,
	bwLimit *string,
	minSize *string,
	maxSize *string,
	noProgress *bool,
	noColor *bool,
) {
	if !cmd.Flags().Changed("overwrite") && defaults.Overwrite != nil {
		*overwrite = *defaults.Overwrite
	}
	if !cmd.Flags().Changed("verify") && defaults.Verify != nil {
		*verify = *defaults.Verify
	}
	if !cmd.Flags().Changed("hash") && defaults.Hash != nil {
		*hash = *defaults.Hash
	}
	if !cmd.Flags().Changed("bwlimit") && defaults.BWLimit != nil {
		*bwLimit = *defaults.BWLimit
	}
	if !cmd.Flags().Changed("min-size") && defaults.MinSize != nil {
		*minSize = *defaults.MinSize
	}
	if !cmd.Flags().Changed("max-size") && defaults.MaxSize != nil {
		*maxSize = *defaults.MaxSize
	}
	if !cmd.Flags().Changed("no-progress") && defaults.NoProgress != nil {
		*noProgress = *defaults.NoProgress
	}
	if !cmd.Flags().Changed("no-color") && defaults.NoColor != nil {
		*noColor = *defaults.NoColor
	}
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
