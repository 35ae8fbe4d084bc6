package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/runline/internal/archive"
	"github.com/alfredjeanlab/runline/internal/artifact"
	"github.com/alfredjeanlab/runline/internal/config"
	"github.com/alfredjeanlab/runline/internal/events"
	"github.com/alfredjeanlab/runline/internal/lineage"
	"github.com/alfredjeanlab/runline/internal/runner"
	"github.com/alfredjeanlab/runline/internal/ui"
)

var wrapResultsPath string

var wrapCmd = &cobra.Command{
	Use:   "wrap [flags] -- <tool> [args...]",
	Short: "Run a tool and emit lineage events for the invocation",
	Long: `Runs the given tool with pass-through stdio, emits a START event before
the invocation, and on success parses the tool's run-result artifact into
per-result events followed by a COMPLETE (or FAIL) event.

If the run-result file is missing, or was not written after the invocation
started, no further events are emitted; the tool's exit code is still
propagated.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWrap,
}

func init() {
	wrapCmd.Flags().StringVar(&wrapResultsPath, "results", artifact.DefaultPath, "path to the tool's run-result file")
}

func runWrap(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	pipeline, cleanup, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	// finish propagates a non-zero child exit code. Cleanup runs first since
	// os.Exit skips deferred calls; both closes are idempotent.
	finish := func(code int) {
		if code != 0 {
			cleanup()
			os.Exit(code)
		}
	}

	jobName := cfg.JobName
	if jobName == "" {
		jobName = filepath.Base(args[0])
	}
	job := lineage.Job{Namespace: cfg.Namespace, Name: jobName}

	var parent *lineage.ParentRun
	if cfg.ParentID != "" {
		parent, err = lineage.ParseParentID(cfg.ParentID)
		if err != nil {
			return err
		}
	}

	runID, err := lineage.NewRunID()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	start := lineage.NewRunEvent(lineage.EventStart, time.Now(), runID, job, parent)
	if err := pipeline.Emit(ctx, events.TopicRunStart, start); err != nil {
		return fmt.Errorf("emit start event: %w", err)
	}
	fmt.Fprintf(os.Stderr, "runline: started %s as run %s\n", jobName, ui.RenderAccent(runID))

	res, err := runner.Run(ctx, args)
	if err != nil {
		return err
	}

	rr, err := artifact.Load(wrapResultsPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintf(os.Stderr, "runline: no run results at %s, skipping lineage\n", wrapResultsPath)
		finish(res.ExitCode)
		return nil
	case err != nil:
		return err
	}

	if !rr.Fresh(res.StartedAt) {
		fmt.Fprintf(os.Stderr, "runline: run results at %s predate this invocation, skipping lineage\n", wrapResultsPath)
		finish(res.ExitCode)
		return nil
	}

	resultEvents, err := rr.Events(runID, job)
	if err != nil {
		return err
	}
	for _, ev := range resultEvents {
		if err := pipeline.Emit(ctx, events.TopicRunResult, ev); err != nil {
			return fmt.Errorf("emit result event: %w", err)
		}
	}

	final := lineage.EventComplete
	if res.ExitCode != 0 {
		final = lineage.EventFail
	}
	end := lineage.NewRunEvent(final, time.Now(), runID, job, parent)
	if err := pipeline.Emit(ctx, events.TopicForType(final), end); err != nil {
		return fmt.Errorf("emit %s event: %w", final, err)
	}
	fmt.Fprintf(os.Stderr, "runline: emitted %d events for run %s (%s)\n",
		len(resultEvents)+2, ui.RenderAccent(runID), ui.RenderEventType(string(final)))

	archiveArtifact(cmd, cfg, runID)

	finish(res.ExitCode)
	return nil
}

// archiveArtifact uploads the run-result file to S3 when configured.
// Best effort: failures are reported but never change the exit code.
func archiveArtifact(cmd *cobra.Command, cfg *config.Config, runID string) {
	if cfg.ArchiveS3Bucket == "" {
		return
	}
	ctx := cmd.Context()
	dst, err := archive.NewS3Archive(ctx, cfg.ArchiveS3Bucket, cfg.ArchiveS3Prefix, cfg.ArchiveS3Region, cfg.ArchiveS3Endpoint)
	if err != nil {
		fmt.Fprintf(os.Stderr, "runline: artifact archive unavailable: %v\n", err)
		return
	}
	if err := dst.StoreFile(ctx, runID, wrapResultsPath); err != nil {
		fmt.Fprintf(os.Stderr, "runline: artifact archive failed: %v\n", err)
	}
}
