package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/runline/internal/events"
	"github.com/alfredjeanlab/runline/internal/lineage"
)

var (
	emitType  string
	emitRunID string
	emitJob   string
)

var emitCmd = &cobra.Command{
	Use:   "emit --type start|complete|fail",
	Short: "Construct and emit a single run event",
	Long: `Builds one run event from the configured job identity and posts it to the
collector. Useful for marking runs driven by systems runline cannot wrap.

With --type start and no --run-id, a fresh run identifier is generated and
printed so the matching complete event can reference it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var eventType lineage.EventType
		switch strings.ToLower(emitType) {
		case "start":
			eventType = lineage.EventStart
		case "complete":
			eventType = lineage.EventComplete
		case "fail":
			eventType = lineage.EventFail
		default:
			return fmt.Errorf("unknown event type %q (must be start, complete, or fail)", emitType)
		}

		cfg, err := resolveConfig()
		if err != nil {
			return err
		}

		jobName := emitJob
		if jobName == "" {
			jobName = cfg.JobName
		}
		if jobName == "" {
			return fmt.Errorf("--job or RUNLINE_JOB_NAME is required")
		}
		job := lineage.Job{Namespace: cfg.Namespace, Name: jobName}

		var parent *lineage.ParentRun
		if cfg.ParentID != "" {
			parent, err = lineage.ParseParentID(cfg.ParentID)
			if err != nil {
				return err
			}
		}

		runID := emitRunID
		if runID == "" {
			runID, err = lineage.NewRunID()
			if err != nil {
				return err
			}
		}

		pipeline, cleanup, err := newPipeline(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		ev := lineage.NewRunEvent(eventType, time.Now(), runID, job, parent)
		if err := pipeline.Emit(cmd.Context(), events.TopicForType(eventType), ev); err != nil {
			return err
		}

		if jsonOutput {
			printJSON(ev)
		} else {
			fmt.Println(runID)
		}
		return nil
	},
}

func init() {
	emitCmd.Flags().StringVar(&emitType, "type", "", "event type: start|complete|fail (required)")
	emitCmd.Flags().StringVar(&emitRunID, "run-id", "", "run identifier (default: generated)")
	emitCmd.Flags().StringVar(&emitJob, "job", "", "job name (default: RUNLINE_JOB_NAME)")

	_ = emitCmd.MarkFlagRequired("type")
}
