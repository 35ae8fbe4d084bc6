package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/alfredjeanlab/runline/internal/history"
	"github.com/alfredjeanlab/runline/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printHistoryTable(events []*history.Event) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTYPE\tRUN\tJOB")
	for _, ev := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			ev.EventTime.Local().Format(time.DateTime),
			ui.RenderEventType(ev.EventType),
			ui.RenderAccent(ev.RunID),
			ev.JobNamespace+"/"+ev.JobName,
		)
	}
	w.Flush()
	fmt.Printf("\n%d events\n", len(events))
}
