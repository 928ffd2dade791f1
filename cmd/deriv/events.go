package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/derivlab/go-deriv/dfa"
	"github.com/derivlab/go-deriv/eventlog"
)

func events(args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	db := fs.String("db", "", "SQLite database to persist the event stream (default in-memory)")
	export := fs.String("export", "", "Export the stream as JSONL to this file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: deriv events <language> [options]

Compile a built-in language while recording every build step to an
event stream, then print the timeline.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Print the build timeline
  deriv events a-star-b

  # Persist the stream and export it
  deriv events a-star-b --db builds.db --export build.jsonl
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("language name required")
	}

	sample, err := lookupLanguage(fs.Arg(0))
	if err != nil {
		return err
	}

	var store eventlog.Store
	if *db != "" {
		s, err := eventlog.NewSQLiteStore(*db)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		store = s
	} else {
		store = eventlog.NewMemoryStore()
	}
	defer store.Close()

	recorder := eventlog.NewRecorder(store)
	m, err := dfa.NewBuilder([]rune(sample.Alphabet)).
		WithRecorder(recorder).
		Build(sample.Lang)
	if err != nil {
		return fmt.Errorf("compile %s: %w", sample.Name, err)
	}
	if err := recorder.Err(); err != nil {
		return fmt.Errorf("record build: %w", err)
	}

	ctx := context.Background()
	recorded, err := store.Read(ctx, recorder.Stream(), 0)
	if err != nil {
		return fmt.Errorf("read stream: %w", err)
	}

	fmt.Printf("Build of %s: %d states, %d events on stream %s\n",
		sample.Name, m.StateCount(), len(recorded), recorder.Stream())
	for _, ev := range recorded {
		fmt.Printf("  [%3d] %-22s %v\n", ev.Seq, ev.Type, ev.Data)
	}

	if *export != "" {
		if err := eventlog.ExportJSONL(ctx, store, *export); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Printf("✓ Exported to %s\n", *export)
	}
	return nil
}
