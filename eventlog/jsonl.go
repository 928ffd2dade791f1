package eventlog

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteJSONL writes events to w as JSON Lines, one event per line.
func WriteJSONL(w io.Writer, events []*Event) error {
	enc := json.NewEncoder(w)
	for _, e := range events {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("encoding event %s: %w", e.ID, err)
		}
	}
	return nil
}

// ReadJSONL parses events from a JSON Lines reader. Blank lines are
// skipped; any malformed line is an error naming its line number.
func ReadJSONL(r io.Reader) ([]*Event, error) {
	var out []*Event
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Event
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		out = append(out, &e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading: %w", err)
	}
	return out, nil
}

// ExportJSONL writes every stream of a store to a JSONL file.
func ExportJSONL(ctx context.Context, store Store, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	streams, err := store.Streams(ctx)
	if err != nil {
		return err
	}
	for _, stream := range streams {
		events, err := store.Read(ctx, stream, 0)
		if err != nil {
			return err
		}
		if err := WriteJSONL(f, events); err != nil {
			return err
		}
	}
	return nil
}
