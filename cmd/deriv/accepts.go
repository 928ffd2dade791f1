package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/derivlab/go-deriv/cache"
	"github.com/derivlab/go-deriv/dfa"
)

func accepts(args []string) error {
	fs := flag.NewFlagSet("accepts", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: deriv accepts <language> <input>

Compile a built-in language and run the input string through the
resulting machine. An input using symbols outside the machine's
alphabet is an error, not a rejection.
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("language name and input string required")
	}

	sample, err := lookupLanguage(fs.Arg(0))
	if err != nil {
		return err
	}
	input := fs.Arg(1)

	machines := cache.NewMachineCache(16)
	m, err := machines.GetOrBuild(sample.Lang, []rune(sample.Alphabet))
	if err != nil {
		return fmt.Errorf("compile %s: %w", sample.Name, err)
	}

	ok, err := m.Accepts(input)
	if err != nil {
		if errors.Is(err, dfa.ErrInvalidTransition) {
			return fmt.Errorf("input %q cannot be run on %s: %w", input, sample.Name, err)
		}
		return err
	}

	if ok {
		fmt.Printf("✓ %s accepts %q\n", sample.Name, input)
	} else {
		fmt.Printf("✗ %s rejects %q\n", sample.Name, input)
	}
	return nil
}
