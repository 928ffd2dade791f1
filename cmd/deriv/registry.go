package main

import (
	"fmt"
	"sort"

	"github.com/derivlab/go-deriv/regular"
)

// sampleLanguage is a named, programmatically constructed language.
// The tool ships a fixed registry instead of a textual pattern syntax;
// languages are built with the regular package constructors.
type sampleLanguage struct {
	Name        string
	Description string
	Lang        regular.Language
	Alphabet    string
}

var registry = []sampleLanguage{
	{
		Name:        "single-a",
		Description: "exactly the one-character string a",
		Lang:        regular.Ch('a'),
		Alphabet:    "ab",
	},
	{
		Name:        "a-or-b",
		Description: "either a or b, once",
		Lang:        regular.Or(regular.Ch('a'), regular.Ch('b')),
		Alphabet:    "ab",
	},
	{
		Name:        "a-star-b",
		Description: "any number of a followed by a single b",
		Lang:        regular.Cat(regular.Many(regular.Ch('a')), regular.Ch('b')),
		Alphabet:    "ab",
	},
	{
		Name:        "ab-star",
		Description: "zero or more repetitions of ab",
		Lang:        regular.Many(regular.Lit("ab")),
		Alphabet:    "ab",
	},
	{
		Name:        "even-as",
		Description: "an even number of a and nothing else",
		Lang:        regular.Many(regular.Lit("aa")),
		Alphabet:    "a",
	},
	{
		Name:        "binary-even",
		Description: "binary numerals ending in 0",
		Lang: regular.Cat(
			regular.Many(regular.Or(regular.Ch('0'), regular.Ch('1'))),
			regular.Ch('0'),
		),
		Alphabet: "01",
	},
}

func lookupLanguage(name string) (sampleLanguage, error) {
	for _, s := range registry {
		if s.Name == name {
			return s, nil
		}
	}
	return sampleLanguage{}, fmt.Errorf("unknown language %q, run 'deriv languages' for the list", name)
}

func languages(args []string) error {
	names := make([]sampleLanguage, len(registry))
	copy(names, registry)
	sort.Slice(names, func(i, j int) bool { return names[i].Name < names[j].Name })

	fmt.Println("Built-in languages:")
	for _, s := range names {
		fmt.Printf("  %-12s %s  (alphabet %q, form %s)\n",
			s.Name, s.Description, s.Alphabet, regular.Canonical(s.Lang))
	}
	return nil
}
