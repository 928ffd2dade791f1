package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "languages":
		if err := languages(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "build":
		if err := build(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "accepts":
		if err := accepts(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "visualize":
		if err := visualize(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "events":
		if err := events(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "prove":
		if err := prove(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("deriv version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`deriv - derivative-based regular language compiler

Usage:
  deriv <command> [options]

Commands:
  languages  List the built-in sample languages
  build      Compile a language to a machine and print its table
  accepts    Run an input string through a compiled machine
  visualize  Generate an SVG or DOT rendering of a machine
  events     Replay the build event log for a language
  prove      Produce a zero-knowledge proof of a machine run
  help       Show this help message
  version    Show version information

Examples:
  # Compile a*b and print the transition table
  deriv build a-star-b

  # Check whether a string is accepted
  deriv accepts a-star-b aab

  # Render the machine
  deriv visualize a-star-b --output machine.svg`)
}
