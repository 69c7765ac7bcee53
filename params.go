package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/trelloqa/trello-contract-tests/framework"

	"github.com/alessio/shellescape"
	"github.com/joho/godotenv"
)

const (
	defaultProbeTimeout   = time.Second * 10
	defaultRequestTimeout = time.Second * 30
)

type commandParams struct {
	host           string
	key            string
	token          string
	schemasDir     string
	filters        framework.RegexFilters
	clean          bool
	requestTimeout time.Duration
	debug          bool
	debugAll       bool
}

// Read loads the .env file, if any, then parses the command line. Values from the environment
// are the defaults for the corresponding flags.
func (c *commandParams) Read(args []string) bool {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Could not read .env file: %s\n", err)
		return false
	}

	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.StringVar(&c.host, "host", envOr("TRELLO_HOST", "HOST"), "Trello API base URL (default https://api.trello.com)")
	fs.StringVar(&c.schemasDir, "schemas", "", "directory of JSON schema files to use instead of the built-in ones")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.clean, "clean", false, "delete ALL boards of the member before running tests")
	fs.DurationVar(&c.requestTimeout, "timeout", defaultRequestTimeout, "timeout for each API request")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	c.key = envOr("TRELLO_KEY", "KEY")
	c.token = envOr("TRELLO_TOKEN", "TOKEN")
	if c.key == "" || c.token == "" {
		fmt.Fprintln(os.Stderr, "TRELLO_KEY and TRELLO_TOKEN must be set in the environment or in a .env file")
		fs.Usage()
		return false
	}
	return true
}

// rerunCommand returns a command line that runs only the failed tests again, keeping every
// other parameter of this run.
func (c *commandParams) rerunCommand(program string, failures []framework.TestResult) string {
	var b commandBuilder
	b.add(program)
	if c.host != "" {
		b.add("-host", c.host)
	}
	if c.schemasDir != "" {
		b.add("-schemas", c.schemasDir)
	}
	for _, f := range failures {
		b.add("-run", framework.ExactMatchPattern(f.TestID))
	}
	if c.requestTimeout != 0 && c.requestTimeout != defaultRequestTimeout {
		b.add("-timeout", c.requestTimeout.String())
	}
	if c.debugAll {
		b.add("-debug-all")
	} else if c.debug {
		b.add("-debug")
	}
	return b.String()
}

func envOr(names ...string) string {
	for _, name := range names {
		if value := os.Getenv(name); value != "" {
			return value
		}
	}
	return ""
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
