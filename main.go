package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/trelloqa/trello-contract-tests/framework"
	"github.com/trelloqa/trello-contract-tests/logging"
	"github.com/trelloqa/trello-contract-tests/schema"
	"github.com/trelloqa/trello-contract-tests/trelloapi"
	"github.com/trelloqa/trello-contract-tests/trellotests"

	"github.com/rs/zerolog"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	minLevel := zerolog.InfoLevel
	if params.debugAll {
		minLevel = zerolog.DebugLevel
	}
	mainLogger := logging.NewConsoleLogger(os.Stderr, zerolog.DebugLevel, minLevel)
	diagnostics := logging.NewConsoleLogger(os.Stderr, zerolog.WarnLevel, minLevel).WithComponent("schema")

	var registry *schema.Registry
	var err error
	if params.schemasDir == "" {
		registry, err = schema.DefaultRegistry()
	} else {
		registry, err = schema.DirectoryRegistry(params.schemasDir)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Schema error: %s\n", err)
		os.Exit(1)
	}
	mainLogger.Printf("Loaded schemas for: %v", registry.Families())

	api := trelloapi.NewClient(trelloapi.Config{
		BaseURL: params.host,
		Key:     params.key,
		Token:   params.token,
	}, mainLogger.WithComponent("api"))

	ctx := context.Background()
	if _, err := api.Probe(ctx, defaultProbeTimeout, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Trello API error: %s\n", err)
		os.Exit(1)
	}

	if params.clean {
		cleanCtx, cancel := context.WithTimeout(ctx, time.Minute*5)
		count, err := trellotests.DeleteMemberBoards(cleanCtx, api, mainLogger)
		cancel()
		fmt.Printf("Deleted %d existing boards\n", count)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cleanup error: %s\n", err)
			os.Exit(1)
		}
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		Out:                  os.Stdout,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	env := &trellotests.Environment{
		API:            api,
		Validator:      schema.NewValidator(registry, diagnostics),
		RequestTimeout: params.requestTimeout,
	}

	results := trellotests.RunTestSuite(env, params.filters.AsFilter, testLogger)

	fmt.Println()
	PrintResults(os.Stdout, results)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To run only the failed tests again:")
		fmt.Printf("  %s\n", params.rerunCommand(os.Args[0], results.Failures))
		os.Exit(1)
	}
}
