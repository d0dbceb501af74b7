// Command yieldcsv runs the record pipeline once and prints the dataset the
// dashboard would serve as JSON.
//
//	yieldcsv -file output/yields_2024q2.csv
//	yieldcsv -dir output -meta
//	yieldcsv -version
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"yieldboard/internal/config"
	"yieldboard/internal/dataprocessing"
	"yieldboard/internal/files"
	"yieldboard/internal/infrastructure"
	"yieldboard/internal/services"
	"yieldboard/pkg/contracts"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code: 0 on success, 1 when the dataset cannot
// be produced, 2 on bad usage.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("yieldcsv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fs.String("file", "", "source file to read (overrides -dir)")
	dir := fs.String("dir", "", "data directory; the newest .csv is read (defaults to the configured data dir)")
	metaOnly := fs.Bool("meta", false, "print only the metadata block")
	level := fs.String("log-level", "warn", "log level written to stderr")
	version := fs.Bool("version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		return 2
	}
	if *version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return 0
	}

	logger := infrastructure.NewLoggerWithWriter(config.LoggingConfig{Level: *level, Format: "text"}, stderr)

	dataDir, mode, fileName, err := sourceFromFlags(*file, *dir)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	resolver, err := files.NewSourceResolver(dataDir, mode, fileName, logger)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	svc := services.NewDataService(resolver, dataprocessing.NewPipeline(logger), logger)
	ctx := infrastructure.EnsureTraceID(context.Background())
	resp, err := svc.GetData(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", describe(err))
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	var out interface{} = resp
	if *metaOnly {
		out = resp.Meta
	}
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// sourceFromFlags maps -file and -dir onto a resolver configuration. With
// neither flag set the configured source is used.
func sourceFromFlags(file, dir string) (dataDir, mode, fileName string, err error) {
	switch {
	case file != "":
		abs, err := filepath.Abs(file)
		if err != nil {
			return "", "", "", err
		}
		return filepath.Dir(abs), files.ModeFixed, filepath.Base(abs), nil
	case dir != "":
		return dir, files.ModeLatest, "", nil
	}

	cfg, err := config.Load()
	if err != nil {
		return "", "", "", fmt.Errorf("load configuration: %w", err)
	}
	return cfg.Source.DataDir, cfg.Source.Mode, cfg.Source.FileName, nil
}

func describe(err error) string {
	var schemaErr *dataprocessing.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		return fmt.Sprintf("missing columns: %v", schemaErr.Missing)
	case errors.Is(err, dataprocessing.ErrSourceNotFound):
		return fmt.Sprintf("source file not found (%v)", err)
	default:
		return err.Error()
	}
}
