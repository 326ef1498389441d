// File path: cmd/wreslscan/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"wreslscan/internal/api"
	"wreslscan/internal/catalog"
	"wreslscan/internal/common"
	"wreslscan/internal/corpus"
	"wreslscan/internal/report"
	"wreslscan/internal/resolver"
)

func main() {
	logger := common.Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		logger.Debug("wreslscan: .env file not loaded", "error", err)
	}

	outFile := flag.String("o", "", "file path for writing the dependency report to disk")
	silent := flag.Bool("s", false, "suppress displaying the dependency report on the console")
	serveAddr := flag.String("serve", "", "listen address for the HTTP API (e.g. :8081); positional arguments become defaults")
	catalogPath := flag.String("catalog", strings.TrimSpace(os.Getenv("WRESLSCAN_DB")), "path to the SQLite run catalog (empty disables persistence)")
	flag.Usage = usage
	flag.Parse()

	var store *catalog.Store
	if *catalogPath != "" {
		var err error
		store, err = catalog.Open(*catalogPath)
		if err != nil {
			logger.Error("wreslscan: catalog unavailable", "path", *catalogPath, "error", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	if *serveAddr != "" {
		study := flag.Arg(0)
		logger.Info("wreslscan: serving HTTP API", "addr", *serveAddr, "study", study, "catalog", *catalogPath)
		srv := api.NewServer(study, store)
		if err := http.ListenAndServe(*serveAddr, srv); err != nil {
			logger.Error("wreslscan: server stopped", "error", err)
			store.Close()
			os.Exit(1)
		}
		return
	}

	if flag.NArg() < 2 {
		usage()
		os.Exit(2)
	}
	study := strings.Trim(flag.Arg(0), `"`)
	variable := strings.Trim(flag.Arg(1), `"`)

	c, err := corpus.Load(study)
	if err != nil {
		if errors.Is(err, corpus.ErrStudyNotFound) {
			fmt.Fprintf(os.Stderr, "%s not found.\n", study)
		} else {
			logger.Error("wreslscan: study load failed", "error", err)
		}
		os.Exit(1)
	}

	result, err := resolver.Analyze(ctx, c, variable)
	if err != nil {
		logger.Error("wreslscan: analysis failed", "error", err)
		os.Exit(1)
	}
	if !result.Found() {
		fmt.Println(report.NotFound(study, variable))
		return
	}

	rendered := report.Render(study, result)
	if !*silent {
		fmt.Println(rendered)
	}
	if *outFile != "" {
		if err := report.Write(*outFile, rendered); err != nil {
			logger.Error("wreslscan: report write failed", "error", err)
			os.Exit(1)
		}
	}
	if store != nil {
		runID, err := store.SaveResult(ctx, study, result)
		if err != nil {
			logger.Error("wreslscan: catalog save failed", "error", err)
			os.Exit(1)
		}
		logger.Info("wreslscan: run recorded", "run", runID, "variable", variable)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: wreslscan [flags] <study> <variable>

For a given variable, list where it is defined, the variables that feed
directly into it, and the variables that depend on it as input.

Arguments:
  study     absolute or relative path to the study directory
  variable  variable of interest (e.g. "S_SHSTA")

Flags:
`)
	flag.PrintDefaults()
}
