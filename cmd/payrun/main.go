package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/uuid"

	"github.com/mmynk/payrun/internal/csvio"
	"github.com/mmynk/payrun/internal/metrics"
	"github.com/mmynk/payrun/internal/processor"
	"github.com/mmynk/payrun/pkg/logging"
)

func main() {
	var (
		metricsAddr string
		quiet       bool
	)
	flag.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address for the duration of the run")
	flag.BoolVar(&quiet, "q", false, "only log errors")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: payrun [flags] <transactions.csv>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if quiet {
		logging.SetupWithLevel(slog.LevelError)
	} else {
		logging.Setup()
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	// Tag every log line with a run ID so interleaved runs stay separable.
	slog.SetDefault(slog.Default().With("run_id", uuid.NewString()))

	m := metrics.New()
	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		go func() {
			slog.Info("Metrics server starting", "address", metricsAddr)
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				slog.Error("Metrics server failed", "error", err)
			}
		}()
	}

	f, err := os.Open(path)
	if err != nil {
		slog.Error("Failed to open transactions file", "path", path, "error", err)
		os.Exit(1)
	}

	txs, err := csvio.ReadTransactions(f)
	f.Close()
	if err != nil {
		slog.Error("Failed to parse transactions", "path", path, "error", err)
		os.Exit(1)
	}
	slog.Info("Transactions loaded", "path", path, "records", len(txs))

	result := processor.New(m).Process(txs)
	slog.Info("Replay complete",
		"accounts", len(result.Accounts),
		"unresolved", len(result.Unresolved),
	)

	if err := csvio.WriteAccounts(os.Stdout, result.Accounts); err != nil {
		slog.Error("Failed to write account snapshot", "error", err)
		os.Exit(1)
	}
}
