package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/payvue/paydesk/internal/app/service/normalizer"
	"github.com/payvue/paydesk/internal/platform/db"
	"github.com/payvue/paydesk/internal/platform/store"
	cfgpkg "github.com/payvue/paydesk/pkg/config"
	"github.com/payvue/paydesk/pkg/logger"
)

func main() {
	var (
		input   = flag.String("input", "payment_information.csv", "Path to the CSV file to import")
		replace = flag.Bool("replace", false, "Acknowledge that the import replaces the entire payment collection")
	)
	flag.Parse()

	if !*replace {
		fmt.Fprintln(os.Stderr, "refusing to run: the import drops and replaces every stored payment.")
		fmt.Fprintln(os.Stderr, "Stop API write traffic first, then re-run with -replace.")
		os.Exit(1)
	}

	cfg, err := cfgpkg.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	log = log.With("component", "normalizer")

	gdb, err := db.NewDB(log, cfg)
	if err != nil {
		os.Exit(1)
	}
	if err := db.AutoMigrate(log, gdb); err != nil {
		os.Exit(1)
	}

	f, err := os.Open(*input)
	if err != nil {
		log.Errorw("failed to open input file", "path", *input, "err", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := normalizer.ReadRows(f)
	if err != nil {
		log.Errorw("failed to parse input", "path", *input, "err", err)
		os.Exit(1)
	}

	log.Warnw("replacing payment collection", "rows", len(rows))

	n := normalizer.New(log, store.NewPaymentStore(gdb))
	sum, err := n.Normalize(context.Background(), rows)
	if err != nil {
		log.Errorw("import failed", "err", err)
		os.Exit(1)
	}
	log.Infow("import complete", "inserted", sum.Inserted, "dropped", sum.Dropped)
}
