package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"

	"github.com/dvloznov/fio-export/fio"
	"github.com/dvloznov/fio-export/internal/archive"
	"github.com/dvloznov/fio-export/internal/bqstore"
	"github.com/dvloznov/fio-export/internal/export"
	"github.com/dvloznov/fio-export/internal/logger"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "transactions":
		runTransactions(log)
	case "new":
		runNew(log)
	case "statement":
		runStatement(log)
	case "set-last-id":
		runSetLastID(log)
	case "set-last-date":
		runSetLastDate(log)
	case "export":
		runExport(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Fio transaction export CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  transactions   Fetch transactions for a date range")
	fmt.Println("  new            Fetch transactions since the last download")
	fmt.Println("  statement      Fetch one account statement by year and number")
	fmt.Println("  set-last-id    Move the download pointer to a transaction id")
	fmt.Println("  set-last-date  Move the download pointer to a date")
	fmt.Println("  export         Export a date range to GCS and BigQuery")
	fmt.Println("  help           Show this help message")
	fmt.Println("\nThe access token is read from the FIO_TOKEN environment variable.")
	fmt.Println("Run 'cli <command> -h' for more information on a command.")
}

func newClient(log zerolog.Logger) *fio.Client {
	token := os.Getenv("FIO_TOKEN")
	if token == "" {
		log.Fatal().Msg("FIO_TOKEN is not set")
	}
	fetcher := &fio.HTTPFetcher{Client: &http.Client{Timeout: 30 * time.Second}}
	return fio.New(fetcher, fio.JSONDecoder{}, token)
}

func parseDate(log zerolog.Logger, name, value string) civil.Date {
	d, err := civil.ParseDate(value)
	if err != nil {
		log.Fatal().Str(name, value).Msg("date must be YYYY-MM-DD")
	}
	return d
}

func printStatement(log zerolog.Logger, statement *fio.AccountStatement) {
	out, err := json.MarshalIndent(statement, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("could not render statement")
	}
	fmt.Println(string(out))
}

func runTransactions(log zerolog.Logger) {
	fs := flag.NewFlagSet("transactions", flag.ExitOnError)
	from := fs.String("from", "", "start date (YYYY-MM-DD)")
	to := fs.String("to", "", "end date (YYYY-MM-DD)")
	fs.Parse(os.Args[2:])

	if *from == "" || *to == "" {
		log.Fatal().Msg("Usage: cli transactions -from DATE -to DATE")
	}

	ctx := logger.WithContext(context.Background(), log)
	statement, err := newClient(log).Transactions(ctx, parseDate(log, "from", *from), parseDate(log, "to", *to))
	if err != nil {
		log.Fatal().Err(err).Msg("fetching transactions failed")
	}
	printStatement(log, statement)
}

func runNew(log zerolog.Logger) {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	fs.Parse(os.Args[2:])

	ctx := logger.WithContext(context.Background(), log)
	statement, err := newClient(log).NewTransactions(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("fetching new transactions failed")
	}
	printStatement(log, statement)
}

func runStatement(log zerolog.Logger) {
	fs := flag.NewFlagSet("statement", flag.ExitOnError)
	year := fs.Int("year", 0, "statement year")
	number := fs.Int("number", 0, "statement number within the year")
	fs.Parse(os.Args[2:])

	if *year == 0 || *number == 0 {
		log.Fatal().Msg("Usage: cli statement -year YEAR -number N")
	}

	ctx := logger.WithContext(context.Background(), log)
	statement, err := newClient(log).Statement(ctx, *year, *number)
	if err != nil {
		log.Fatal().Err(err).Msg("fetching statement failed")
	}
	printStatement(log, statement)
}

func runSetLastID(log zerolog.Logger) {
	fs := flag.NewFlagSet("set-last-id", flag.ExitOnError)
	id := fs.Int64("id", 0, "transaction id to set the pointer to")
	fs.Parse(os.Args[2:])

	if *id == 0 {
		log.Fatal().Msg("Usage: cli set-last-id -id TRANSACTION_ID")
	}

	ctx := logger.WithContext(context.Background(), log)
	if _, err := newClient(log).SetLastID(ctx, *id); err != nil {
		log.Fatal().Err(err).Msg("setting pointer failed")
	}
	log.Info().Int64("id", *id).Msg("download pointer moved")
}

func runSetLastDate(log zerolog.Logger) {
	fs := flag.NewFlagSet("set-last-date", flag.ExitOnError)
	date := fs.String("date", "", "date to set the pointer to (YYYY-MM-DD)")
	fs.Parse(os.Args[2:])

	if *date == "" {
		log.Fatal().Msg("Usage: cli set-last-date -date DATE")
	}

	ctx := logger.WithContext(context.Background(), log)
	if _, err := newClient(log).SetLastDate(ctx, parseDate(log, "date", *date)); err != nil {
		log.Fatal().Err(err).Msg("setting pointer failed")
	}
	log.Info().Str("date", *date).Msg("download pointer moved")
}

func runExport(log zerolog.Logger) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	from := fs.String("from", "", "start date (YYYY-MM-DD)")
	to := fs.String("to", "", "end date (YYYY-MM-DD)")
	project := fs.String("project", os.Getenv("GCP_PROJECT"), "GCP project id")
	dataset := fs.String("dataset", "fio", "BigQuery dataset")
	bucket := fs.String("bucket", "", "GCS bucket for raw payloads")
	fs.Parse(os.Args[2:])

	if *from == "" || *to == "" || *project == "" || *bucket == "" {
		log.Fatal().Msg("Usage: cli export -from DATE -to DATE -project PROJECT -bucket BUCKET [-dataset DATASET]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	token := os.Getenv("FIO_TOKEN")
	if token == "" {
		log.Fatal().Msg("FIO_TOKEN is not set")
	}

	archiveStore, err := archive.NewStore(ctx, *bucket)
	if err != nil {
		log.Fatal().Err(err).Msg("opening archive failed")
	}
	defer archiveStore.Close()

	runStore, err := bqstore.NewStore(ctx, *project, *dataset)
	if err != nil {
		log.Fatal().Err(err).Msg("opening BigQuery store failed")
	}
	defer runStore.Close()

	fetcher := export.NewCapturingFetcher(&fio.HTTPFetcher{Client: &http.Client{Timeout: 30 * time.Second}})
	client := fio.New(fetcher, fio.JSONDecoder{}, token)

	exporter := export.New(client, fetcher, archiveStore, runStore)
	runID, err := exporter.ExportPeriod(ctx, parseDate(log, "from", *from), parseDate(log, "to", *to))
	if err != nil {
		log.Fatal().Err(err).Str("run_id", runID).Msg("export failed")
	}

	fmt.Printf("Export run %s completed.\n", runID)
}
