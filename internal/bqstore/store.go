// Package bqstore persists exported transactions and export-run records
// in BigQuery.
package bqstore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
)

const (
	tableTransactions = "transactions"
	tableExportRuns   = "export_runs"
)

// Store holds a shared BigQuery client for one project and dataset.
type Store struct {
	client  *bigquery.Client
	dataset string
}

// NewStore opens a shared BigQuery client.
func NewStore(ctx context.Context, projectID, dataset string) (*Store, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("bqstore: creating client: %w", err)
	}
	return &Store{client: client, dataset: dataset}, nil
}

// Close closes the BigQuery client connection.
func (s *Store) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// InsertTransactions streams a batch of rows into the transactions table.
func (s *Store) InsertTransactions(ctx context.Context, rows []*TransactionRow) error {
	if len(rows) == 0 {
		return nil
	}
	inserter := s.client.Dataset(s.dataset).Table(tableTransactions).Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("bqstore: inserting %d transactions: %w", len(rows), err)
	}
	return nil
}

// StartExportRun creates an export_runs row with status=RUNNING.
func (s *Store) StartExportRun(ctx context.Context, exportRunID string, dateFrom, dateTo civil.Date) error {
	q := s.client.Query(fmt.Sprintf(`
		INSERT %s.%s (export_run_id, date_from, date_to, started_ts, status)
		VALUES (@export_run_id, @date_from, @date_to, @started_ts, @status)
	`, s.dataset, tableExportRuns))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "export_run_id", Value: exportRunID},
		{Name: "date_from", Value: dateFrom},
		{Name: "date_to", Value: dateTo},
		{Name: "started_ts", Value: time.Now()},
		{Name: "status", Value: "RUNNING"},
	}

	if err := s.runQuery(ctx, q); err != nil {
		return fmt.Errorf("bqstore: starting export run %s: %w", exportRunID, err)
	}
	return nil
}

// MarkExportRunSucceeded closes an export run with status=SUCCESS,
// recording where the raw payload was archived and how many transactions
// were inserted.
func (s *Store) MarkExportRunSucceeded(ctx context.Context, exportRunID, rawPayloadURI string, transactionCount int) error {
	q := s.client.Query(fmt.Sprintf(`
		UPDATE %s.%s
		SET status = @status,
		    finished_ts = @finished_ts,
		    raw_payload_uri = @raw_payload_uri,
		    transaction_count = @transaction_count,
		    error_message = ""
		WHERE export_run_id = @export_run_id
	`, s.dataset, tableExportRuns))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "status", Value: "SUCCESS"},
		{Name: "finished_ts", Value: time.Now()},
		{Name: "raw_payload_uri", Value: rawPayloadURI},
		{Name: "transaction_count", Value: int64(transactionCount)},
		{Name: "export_run_id", Value: exportRunID},
	}

	if err := s.runQuery(ctx, q); err != nil {
		return fmt.Errorf("bqstore: closing export run %s: %w", exportRunID, err)
	}
	return nil
}

// MarkExportRunFailed closes an export run with status=FAILED and the
// truncated error message.
func (s *Store) MarkExportRunFailed(ctx context.Context, exportRunID string, cause error) error {
	errMsg := ""
	if cause != nil {
		errMsg = cause.Error()
		const maxLen = 2000
		if len(errMsg) > maxLen {
			errMsg = errMsg[:maxLen]
		}
	}

	q := s.client.Query(fmt.Sprintf(`
		UPDATE %s.%s
		SET status = @status,
		    finished_ts = @finished_ts,
		    error_message = @error_message
		WHERE export_run_id = @export_run_id
	`, s.dataset, tableExportRuns))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "status", Value: "FAILED"},
		{Name: "finished_ts", Value: time.Now()},
		{Name: "error_message", Value: errMsg},
		{Name: "export_run_id", Value: exportRunID},
	}

	if err := s.runQuery(ctx, q); err != nil {
		return fmt.Errorf("bqstore: failing export run %s: %w", exportRunID, err)
	}
	return nil
}

func (s *Store) runQuery(ctx context.Context, q *bigquery.Query) error {
	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("running query: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("job error: %w", err)
	}
	return nil
}
