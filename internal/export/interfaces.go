package export

import (
	"context"

	"cloud.google.com/go/civil"

	"github.com/dvloznov/fio-export/fio"
	"github.com/dvloznov/fio-export/internal/bqstore"
)

// StatementSource fetches one parsed statement for a date range. The
// fio.Client satisfies it; tests substitute a mock.
type StatementSource interface {
	Transactions(ctx context.Context, dateFrom, dateTo civil.Date) (*fio.AccountStatement, error)
}

// RawSource exposes the raw response bytes behind the last statement
// fetch. The CapturingFetcher satisfies it.
type RawSource interface {
	LastPayload() []byte
}

// Archive stores one raw payload and returns its URI.
type Archive interface {
	SaveRawStatement(ctx context.Context, objectName string, payload []byte) (string, error)
}

// RunStore persists transactions and the lifecycle of export runs.
// Implemented by bqstore.Store.
type RunStore interface {
	StartExportRun(ctx context.Context, exportRunID string, dateFrom, dateTo civil.Date) error
	MarkExportRunSucceeded(ctx context.Context, exportRunID, rawPayloadURI string, transactionCount int) error
	MarkExportRunFailed(ctx context.Context, exportRunID string, cause error) error
	InsertTransactions(ctx context.Context, rows []*bqstore.TransactionRow) error
}
