// Package export orchestrates one export run: fetch a period statement
// from the bank, archive the raw payload to GCS, and load the normalized
// transactions into BigQuery, tracking the run in the export_runs table.
package export

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/dvloznov/fio-export/internal/archive"
	"github.com/dvloznov/fio-export/internal/bqstore"
	"github.com/dvloznov/fio-export/internal/logger"
)

// Exporter wires the statement source to the archive and the store.
type Exporter struct {
	source  StatementSource
	raw     RawSource
	archive Archive
	store   RunStore
}

func New(source StatementSource, raw RawSource, archive Archive, store RunStore) *Exporter {
	return &Exporter{
		source:  source,
		raw:     raw,
		archive: archive,
		store:   store,
	}
}

// ExportPeriod runs one export for the inclusive date range and returns
// the export-run id. On any failure after the run row exists, the run is
// marked FAILED with the cause before the error is returned.
func (e *Exporter) ExportPeriod(ctx context.Context, dateFrom, dateTo civil.Date) (string, error) {
	log := logger.FromContext(ctx)

	exportRunID := uuid.NewString()
	log.Info().
		Str("run_id", exportRunID).
		Str("date_from", dateFrom.String()).
		Str("date_to", dateTo.String()).
		Msg("starting export run")

	if err := e.store.StartExportRun(ctx, exportRunID, dateFrom, dateTo); err != nil {
		return "", err
	}

	statement, err := e.source.Transactions(ctx, dateFrom, dateTo)
	if err != nil {
		e.fail(ctx, exportRunID, err)
		return exportRunID, err
	}

	objectName := archive.ObjectName(statement.Info.AccountID, dateFrom, dateTo, exportRunID)
	payloadURI, err := e.archive.SaveRawStatement(ctx, objectName, e.raw.LastPayload())
	if err != nil {
		e.fail(ctx, exportRunID, err)
		return exportRunID, err
	}
	log.Info().Str("run_id", exportRunID).Str("uri", payloadURI).Msg("raw payload archived")

	rows := make([]*bqstore.TransactionRow, 0, len(statement.Transactions))
	for _, tx := range statement.Transactions {
		rows = append(rows, bqstore.RowFromTransaction(statement.Info.AccountID, exportRunID, tx))
	}
	if err := e.store.InsertTransactions(ctx, rows); err != nil {
		e.fail(ctx, exportRunID, err)
		return exportRunID, err
	}

	if err := e.store.MarkExportRunSucceeded(ctx, exportRunID, payloadURI, len(rows)); err != nil {
		return exportRunID, err
	}

	log.Info().
		Str("run_id", exportRunID).
		Int("transactions", len(rows)).
		Msg("export run finished")
	return exportRunID, nil
}

func (e *Exporter) fail(ctx context.Context, exportRunID string, cause error) {
	if err := e.store.MarkExportRunFailed(ctx, exportRunID, cause); err != nil {
		log := logger.FromContext(ctx)
		log.Error().
			Err(err).
			AnErr("cause", cause).
			Str("run_id", exportRunID).
			Msg("could not mark export run failed")
	}
}
