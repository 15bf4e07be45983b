package bqstore

import (
	"math/big"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"

	"github.com/dvloznov/fio-export/fio"
)

// TransactionRow is one normalized bank transaction in the
// fio.transactions table.
type TransactionRow struct {
	TransactionID string `bigquery:"transaction_id"` // REQUIRED
	AccountID     string `bigquery:"account_id"`     // REQUIRED
	ExportRunID   string `bigquery:"export_run_id"`  // REQUIRED

	TransactionDate civil.Date `bigquery:"transaction_date"` // REQUIRED
	BookedAt        time.Time  `bigquery:"booked_ts"`        // REQUIRED, with offset

	Amount   *big.Rat `bigquery:"amount"`   // REQUIRED NUMERIC
	Currency string   `bigquery:"currency"` // REQUIRED

	TransactionType string `bigquery:"transaction_type"` // REQUIRED, enum name

	CounterpartyAccount  bigquery.NullString `bigquery:"counterparty_account"`
	CounterpartyName     bigquery.NullString `bigquery:"counterparty_name"`
	CounterpartyBank     bigquery.NullString `bigquery:"counterparty_bank_code"`
	CounterpartyBankName bigquery.NullString `bigquery:"counterparty_bank_name"`
	CounterpartyBIC      bigquery.NullString `bigquery:"counterparty_bic"`

	ConstantSymbol bigquery.NullString `bigquery:"constant_symbol"`
	VariableSymbol bigquery.NullString `bigquery:"variable_symbol"`
	SpecificSymbol bigquery.NullString `bigquery:"specific_symbol"`

	UserIdentification bigquery.NullString `bigquery:"user_identification"`
	Message            bigquery.NullString `bigquery:"message"`
	InvokedBy          bigquery.NullString `bigquery:"invoked_by"`
	Details            bigquery.NullString `bigquery:"details"`
	Comment            bigquery.NullString `bigquery:"comment"`
	PaymentOrderID     bigquery.NullString `bigquery:"payment_order_id"`

	CreatedTS time.Time `bigquery:"created_ts"`
}

// ExportRunRow tracks one export run in the fio.export_runs table.
type ExportRunRow struct {
	ExportRunID string `bigquery:"export_run_id"`

	DateFrom civil.Date `bigquery:"date_from"`
	DateTo   civil.Date `bigquery:"date_to"`

	StartedAt  time.Time              `bigquery:"started_ts"`
	FinishedAt bigquery.NullTimestamp `bigquery:"finished_ts"`

	Status       string `bigquery:"status"` // RUNNING, SUCCESS, FAILED
	ErrorMessage string `bigquery:"error_message"`

	RawPayloadURI    bigquery.NullString `bigquery:"raw_payload_uri"`
	TransactionCount bigquery.NullInt64  `bigquery:"transaction_count"`
}

// RowFromTransaction maps one parsed transaction into its table row.
func RowFromTransaction(accountID, exportRunID string, tx fio.Transaction) *TransactionRow {
	return &TransactionRow{
		TransactionID:   tx.ID,
		AccountID:       accountID,
		ExportRunID:     exportRunID,
		TransactionDate: civil.DateOf(tx.Date),
		BookedAt:        tx.Date,
		Amount:          tx.Amount.Rat(),
		Currency:        tx.Currency,
		TransactionType: tx.Type.String(),

		CounterpartyAccount:  nullString(tx.AccountNumber),
		CounterpartyName:     nullString(tx.AccountName),
		CounterpartyBank:     nullString(tx.BankCode),
		CounterpartyBankName: nullString(tx.BankName),
		CounterpartyBIC:      nullString(tx.BankBIC),

		ConstantSymbol: nullString(tx.ConstantSymbol),
		VariableSymbol: nullString(tx.VariableSymbol),
		SpecificSymbol: nullString(tx.SpecificSymbol),

		UserIdentification: nullString(tx.UserIdentification),
		Message:            nullString(tx.Message),
		InvokedBy:          nullString(tx.InvokedBy),
		Details:            nullString(tx.Details),
		Comment:            nullString(tx.Comment),
		PaymentOrderID:     nullString(tx.PaymentOrderID),

		CreatedTS: time.Now(),
	}
}

func nullString(s *string) bigquery.NullString {
	if s == nil {
		return bigquery.NullString{}
	}
	return bigquery.NullString{StringVal: *s, Valid: true}
}
