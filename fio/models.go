package fio

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// AccountStatement is the result of one read operation: the summary header
// plus the transactions in the order the bank delivered them.
type AccountStatement struct {
	Info         Info
	Transactions []Transaction
}

// Info is the summary header of a statement. Which of the optional fields
// are populated depends on the operation that produced the statement; the
// bank fills exactly one group and leaves the rest null, so any subset may
// be absent here.
type Info struct {
	AccountID string
	Currency  string
	IBAN      string
	BIC       string

	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal

	// Period requests.
	DateStart *civil.Date
	DateEnd   *civil.Date

	// Statement-by-number requests.
	YearList *int
	IDList   *int

	// Transaction-id range bounds.
	IDFrom *string
	IDTo   *string

	// Incremental (new transactions) requests.
	IDLastDownload *string
}

// Transaction is one movement on the account. ID, Date, Amount, Currency
// and Type are always present; everything else is optional and nil when
// the bank did not send the column.
type Transaction struct {
	ID       string
	Date     time.Time
	Amount   decimal.Decimal
	Currency string
	Type     TransactionType

	AccountNumber      *string // counterparty account number
	AccountName        *string // counterparty account name
	BankCode           *string
	BankName           *string
	ConstantSymbol     *string
	VariableSymbol     *string
	SpecificSymbol     *string
	UserIdentification *string
	Message            *string // message for the recipient
	InvokedBy          *string
	Details            *string
	Comment            *string
	BankBIC            *string
	PaymentOrderID     *string
}
