package fio

import (
	"fmt"
	"io"

	"cloud.google.com/go/civil"
)

// Parser converts the bank's denormalized statement payload into the
// typed domain model. It is stateless; one instance serves any number of
// concurrent calls.
type Parser struct {
	decoder Decoder
}

// NewParser wires the parser to a Decoder implementation.
func NewParser(decoder Decoder) *Parser {
	return &Parser{decoder: decoder}
}

// Parse reads one statement payload and returns the summary plus the
// transactions in their original order. Parsing is all or nothing: a
// single missing or mistyped mandatory column fails the whole statement,
// and every failure is wrapped in a *ParseError carrying the cause.
func (p *Parser) Parse(r io.Reader) (*AccountStatement, error) {
	var payload statementPayload
	if err := p.decoder.Decode(r, &payload); err != nil {
		return nil, &ParseError{Err: &DecodeError{Err: err}}
	}

	records := payload.AccountStatement.TransactionList.Transaction
	transactions := make([]Transaction, 0, len(records))
	for i, record := range records {
		tx, err := parseTransaction(record)
		if err != nil {
			return nil, &ParseError{Err: fmt.Errorf("transaction %d: %w", i, err)}
		}
		transactions = append(transactions, tx)
	}

	return &AccountStatement{
		Info:         newInfo(payload.AccountStatement.Info),
		Transactions: transactions,
	}, nil
}

// newInfo copies the decoded summary header into the domain model. The
// optional fields pass through as received; which group is populated is
// decided by the upstream operation, not validated here.
func newInfo(data infoData) Info {
	return Info{
		AccountID:      data.AccountID,
		Currency:       data.Currency,
		IBAN:           data.IBAN,
		BIC:            data.BIC,
		OpeningBalance: data.OpeningBalance.Decimal,
		ClosingBalance: data.ClosingBalance.Decimal,
		DateStart:      dateValue(data.DateStart),
		DateEnd:        dateValue(data.DateEnd),
		YearList:       data.YearList,
		IDList:         data.IDList,
		IDFrom:         idValue(data.IDFrom),
		IDTo:           idValue(data.IDTo),
		IDLastDownload: idValue(data.IDLastDownload),
	}
}

func parseTransaction(record columnRecord) (Transaction, error) {
	var tx Transaction
	var err error

	if tx.ID, err = record.opaqueText("id", colID); err != nil {
		return Transaction{}, err
	}
	if tx.Date, err = record.timestamp("date", colDate); err != nil {
		return Transaction{}, err
	}
	if tx.Amount, err = record.decimal("amount", colAmount); err != nil {
		return Transaction{}, err
	}
	if tx.Currency, err = record.text("currency", colCurrency); err != nil {
		return Transaction{}, err
	}
	if tx.Type, err = record.transactionType("type", colType); err != nil {
		return Transaction{}, err
	}

	optional := []struct {
		dst   **string
		field string
		code  string
	}{
		{&tx.AccountNumber, "accountNumber", colAccountNumber},
		{&tx.AccountName, "accountName", colAccountHolder},
		{&tx.BankCode, "bankCode", colBankCode},
		{&tx.BankName, "bankName", colBankName},
		{&tx.ConstantSymbol, "constantSymbol", colConstantSymbol},
		{&tx.VariableSymbol, "variableSymbol", colVariableSymbol},
		{&tx.SpecificSymbol, "specificSymbol", colSpecificSymbol},
		{&tx.UserIdentification, "userIdentification", colUserIdentification},
		{&tx.Message, "message", colMessage},
		{&tx.InvokedBy, "invokedBy", colInvokedBy},
		{&tx.Details, "details", colDetails},
		{&tx.Comment, "comment", colComment},
		{&tx.BankBIC, "bankBic", colBIC},
		{&tx.PaymentOrderID, "paymentOrderId", colPaymentOrderID},
	}
	for _, f := range optional {
		if *f.dst, err = record.optionalText(f.field, f.code); err != nil {
			return Transaction{}, err
		}
	}

	return tx, nil
}

func dateValue(d *wireDate) *civil.Date {
	if d == nil {
		return nil
	}
	v := d.Date
	return &v
}

func idValue(id *wireID) *string {
	if id == nil {
		return nil
	}
	s := string(*id)
	return &s
}
