package fio

import (
	"encoding/json"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Wire shapes of the statement payload:
//
//	{ "accountStatement": { "info": {...}, "transactionList": { "transaction": [...] } } }
//
// These are the only two shape descriptors handed to the Decoder; the
// column-level typing lives in columnValue.

type statementPayload struct {
	AccountStatement statementData `json:"accountStatement"`
}

type statementData struct {
	Info            infoData        `json:"info"`
	TransactionList transactionList `json:"transactionList"`
}

type transactionList struct {
	Transaction []columnRecord `json:"transaction"`
}

type infoData struct {
	AccountID      string      `json:"accountId"`
	Currency       string      `json:"currency"`
	IBAN           string      `json:"iban"`
	BIC            string      `json:"bic"`
	OpeningBalance wireDecimal `json:"openingBalance"`
	ClosingBalance wireDecimal `json:"closingBalance"`
	DateStart      *wireDate   `json:"dateStart"`
	DateEnd        *wireDate   `json:"dateEnd"`
	YearList       *int        `json:"yearList"`
	IDList         *int        `json:"idList"`
	IDFrom         *wireID     `json:"idFrom"`
	IDTo           *wireID     `json:"idTo"`
	IDLastDownload *wireID     `json:"idLastDownload"`
}

// wireDecimal accepts a NUMERIC value sent either as a JSON number or as
// a numeric string; both forms appear in the wild and neither may round
// through float64.
type wireDecimal struct {
	decimal.Decimal
}

func (d *wireDecimal) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		d.Decimal = decimal.Decimal{}
		return nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	d.Decimal = v
	return nil
}

// wireDate is a calendar date, optionally carrying the bank's offset
// suffix ("2024-01-31+01:00"); the offset is dropped since the summary
// dates are calendar dates, not instants.
type wireDate struct {
	civil.Date
}

func (d *wireDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if len(s) > 10 {
		s = s[:10]
	}
	v, err := civil.ParseDate(s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Date = v
	return nil
}

// wireID is a transaction id bound that arrives as a number or a string
// and is treated opaquely either way.
type wireID string

func (id *wireID) UnmarshalJSON(data []byte) error {
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = wireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = wireID(n.String())
	return nil
}
