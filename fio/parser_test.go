package fio

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func parseString(t *testing.T, payload string) (*AccountStatement, error) {
	t.Helper()
	return NewParser(JSONDecoder{}).Parse(strings.NewReader(payload))
}

func TestParseSingleTransaction(t *testing.T) {
	payload := `{
		"accountStatement": {
			"info": {
				"accountId": "123",
				"currency": "CZK",
				"iban": "CZ1020100000000000000123",
				"bic": "FIOBCZPPXXX",
				"openingBalance": "0.00",
				"closingBalance": "100.50"
			},
			"transactionList": {"transaction": [
				{
					"column22": {"value": "1", "name": "ID pohybu", "id": 22},
					"column0":  {"value": "2024-01-01T00:00:00+01:00", "name": "Datum", "id": 0},
					"column1":  {"value": "100.50", "name": "Objem", "id": 1},
					"column14": {"value": "CZK", "name": "Měna", "id": 14},
					"column8":  {"value": "Platba", "name": "Typ", "id": 8},
					"column5":  {"value": "20240001", "name": "VS", "id": 5}
				}
			]}
		}
	}`

	statement, err := parseString(t, payload)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := len(statement.Transactions); got != 1 {
		t.Fatalf("got %d transactions, want 1", got)
	}

	tx := statement.Transactions[0]
	if tx.ID != "1" {
		t.Errorf("ID = %q, want 1", tx.ID)
	}
	if !tx.Amount.Equal(decimal.RequireFromString("100.50")) {
		t.Errorf("Amount = %s, want 100.50", tx.Amount)
	}
	if tx.Currency != "CZK" {
		t.Errorf("Currency = %q, want CZK", tx.Currency)
	}
	if tx.Type != TypePayment {
		t.Errorf("Type = %v, want PAYMENT", tx.Type)
	}
	if tx.Date.Format("2006-01-02") != "2024-01-01" {
		t.Errorf("Date = %v, want 2024-01-01", tx.Date)
	}
	if tx.VariableSymbol == nil || *tx.VariableSymbol != "20240001" {
		t.Errorf("VariableSymbol = %v, want 20240001", tx.VariableSymbol)
	}

	// Unset optional columns read as absent, not as an error.
	for name, field := range map[string]*string{
		"AccountNumber":  tx.AccountNumber,
		"AccountName":    tx.AccountName,
		"Message":        tx.Message,
		"Comment":        tx.Comment,
		"PaymentOrderID": tx.PaymentOrderID,
	} {
		if field != nil {
			t.Errorf("%s = %q, want absent", name, *field)
		}
	}
}

func TestParseMissingMandatoryColumnFailsWholeStatement(t *testing.T) {
	// The second record has no column22 (id); the first is well-formed.
	payload := `{
		"accountStatement": {
			"info": {"accountId": "123", "currency": "CZK", "iban": "x", "bic": "y",
				"openingBalance": "0", "closingBalance": "0"},
			"transactionList": {"transaction": [
				{
					"column22": {"value": "1", "name": "ID pohybu", "id": 22},
					"column0":  {"value": "2024-01-01T00:00:00+01:00", "name": "Datum", "id": 0},
					"column1":  {"value": "10", "name": "Objem", "id": 1},
					"column14": {"value": "CZK", "name": "Měna", "id": 14},
					"column8":  {"value": "Platba", "name": "Typ", "id": 8}
				},
				{
					"column0":  {"value": "2024-01-02T00:00:00+01:00", "name": "Datum", "id": 0},
					"column1":  {"value": "20", "name": "Objem", "id": 1},
					"column14": {"value": "CZK", "name": "Měna", "id": 14},
					"column8":  {"value": "Platba", "name": "Typ", "id": 8}
				}
			]}
		}
	}`

	statement, err := parseString(t, payload)
	if statement != nil {
		t.Error("no partial statement may be returned")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("got %T (%v), want *ParseError", err, err)
	}
	var mapErr *MappingError
	if !errors.As(err, &mapErr) {
		t.Fatalf("parse error should wrap a *MappingError, got %v", err)
	}
	if mapErr.Field != "id" || mapErr.Column != "22" || mapErr.Reason != ReasonMissing {
		t.Errorf("mapping error = %+v, want missing id/22", mapErr)
	}
	if !strings.Contains(err.Error(), "transaction 1") {
		t.Errorf("error should name the failing record index: %v", err)
	}
}

func TestParsePreservesRecordOrder(t *testing.T) {
	payload := `{
		"accountStatement": {
			"info": {"accountId": "123", "currency": "CZK", "iban": "x", "bic": "y",
				"openingBalance": "0", "closingBalance": "0"},
			"transactionList": {"transaction": [
				{
					"column22": {"value": "30", "name": "ID pohybu", "id": 22},
					"column0":  {"value": "2024-01-03T00:00:00+01:00", "name": "Datum", "id": 0},
					"column1":  {"value": "3", "name": "Objem", "id": 1},
					"column14": {"value": "CZK", "name": "Měna", "id": 14},
					"column8":  {"value": "Příjem", "name": "Typ", "id": 8}
				},
				{
					"column22": {"value": "10", "name": "ID pohybu", "id": 22},
					"column0":  {"value": "2024-01-01T00:00:00+01:00", "name": "Datum", "id": 0},
					"column1":  {"value": "1", "name": "Objem", "id": 1},
					"column14": {"value": "CZK", "name": "Měna", "id": 14},
					"column8":  {"value": "Platba", "name": "Typ", "id": 8}
				},
				{
					"column22": {"value": "20", "name": "ID pohybu", "id": 22},
					"column0":  {"value": "2024-01-02T00:00:00+01:00", "name": "Datum", "id": 0},
					"column1":  {"value": "2", "name": "Objem", "id": 1},
					"column14": {"value": "CZK", "name": "Měna", "id": 14},
					"column8":  {"value": "Platba kartou", "name": "Typ", "id": 8}
				}
			]}
		}
	}`

	statement, err := parseString(t, payload)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{"30", "10", "20"}
	if len(statement.Transactions) != len(want) {
		t.Fatalf("got %d transactions, want %d", len(statement.Transactions), len(want))
	}
	for i, id := range want {
		if statement.Transactions[i].ID != id {
			t.Errorf("transaction %d has id %q, want %q", i, statement.Transactions[i].ID, id)
		}
	}
}

func TestParseEmptyTransactionList(t *testing.T) {
	payload := `{
		"accountStatement": {
			"info": {
				"accountId": "123",
				"currency": "EUR",
				"iban": "CZ1020100000000000000123",
				"bic": "FIOBCZPPXXX",
				"openingBalance": "1500.00",
				"closingBalance": "1500.00",
				"dateStart": "2024-01-01+01:00",
				"dateEnd": "2024-01-31+01:00"
			},
			"transactionList": {"transaction": []}
		}
	}`

	statement, err := parseString(t, payload)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(statement.Transactions) != 0 {
		t.Errorf("got %d transactions, want 0", len(statement.Transactions))
	}
	if !statement.Info.OpeningBalance.Equal(decimal.RequireFromString("1500.00")) {
		t.Errorf("OpeningBalance = %s, want 1500.00", statement.Info.OpeningBalance)
	}
	if statement.Info.DateStart == nil || statement.Info.DateStart.String() != "2024-01-01" {
		t.Errorf("DateStart = %v, want 2024-01-01", statement.Info.DateStart)
	}
	if statement.Info.DateEnd == nil || statement.Info.DateEnd.String() != "2024-01-31" {
		t.Errorf("DateEnd = %v, want 2024-01-31", statement.Info.DateEnd)
	}
	if statement.Info.YearList != nil || statement.Info.IDLastDownload != nil {
		t.Error("fields of unrequested groups must stay absent")
	}
}

func TestParseInfoOptionalGroups(t *testing.T) {
	// Numeric balances and numeric id bounds, as the live API serves them.
	payload := `{
		"accountStatement": {
			"info": {
				"accountId": "123",
				"currency": "CZK",
				"iban": "x",
				"bic": "y",
				"openingBalance": 100.5,
				"closingBalance": 99,
				"idFrom": 26962199069,
				"idTo": 26962599069,
				"idLastDownload": 26962599069,
				"yearList": 2024,
				"idList": 3
			},
			"transactionList": {"transaction": []}
		}
	}`

	statement, err := parseString(t, payload)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	info := statement.Info
	if !info.OpeningBalance.Equal(decimal.RequireFromString("100.5")) {
		t.Errorf("OpeningBalance = %s, want 100.5", info.OpeningBalance)
	}
	if info.IDFrom == nil || *info.IDFrom != "26962199069" {
		t.Errorf("IDFrom = %v, want 26962199069", info.IDFrom)
	}
	if info.IDTo == nil || *info.IDTo != "26962599069" {
		t.Errorf("IDTo = %v, want 26962599069", info.IDTo)
	}
	if info.IDLastDownload == nil || *info.IDLastDownload != "26962599069" {
		t.Errorf("IDLastDownload = %v, want 26962599069", info.IDLastDownload)
	}
	if info.YearList == nil || *info.YearList != 2024 {
		t.Errorf("YearList = %v, want 2024", info.YearList)
	}
	if info.IDList == nil || *info.IDList != 3 {
		t.Errorf("IDList = %v, want 3", info.IDList)
	}
}

func TestParseWrongTypedOptionalFieldFails(t *testing.T) {
	payload := `{
		"accountStatement": {
			"info": {"accountId": "123", "currency": "CZK", "iban": "x", "bic": "y",
				"openingBalance": "0", "closingBalance": "0"},
			"transactionList": {"transaction": [
				{
					"column22": {"value": "1", "name": "ID pohybu", "id": 22},
					"column0":  {"value": "2024-01-01T00:00:00+01:00", "name": "Datum", "id": 0},
					"column1":  {"value": "10", "name": "Objem", "id": 1},
					"column14": {"value": "CZK", "name": "Měna", "id": 14},
					"column8":  {"value": "Platba", "name": "Typ", "id": 8},
					"column16": {"value": 12345, "name": "Zpráva pro příjemce", "id": 16}
				}
			]}
		}
	}`

	_, err := parseString(t, payload)
	var mapErr *MappingError
	if !errors.As(err, &mapErr) {
		t.Fatalf("got %T (%v), want wrapped *MappingError", err, err)
	}
	if mapErr.Field != "message" || mapErr.Reason != ReasonWrongType {
		t.Errorf("mapping error = %+v, want wrong-typed message", mapErr)
	}
}

func TestParseUnknownTypeLabelFails(t *testing.T) {
	payload := `{
		"accountStatement": {
			"info": {"accountId": "123", "currency": "CZK", "iban": "x", "bic": "y",
				"openingBalance": "0", "closingBalance": "0"},
			"transactionList": {"transaction": [
				{
					"column22": {"value": "1", "name": "ID pohybu", "id": 22},
					"column0":  {"value": "2024-01-01T00:00:00+01:00", "name": "Datum", "id": 0},
					"column1":  {"value": "10", "name": "Objem", "id": 1},
					"column14": {"value": "CZK", "name": "Měna", "id": 14},
					"column8":  {"value": "Nový typ pohybu", "name": "Typ", "id": 8}
				}
			]}
		}
	}`

	_, err := parseString(t, payload)
	var mapErr *MappingError
	if !errors.As(err, &mapErr) {
		t.Fatalf("got %T (%v), want wrapped *MappingError", err, err)
	}
	if mapErr.Reason != ReasonUnknownLabel {
		t.Errorf("reason = %q, want %q", mapErr.Reason, ReasonUnknownLabel)
	}
}
