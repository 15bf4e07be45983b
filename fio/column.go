package fio

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// The upstream payload keys every column of a transaction record as
// "column" + numeric code, e.g. "column22". Lookup by logical code has to
// add this prefix, bit for bit, or nothing maps.
const columnPrefix = "column"

// Logical column codes of the transaction record schema. All 19 mappings
// live here so the schema stays auditable in one place.
const (
	colID                 = "22"
	colDate               = "0"
	colAmount             = "1"
	colCurrency           = "14"
	colAccountNumber      = "2"
	colAccountHolder      = "10"
	colBankCode           = "3"
	colBankName           = "12"
	colConstantSymbol     = "4"
	colVariableSymbol     = "5"
	colSpecificSymbol     = "6"
	colUserIdentification = "7"
	colMessage            = "16"
	colType               = "8"
	colInvokedBy          = "9"
	colDetails            = "18"
	colComment            = "25"
	colBIC                = "26"
	colPaymentOrderID     = "17"
)

// columnValueKind tags the runtime type a column value arrived with.
type columnValueKind int

const (
	kindNull columnValueKind = iota
	kindText
	kindNumber
)

// columnValue is a tagged union over the heterogeneous wire values. JSON
// strings become text, JSON numbers keep their literal form so decimals
// never pass through float64, and explicit nulls stay distinguishable
// from an absent column.
type columnValue struct {
	kind columnValueKind
	text string // literal form for both text and number
}

func (v *columnValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		v.kind = kindNull
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v.kind = kindText
		v.text = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("column value is neither string, number nor null: %s", data)
	}
	v.kind = kindNumber
	v.text = n.String()
	return nil
}

// columnEntry is one column of a raw record: the declared numeric code,
// the bank's display label and the runtime-typed value.
type columnEntry struct {
	ID    int         `json:"id"`
	Name  string      `json:"name"`
	Value columnValue `json:"value"`
}

// columnRecord is the read-only associative view over one raw transaction
// record, keyed by the raw "column<N>" wire keys.
type columnRecord map[string]columnEntry

// get looks up an entry by its logical code. The second result is false
// when the column is absent from the record, which is distinct from an
// entry that is present with a null value.
func (r columnRecord) get(code string) (columnEntry, bool) {
	entry, ok := r[columnPrefix+code]
	return entry, ok
}

// Typed coercions. Each produces a *MappingError naming the field, the
// column and whether it was missing or mistyped, so a broken payload is
// diagnosable without the raw bytes at hand.

func (r columnRecord) text(field, code string) (string, error) {
	entry, ok := r.get(code)
	if !ok || entry.Value.kind == kindNull {
		return "", &MappingError{Field: field, Column: code, Reason: ReasonMissing}
	}
	if entry.Value.kind != kindText {
		return "", &MappingError{
			Field: field, Column: code, Reason: ReasonWrongType,
			Detail: "want string",
		}
	}
	return entry.Value.text, nil
}

// opaqueText is like text but also accepts a number, keeping its literal
// form. The live API serves transaction ids as JSON numbers; the domain
// treats them as opaque strings either way.
func (r columnRecord) opaqueText(field, code string) (string, error) {
	entry, ok := r.get(code)
	if !ok || entry.Value.kind == kindNull {
		return "", &MappingError{Field: field, Column: code, Reason: ReasonMissing}
	}
	return entry.Value.text, nil
}

func (r columnRecord) decimal(field, code string) (decimal.Decimal, error) {
	entry, ok := r.get(code)
	if !ok || entry.Value.kind == kindNull {
		return decimal.Decimal{}, &MappingError{Field: field, Column: code, Reason: ReasonMissing}
	}
	d, err := decimal.NewFromString(entry.Value.text)
	if err != nil {
		return decimal.Decimal{}, &MappingError{
			Field: field, Column: code, Reason: ReasonWrongType,
			Detail: fmt.Sprintf("want decimal, got %q", entry.Value.text),
		}
	}
	return d, nil
}

// Timestamp layouts the bank is known to serve: RFC 3339 and the variant
// without a colon in the offset, plus bare calendar dates with and
// without an offset.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02-07:00",
	"2006-01-02-0700",
	"2006-01-02",
}

func (r columnRecord) timestamp(field, code string) (time.Time, error) {
	entry, ok := r.get(code)
	if !ok || entry.Value.kind == kindNull {
		return time.Time{}, &MappingError{Field: field, Column: code, Reason: ReasonMissing}
	}
	if entry.Value.kind != kindText {
		return time.Time{}, &MappingError{
			Field: field, Column: code, Reason: ReasonWrongType,
			Detail: "want timestamp string",
		}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, entry.Value.text); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &MappingError{
		Field: field, Column: code, Reason: ReasonWrongType,
		Detail: fmt.Sprintf("unparseable timestamp %q", entry.Value.text),
	}
}

// optionalText returns nil when the column is absent or null. A present
// non-string value is still a mapping error; silence is reserved for
// absence.
func (r columnRecord) optionalText(field, code string) (*string, error) {
	entry, ok := r.get(code)
	if !ok || entry.Value.kind == kindNull {
		return nil, nil
	}
	if entry.Value.kind != kindText {
		return nil, &MappingError{
			Field: field, Column: code, Reason: ReasonWrongType,
			Detail: "want string",
		}
	}
	s := entry.Value.text
	return &s, nil
}

// transactionType resolves the free-text label in the type column against
// the fixed vocabulary. Absent column, non-text value and unknown label
// are all hard failures: a silent fallback would misclassify money
// movement.
func (r columnRecord) transactionType(field, code string) (TransactionType, error) {
	label, err := r.text(field, code)
	if err != nil {
		return TypeUnknown, err
	}
	t, ok := transactionTypes[label]
	if !ok {
		return TypeUnknown, &MappingError{
			Field: field, Column: code, Reason: ReasonUnknownLabel,
			Detail: fmt.Sprintf("%q", label),
		}
	}
	return t, nil
}
