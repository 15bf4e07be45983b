package fio

import (
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
)

// DefaultBaseURL is the production REST endpoint of the bank.
const DefaultBaseURL = "https://www.fio.cz/ib_api/rest/"

const dataFormat = "json"

// URL argument names as they appear in the path templates. The statement
// number and the transaction id substitute the same {id} placeholder, but
// only ever in their own template; they stay separate parameters here so
// an operation can never pick up the other's value.
const (
	argToken           = "token"
	argFormat          = "format"
	argYear            = "year"
	argStatementNumber = "id"
	argDateFrom        = "date-from"
	argDateTo          = "date-to"
	argTransactionID   = "id"
	argDate            = "date"
)

const (
	pathStatement       = "by-id/{token}/{year}/{id}/transactions.{format}"
	pathTransactions    = "periods/{token}/{date-from}/{date-to}/transactions.{format}"
	pathNewTransactions = "last/{token}/transactions.{format}"
	pathSetLastID       = "set-last-id/{token}/{id}/"
	pathSetLastDate     = "set-last-date/{token}/{date}/"
)

// buildURL substitutes the merged argument map into the path template,
// first match per placeholder. It is a pure template utility: it does not
// validate, and a placeholder with no supplied value stays in the URL so
// the mistake surfaces at the fetch boundary.
func buildURL(baseURL, path string, args map[string]string) string {
	url := baseURL + path
	for name, value := range args {
		url = strings.Replace(url, "{"+name+"}", value, 1)
	}
	return url
}

func (c *Client) urlArgs(extra map[string]string) map[string]string {
	args := map[string]string{
		argToken:  c.token,
		argFormat: dataFormat,
	}
	for name, value := range extra {
		args[name] = value
	}
	return args
}

func (c *Client) transactionsURL(dateFrom, dateTo civil.Date) string {
	return buildURL(c.baseURL, pathTransactions, c.urlArgs(map[string]string{
		argDateFrom: dateFrom.String(),
		argDateTo:   dateTo.String(),
	}))
}

func (c *Client) newTransactionsURL() string {
	return buildURL(c.baseURL, pathNewTransactions, c.urlArgs(nil))
}

func (c *Client) statementURL(year, statementNumber int) string {
	return buildURL(c.baseURL, pathStatement, c.urlArgs(map[string]string{
		argYear:            strconv.Itoa(year),
		argStatementNumber: strconv.Itoa(statementNumber),
	}))
}

func (c *Client) setLastIDURL(transactionID int64) string {
	return buildURL(c.baseURL, pathSetLastID, c.urlArgs(map[string]string{
		argTransactionID: strconv.FormatInt(transactionID, 10),
	}))
}

func (c *Client) setLastDateURL(date civil.Date) string {
	return buildURL(c.baseURL, pathSetLastDate, c.urlArgs(map[string]string{
		argDate: date.String(),
	}))
}
