// Package fio is a client for the Fio banka transaction-export REST API.
//
// The API is a token-in-path GET interface: four read operations return a
// statement (summary header plus transactions) in a denormalized,
// column-coded JSON format, and two operations move the server-side
// pointer used by the incremental read. The client is read-only; payment
// orders are out of scope.
//
// HTTP transport and JSON deserialization are injected through the
// Fetcher and Decoder ports, with net/http and encoding/json defaults
// shipped in this package.
package fio

import (
	"context"
	"io"

	"cloud.google.com/go/civil"
)

// Client is the facade over the five API operations. It holds only the
// token and base URL, both fixed at construction, so one instance is safe
// for concurrent use.
type Client struct {
	fetcher Fetcher
	parser  *Parser
	token   string
	baseURL string
}

// Option adjusts a Client at construction time.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint, e.g. a test
// server. The path templates stay the same.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// New builds a client from the two ports and the access token issued in
// the bank's internet banking.
func New(fetcher Fetcher, decoder Decoder, token string, opts ...Option) *Client {
	c := &Client{
		fetcher: fetcher,
		parser:  NewParser(decoder),
		token:   token,
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Transactions returns the statement for the inclusive date range.
func (c *Client) Transactions(ctx context.Context, dateFrom, dateTo civil.Date) (*AccountStatement, error) {
	return c.fetchStatement(ctx, c.transactionsURL(dateFrom, dateTo))
}

// NewTransactions returns the transactions that appeared since the last
// download, advancing the server-side pointer.
func (c *Client) NewTransactions(ctx context.Context) (*AccountStatement, error) {
	return c.fetchStatement(ctx, c.newTransactionsURL())
}

// Statement returns one official account statement identified by year and
// number within that year.
func (c *Client) Statement(ctx context.Context, year, statementNumber int) (*AccountStatement, error) {
	return c.fetchStatement(ctx, c.statementURL(year, statementNumber))
}

// SetLastID moves the incremental-download pointer to the given
// transaction id. The response is not transaction data and is returned
// raw.
func (c *Client) SetLastID(ctx context.Context, transactionID int64) ([]byte, error) {
	return c.fetchRaw(ctx, c.setLastIDURL(transactionID))
}

// SetLastDate moves the incremental-download pointer to the given date.
// The response is returned raw.
func (c *Client) SetLastDate(ctx context.Context, date civil.Date) ([]byte, error) {
	return c.fetchRaw(ctx, c.setLastDateURL(date))
}

func (c *Client) fetchStatement(ctx context.Context, url string) (*AccountStatement, error) {
	body, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer body.Close()
	return c.parser.Parse(body)
}

func (c *Client) fetchRaw(ctx context.Context, url string) ([]byte, error) {
	body, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	return data, nil
}
