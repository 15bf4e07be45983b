package fio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Fetcher executes one GET against a fully built URL and returns the
// response body. Implementations own timeouts and cancellation; the
// client core imposes neither. Any failure is surfaced as-is and wrapped
// into a *TransportError by the client.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// Decoder deserializes a byte stream into the given target shape. The
// client only ever asks for the statement payload shape; any JSON library
// that honors json.Unmarshaler can sit behind this.
type Decoder interface {
	Decode(r io.Reader, v any) error
}

// HTTPFetcher is the default Fetcher over net/http.
type HTTPFetcher struct {
	// Client to execute requests with; http.DefaultClient when nil.
	Client *http.Client
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

// JSONDecoder is the default Decoder over encoding/json. UseNumber keeps
// numeric column values in literal form so amounts never round through
// float64.
type JSONDecoder struct{}

func (JSONDecoder) Decode(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return dec.Decode(v)
}
