package export

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/dvloznov/fio-export/fio"
)

// CapturingFetcher wraps a fio.Fetcher and retains the body of the last
// response, so one fetch can both feed the parser and be archived
// verbatim without a second round trip to the bank.
type CapturingFetcher struct {
	inner fio.Fetcher

	mu   sync.Mutex
	last []byte
}

func NewCapturingFetcher(inner fio.Fetcher) *CapturingFetcher {
	return &CapturingFetcher{inner: inner}
}

func (f *CapturingFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	body, err := f.inner.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.last = data
	f.mu.Unlock()

	return io.NopCloser(bytes.NewReader(data)), nil
}

// LastPayload returns a copy of the most recently fetched body, or nil
// when nothing has been fetched yet.
func (f *CapturingFetcher) LastPayload() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.last == nil {
		return nil
	}
	out := make([]byte, len(f.last))
	copy(out, f.last)
	return out
}
