package marker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultEndpoint is where chunk metadata is posted unless configured otherwise.
const DefaultEndpoint = "http://localhost:3000/saveChunkInfo"

// Store persists chunk metadata.
type Store interface {
	// Save persists info.
	//
	// Parameters:
	//   - ctx: bounds the save
	//   - info: the chunk metadata
	//
	// Returns:
	//   - error: error if the metadata could not be stored
	Save(ctx context.Context, info ChunkInfo) error
}

// HTTPStore posts chunk metadata as JSON to an HTTP endpoint.
type HTTPStore struct {
	endpoint string
	client   *http.Client
}

var _ Store = &HTTPStore{}

// HTTPStoreOption is a functional option for configuring an HTTPStore.
type HTTPStoreOption func(*HTTPStore)

// WithEndpoint sets the URL chunk metadata is posted to. An empty URL keeps the default.
func WithEndpoint(url string) HTTPStoreOption {
	return func(s *HTTPStore) {
		if url != "" {
			s.endpoint = url
		}
	}
}

// WithHTTPClient sets the client used for requests.
func WithHTTPClient(client *http.Client) HTTPStoreOption {
	return func(s *HTTPStore) {
		if client != nil {
			s.client = client
		}
	}
}

// NewHTTPStore creates an HTTPStore posting to DefaultEndpoint unless configured otherwise.
//
// Parameters:
//   - options: functional options to configure the store
//
// Returns:
//   - *HTTPStore: the configured store
func NewHTTPStore(options ...HTTPStoreOption) *HTTPStore {
	s := &HTTPStore{
		endpoint: DefaultEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Endpoint returns the URL chunk metadata is posted to.
func (s *HTTPStore) Endpoint() string {
	return s.endpoint
}

// Save posts info to the endpoint. Any status outside 2xx is an error.
func (s *HTTPStore) Save(ctx context.Context, info ChunkInfo) error {
	body, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marker: encode %s: %w", info.Name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("marker: build request for %s: %w", info.Name, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("marker: post %s: %w", info.Name, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("marker: post %s: unexpected status %s", info.Name, resp.Status)
	}
	return nil
}
