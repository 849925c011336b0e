package marker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTTPStoreSave(t *testing.T) {
	var gotMethod, gotType string
	var gotBody map[string]ChunkEntry
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := NewHTTPStore(WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))
	if err := store.Save(context.Background(), NewChunkInfo(Chunk{X: -1, Z: 0}, "")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if gotType != "application/json" {
		t.Errorf("Content-Type = %q", gotType)
	}
	entry, ok := gotBody["chunk_-1_0"]
	if !ok {
		t.Fatalf("body = %+v, missing chunk_-1_0", gotBody)
	}
	if entry.Position != (InfoPosition{X: -8, Y: 100, Z: 8}) {
		t.Errorf("position = %+v", entry.Position)
	}
}

func TestHTTPStoreRejectsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewHTTPStore(WithEndpoint(srv.URL)).Save(context.Background(), NewChunkInfo(Chunk{}, ""))
	if err == nil || !strings.Contains(err.Error(), "500") {
		t.Errorf("err = %v, want a 500 status error", err)
	}
}

func TestHTTPStoreHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewHTTPStore(WithEndpoint(srv.URL)).Save(ctx, NewChunkInfo(Chunk{}, "")); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}

func TestNewHTTPStoreDefaults(t *testing.T) {
	s := NewHTTPStore(WithEndpoint(""), WithHTTPClient(nil))
	if s.Endpoint() != DefaultEndpoint {
		t.Errorf("Endpoint() = %q, want %q", s.Endpoint(), DefaultEndpoint)
	}
	if s.client == nil {
		t.Error("client should default to non-nil")
	}
}
