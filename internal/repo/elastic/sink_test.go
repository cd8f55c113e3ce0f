package elastic_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"

	"github.com/buzzline/consumer/internal/domain"
	"github.com/buzzline/consumer/internal/repo/elastic"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// fakeES answers like an Elasticsearch node; the product header keeps the
// client's compatibility check happy.
func fakeES(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func newTestSink(t *testing.T, client *elasticsearch.Client) *elastic.Sink {
	t.Helper()
	s, err := elastic.NewSink(client, "streamed_messages", nopLogger{}, time.Millisecond, 3)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	return s
}

func TestInsert_RetriesOn429ThenSucceeds(t *testing.T) {
	t.Parallel()

	var indexCalls int
	client := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/streamed_messages/_doc") {
			indexCalls++
			if indexCalls == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{}`))
				return
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"result":"created"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	})

	s := newTestSink(t, client)
	err := s.Insert(context.Background(), &domain.Message{Message: "hi!", MessageLength: 3})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if indexCalls != 2 {
		t.Fatalf("index calls: want 2 (one retry), got %d", indexCalls)
	}
}

func TestInsert_BudgetExhaustedOnPersistent429(t *testing.T) {
	t.Parallel()

	var indexCalls int
	client := fakeES(t, func(w http.ResponseWriter, _ *http.Request) {
		indexCalls++
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{}`))
	})

	s := newTestSink(t, client)
	err := s.Insert(context.Background(), &domain.Message{Message: "x", MessageLength: 1})
	if err == nil {
		t.Fatal("want error after exhausted budget")
	}
	if !strings.Contains(err.Error(), "retry budget exhausted") {
		t.Fatalf("error must name the exhausted budget, got %v", err)
	}
	if indexCalls != 3 {
		t.Fatalf("index calls: want exactly 3, got %d", indexCalls)
	}
}

func TestEnsureSchema_ExistingIndexIsFine(t *testing.T) {
	t.Parallel()

	client := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut && r.URL.Path == "/streamed_messages" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"type":"resource_already_exists_exception"}}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	})

	s := newTestSink(t, client)
	if err := s.EnsureSchema(context.Background(), false); err != nil {
		t.Fatalf("EnsureSchema on existing index: %v", err)
	}
}

func TestEnsureSchema_DestructiveDeletesFirst(t *testing.T) {
	t.Parallel()

	var deleted, created bool
	client := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete && r.URL.Path == "/streamed_messages":
			deleted = true
		case r.Method == http.MethodPut && r.URL.Path == "/streamed_messages":
			created = true
			if deleted != true {
				t.Error("index must be deleted before recreate")
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"acknowledged":true}`))
	})

	s := newTestSink(t, client)
	if err := s.EnsureSchema(context.Background(), true); err != nil {
		t.Fatalf("EnsureSchema destructive: %v", err)
	}
	if !deleted || !created {
		t.Fatalf("want delete+create, got deleted=%t created=%t", deleted, created)
	}
}

func TestDelete_NotFound(t *testing.T) {
	t.Parallel()

	client := fakeES(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	})

	s := newTestSink(t, client)
	if err := s.Delete(context.Background(), "42"); err == nil {
		t.Fatal("want error for missing record")
	}
}
