package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGoogleProviderRetriesTransientFailures(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(embedResponse{
			Predictions: []embedPrediction{{TextEmbedding: []float32{0.1, 0.2}}},
		})
	}))
	defer ts.Close()

	provider := NewGoogleProvider("test-key", "", 4, 3).
		WithEndpoint(ts.URL).
		WithRetryDelay(time.Millisecond)

	vector, err := provider.EmbedText(context.Background(), "stuck paper tray")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("got %d attempts, want 3", attempts)
	}
	if len(vector) != 4 {
		t.Fatalf("got %d dims, want 4", len(vector))
	}
}

func TestGoogleProviderExhaustsRetryBudget(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	provider := NewGoogleProvider("test-key", "", 4, 3).
		WithEndpoint(ts.URL).
		WithRetryDelay(time.Millisecond)

	_, err := provider.EmbedText(context.Background(), "blinking red light")
	if !errors.Is(err, ErrEmbeddingFailed) {
		t.Fatalf("got %v, want ErrEmbeddingFailed", err)
	}
	if attempts != 3 {
		t.Fatalf("got %d attempts, want 3", attempts)
	}
}

func TestGoogleProviderImageEmbedding(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req embedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if len(req.Instances) != 1 || req.Instances[0].Image == nil {
			t.Error("expected one image instance")
		}
		json.NewEncoder(w).Encode(embedResponse{
			Predictions: []embedPrediction{{ImageEmbedding: []float32{0.3}}},
		})
	}))
	defer ts.Close()

	provider := NewGoogleProvider("test-key", "", 2, 3).WithEndpoint(ts.URL)

	vector, err := provider.EmbedImage(context.Background(), []byte{0xff, 0xd8}, "image/jpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vector) != 2 {
		t.Fatalf("got %d dims, want 2", len(vector))
	}
}

func TestGoogleProviderEmptyInput(t *testing.T) {
	provider := NewGoogleProvider("test-key", "", 4, 3)

	if _, err := provider.EmbedImage(context.Background(), nil, "image/png"); err == nil {
		t.Fatal("expected error for empty image")
	}
	if _, err := provider.EmbedText(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestGoogleProviderEndpointFollowsConfiguredModel(t *testing.T) {
	provider := NewGoogleProvider("test-key", "text-embedding-004", 4, 3)
	want := "https://generativelanguage.googleapis.com/v1beta/models/text-embedding-004:predict"
	if provider.endpoint != want {
		t.Fatalf("got endpoint %q, want %q", provider.endpoint, want)
	}

	provider = NewGoogleProvider("test-key", "", 4, 3)
	want = "https://generativelanguage.googleapis.com/v1beta/models/multimodalembedding@001:predict"
	if provider.endpoint != want {
		t.Fatalf("got endpoint %q, want %q", provider.endpoint, want)
	}
}
