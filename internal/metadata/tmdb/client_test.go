package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/movietrend/movietrend/internal/config"
)

func newTestClient(server *httptest.Server) *Client {
	cfg := config.TMDBConfig{
		BaseURL:     server.URL,
		BearerToken: "test-token",
		ContentType: "application/json",
		Timeout:     5,
	}
	return NewClient(cfg, zerolog.Nop())
}

func trendingMovies(n int) []MovieResult {
	movies := make([]MovieResult, n)
	for i := range movies {
		poster := fmt.Sprintf("/poster%d.jpg", i+1)
		movies[i] = MovieResult{
			ID:          i + 1,
			Title:       fmt.Sprintf("Movie %d", i+1),
			Overview:    fmt.Sprintf("Overview %d", i+1),
			VoteAverage: 7.5,
			PosterPath:  &poster,
		}
	}
	return movies
}

func TestClient_Name(t *testing.T) {
	client := NewClient(config.TMDBConfig{}, zerolog.Nop())
	if client.Name() != "tmdb" {
		t.Errorf("Name() = %q, want %q", client.Name(), "tmdb")
	}
}

func TestClient_IsConfigured(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"with token", "abc123", true},
		{"without token", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(config.TMDBConfig{BearerToken: tt.token}, zerolog.Nop())
			if got := client.IsConfigured(); got != tt.want {
				t.Errorf("IsConfigured() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClient_Trending_BearerAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/trending/movie/week" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		if r.URL.Query().Has("api_key") {
			t.Errorf("api_key should not be sent with bearer auth")
		}
		if got := r.URL.Query().Get("language"); got != "fr" {
			t.Errorf("language = %q, want fr", got)
		}
		json.NewEncoder(w).Encode(TrendingResponse{Page: 1, Results: trendingMovies(3)})
	}))
	defer server.Close()

	client := newTestClient(server)
	results, err := client.Trending(context.Background(), TrendingRequest{Language: "fr", Limit: 10})
	if err != nil {
		t.Fatalf("Trending() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Trending() returned %d results, want 3", len(results))
	}
}

func TestClient_Trending_APIKeyOverridesBearer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("api_key"); got != "caller-key" {
			t.Errorf("api_key = %q, want caller-key", got)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q, want none", got)
		}
		json.NewEncoder(w).Encode(TrendingResponse{Results: trendingMovies(1)})
	}))
	defer server.Close()

	client := newTestClient(server)
	if _, err := client.Trending(context.Background(), TrendingRequest{APIKey: "caller-key", Language: "en"}); err != nil {
		t.Fatalf("Trending() error = %v", err)
	}
}

func TestClient_Trending_Truncates(t *testing.T) {
	tests := []struct {
		name      string
		available int
		limit     int
		want      int
	}{
		{"more available than requested", 20, 5, 5},
		{"fewer available than requested", 3, 10, 3},
		{"exact", 4, 4, 4},
		{"no limit", 6, 0, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(TrendingResponse{Results: trendingMovies(tt.available)})
			}))
			defer server.Close()

			results, err := newTestClient(server).Trending(context.Background(), TrendingRequest{Limit: tt.limit})
			if err != nil {
				t.Fatalf("Trending() error = %v", err)
			}
			if len(results) != tt.want {
				t.Fatalf("len(results) = %d, want %d", len(results), tt.want)
			}
			for i, m := range results {
				if want := fmt.Sprintf("Movie %d", i+1); m.Title != want {
					t.Errorf("results[%d].Title = %q, want %q", i, m.Title, want)
				}
			}
		})
	}
}

func TestClient_Trending_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"server error", http.StatusInternalServerError, ErrAPIError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(ErrorResponse{StatusCode: 7, StatusMessage: "nope"})
			}))
			defer server.Close()

			_, err := newTestClient(server).Trending(context.Background(), TrendingRequest{Limit: 10})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Trending() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClient_Trending_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newTestClient(server)
	server.Close()

	if _, err := client.Trending(context.Background(), TrendingRequest{}); err == nil {
		t.Error("Trending() expected error for closed server")
	}
}

func TestClient_Trending_NoCredentials(t *testing.T) {
	client := NewClient(config.TMDBConfig{BaseURL: "http://127.0.0.1:0"}, zerolog.Nop())
	_, err := client.Trending(context.Background(), TrendingRequest{})
	if !errors.Is(err, ErrAPIKeyMissing) {
		t.Errorf("Trending() error = %v, want %v", err, ErrAPIKeyMissing)
	}
}

func TestClient_ImageConfiguration(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/configuration" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		w.Write([]byte(`{"images":{"base_url":"http://image.tmdb.org/t/p/","secure_base_url":"https://image.tmdb.org/t/p/","poster_sizes":["w92","w154","w185","w342","w500","w780","original"]}}`))
	}))
	defer server.Close()

	cfg, err := newTestClient(server).ImageConfiguration(context.Background(), "")
	if err != nil {
		t.Fatalf("ImageConfiguration() error = %v", err)
	}
	if cfg.BaseURL != "http://image.tmdb.org/t/p/" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if len(cfg.PosterSizes) != 7 {
		t.Errorf("len(PosterSizes) = %d, want 7", len(cfg.PosterSizes))
	}
}

func TestClient_ImageConfiguration_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newTestClient(server).ImageConfiguration(context.Background(), "")
	if !errors.Is(err, ErrAPIError) {
		t.Errorf("ImageConfiguration() error = %v, want %v", err, ErrAPIError)
	}
}
