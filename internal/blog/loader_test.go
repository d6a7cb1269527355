package blog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/posts":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[
				{"title":"AI in 2024","category":"Tech","publishedDate":"2024-01-10","readingTimeMinutes":7},
				{"title":"Bare minimum"}
			]`))
		case "/object":
			_, _ = w.Write([]byte(`{"title":"not an array"}`))
		case "/garbage":
			_, _ = w.Write([]byte(`{{{`))
		case "/boom":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	loader := NewLoader(server.Client(), zerolog.Nop())

	t.Run("success replaces the whole collection", func(t *testing.T) {
		records, err := loader.Load(context.Background(), server.URL+"/posts")
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "AI in 2024", records[0].Title)
		require.NotNil(t, records[0].ReadingTimeMinutes)
		assert.Equal(t, 7, *records[0].ReadingTimeMinutes)
		assert.Nil(t, records[1].ReadingTimeMinutes)
	})

	t.Run("http 500", func(t *testing.T) {
		_, err := loader.Load(context.Background(), server.URL+"/boom")
		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, KindHTTPStatus, loadErr.Kind)
		assert.Equal(t, http.StatusInternalServerError, loadErr.Status)
		assert.Equal(t, "Failed to fetch blogs (Status: 500)", loadErr.Error())
	})

	t.Run("http 404", func(t *testing.T) {
		_, err := loader.Load(context.Background(), server.URL+"/missing")
		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, KindHTTPStatus, loadErr.Kind)
		assert.Equal(t, http.StatusNotFound, loadErr.Status)
	})

	t.Run("non-array body is malformed", func(t *testing.T) {
		_, err := loader.Load(context.Background(), server.URL+"/object")
		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, KindMalformedResponse, loadErr.Kind)
	})

	t.Run("undecodable body is malformed", func(t *testing.T) {
		_, err := loader.Load(context.Background(), server.URL+"/garbage")
		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, KindMalformedResponse, loadErr.Kind)
	})
}

func TestLoader_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	loader := NewLoader(nil, zerolog.Nop())
	_, err := loader.Load(context.Background(), url)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, KindNetwork, loadErr.Kind)
	assert.NotNil(t, errors.Unwrap(loadErr), "network errors wrap their cause")
}

func TestLoadError_Messages(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name string
		err  *LoadError
		want string
	}{
		{
			name: "http status",
			err:  &LoadError{Kind: KindHTTPStatus, Status: 503},
			want: "Failed to fetch blogs (Status: 503)",
		},
		{
			name: "network",
			err:  &LoadError{Kind: KindNetwork, Err: cause},
			want: "fetching blogs: connection refused",
		},
		{
			name: "malformed",
			err:  &LoadError{Kind: KindMalformedResponse, Err: cause},
			want: "malformed blog response: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}
