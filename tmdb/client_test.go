package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMovieByTitle(t *testing.T) {
	var gotKey, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Ocp-Apim-Subscription-Key")
		gotQuery = r.URL.Query().Get("query")
		assert.Equal(t, "/3/search/movie", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"id":3170,"title":"Bambi","overview":"A young deer grows up.","poster_path":"/bambi.jpg"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-key")
	movie := client.GetMovieByTitle(context.Background(), "Bambi")

	assert.Equal(t, "secret-key", gotKey)
	assert.Equal(t, "Bambi", gotQuery)
	assert.Equal(t, "3170", movie.ID)
	assert.Equal(t, "Bambi", movie.Title)
	assert.Equal(t, "A young deer grows up.", movie.Plot)
	assert.Equal(t, "https://image.tmdb.org/t/p/original//bambi.jpg", movie.PosterURL)
}

func TestGetMovieByTitleNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	movie := client.GetMovieByTitle(context.Background(), "Nonexistent Movie")

	assert.Equal(t, "Nonexistent Movie", movie.Title)
	assert.Contains(t, movie.Plot, "was not found")
	assert.Equal(t, PlaceholderPosterURL, movie.PosterURL)
}

func TestGetMovieByTitleServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(server.URL, "")
	movie := client.GetMovieByTitle(context.Background(), "Bambi")

	assert.Equal(t, "Bambi", movie.Title)
	assert.Equal(t, PlaceholderPosterURL, movie.PosterURL)
}

func TestGetMovieByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/movie/744", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":744,"title":"Top Gun","overview":"Pilots.","poster_path":"/topgun.jpg"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	movie := client.GetMovieByID(context.Background(), "744")

	assert.Equal(t, "744", movie.ID)
	assert.Equal(t, "Top Gun", movie.Title)
}

func TestGetMovieByIDErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	movie := client.GetMovieByID(context.Background(), "999999")

	assert.Equal(t, "999999", movie.Title)
	assert.Equal(t, PlaceholderPosterURL, movie.PosterURL)
}

func TestMissingPosterPathUsesPlaceholder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"id":1,"title":"Obscure","overview":"","poster_path":""}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	movie := client.GetMovieByTitle(context.Background(), "Obscure")

	assert.Equal(t, PlaceholderPosterURL, movie.PosterURL)
}
