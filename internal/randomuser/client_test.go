package randomuser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchDecodesBatch(t *testing.T) {
	var gotResults string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotResults = r.URL.Query().Get("results")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"name":{"first":"Ann","last":"Lee"},"email":"ann@x.com","gender":"female"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	people, err := client.Fetch(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, "100", gotResults)
	require.Len(t, people, 1)
	assert.Equal(t, "Ann", people[0].Name.First)
	assert.Equal(t, "Lee", people[0].Name.Last)
	assert.Equal(t, "ann@x.com", people[0].Email)
	assert.Equal(t, "female", people[0].Gender)
}

func TestFetchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Fetch(context.Background(), 10)
	assert.Error(t, err)
}

func TestFetchTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, 20*time.Millisecond)
	_, err := client.Fetch(context.Background(), 10)
	assert.Error(t, err)
}

func TestFetchTransportError(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", time.Second)
	_, err := client.Fetch(context.Background(), 10)
	assert.Error(t, err)
}
