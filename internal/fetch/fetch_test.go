package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

const fastaBody = ">NC_TEST test record\nACGTACGT\n"

func newSource(url string) *Source {
	return &Source{BaseURL: url, Attempts: 3, BaseDelay: time.Millisecond}
}

func TestFetchLocalPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.fa")
	require.NoError(t, os.WriteFile(path, []byte(fastaBody), 0o644))

	got, err := newSource("http://unused.invalid").Fetch(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, fastaBody, got)
}

func TestFetchLocalGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.fa.gz")
	fh, err := os.Create(path)
	require.NoError(t, err)
	gw := gzip.NewWriter(fh)
	_, err = gw.Write([]byte(fastaBody))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, fh.Close())

	got, err := newSource("http://unused.invalid").Fetch(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, fastaBody, got)
}

func TestFetchLocalUnreadableFailsImmediately(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.fa")
	require.NoError(t, os.WriteFile(path, []byte(fastaBody), 0o000))
	if fh, openErr := os.Open(path); openErr == nil {
		_ = fh.Close()
		t.Skip("running with permissions that ignore file modes")
	}
	_, err := newSource("http://unused.invalid").Fetch(context.Background(), path)
	require.Error(t, err)
	var nerr *NetworkError
	require.NotErrorAs(t, err, &nerr, "local failures must not be network errors")
}

func TestFetchRemoteSucceedsOnThirdAttempt(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			http.Error(w, "flaky", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(fastaBody))
	}))
	defer srv.Close()

	got, err := newSource(srv.URL).Fetch(context.Background(), "NC_TEST")
	require.NoError(t, err)
	require.Equal(t, fastaBody, got)
	require.Equal(t, 3, calls)
}

func TestFetchRemoteExhaustsAttempts(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newSource(srv.URL).Fetch(context.Background(), "NC_TEST")
	require.Error(t, err)
	var nerr *NetworkError
	require.ErrorAs(t, err, &nerr)
	require.Equal(t, http.StatusServiceUnavailable, nerr.Status)
	require.Equal(t, "NC_TEST", nerr.ID)
	require.Equal(t, 3, calls)
}

func TestFetchRemoteQueryParameters(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		got = map[string]string{
			"db":      q.Get("db"),
			"id":      q.Get("id"),
			"rettype": q.Get("rettype"),
			"retmode": q.Get("retmode"),
			"api_key": q.Get("api_key"),
		}
		_, _ = w.Write([]byte(fastaBody))
	}))
	defer srv.Close()

	src := &Source{BaseURL: srv.URL, DB: "nucleotide", APIKey: "sekrit", Attempts: 1}
	_, err := src.Fetch(context.Background(), "KY417146.1")
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"db":      "nucleotide",
		"id":      "KY417146.1",
		"rettype": "fasta",
		"retmode": "text",
		"api_key": "sekrit",
	}, got)
}

func TestFetchRemoteOmitsAPIKeyWhenUnset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, present := r.URL.Query()["api_key"]; present {
			http.Error(w, "unexpected api_key", http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(fastaBody))
	}))
	defer srv.Close()

	_, err := newSource(srv.URL).Fetch(context.Background(), "NC_TEST")
	require.NoError(t, err)
}

func TestFetchRemoteHonorsCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &Source{BaseURL: srv.URL, Attempts: 3, BaseDelay: time.Hour}
	start := time.Now()
	_, err := src.Fetch(ctx, "NC_TEST")
	require.Error(t, err)
	require.Less(t, time.Since(start), time.Second, "cancellation must not wait out the backoff")
}
