// internal/fetch/fetch.go
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"

	"seqprof/internal/version"
)

const (
	// DefaultBaseURL is the NCBI E-utilities record-lookup endpoint.
	DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
	// DefaultDB is the nucleotide database queried by default.
	DefaultDB = "nuccore"

	defaultAttempts  = 3
	defaultBaseDelay = 100 * time.Millisecond
)

// NetworkError is the all-attempts-exhausted failure of a remote fetch.
// Status holds the last HTTP status seen, or 0 for transport-level failures.
type NetworkError struct {
	ID     string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d: %v", e.ID, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.ID, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Source obtains raw sequence text for an identifier: an existing local file
// is read directly (no retries), anything else is treated as a remote
// accession against the efetch endpoint. Zero-value fields fall back to the
// defaults above.
type Source struct {
	BaseURL   string
	DB        string
	APIKey    string        // appended as api_key when non-empty
	Attempts  int           // total attempts, including the first
	BaseDelay time.Duration // backoff base; delay grows as base * 2^attempt
	Client    *http.Client
}

// Fetch returns the full raw text for identifier. All-or-nothing: no partial
// body is ever returned.
func (s *Source) Fetch(ctx context.Context, identifier string) (string, error) {
	if fi, err := os.Stat(identifier); err == nil && !fi.IsDir() {
		return s.readLocal(identifier)
	}
	return s.fetchRemote(ctx, identifier)
}

// readLocal reads a local sequence file. Local reads never retry: the file
// is either there or it is not.
func (s *Source) readLocal(path string) (string, error) {
	rc, err := openLocal(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}

func (s *Source) requestURL(id string) string {
	base := s.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	db := s.DB
	if db == "" {
		db = DefaultDB
	}
	q := url.Values{}
	q.Set("db", db)
	q.Set("id", id)
	q.Set("rettype", "fasta")
	q.Set("retmode", "text")
	if s.APIKey != "" {
		q.Set("api_key", s.APIKey)
	}
	return base + "?" + q.Encode()
}

func (s *Source) fetchRemote(ctx context.Context, id string) (string, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	attempts := s.Attempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	delay := s.BaseDelay
	if delay <= 0 {
		delay = defaultBaseDelay
	}

	u := s.requestURL(id)
	var (
		body       []byte
		lastStatus int
	)
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", "seqprof/"+version.Version)
		resp, err := client.Do(req)
		if err != nil {
			lastStatus = 0
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			_, _ = io.Copy(io.Discard, resp.Body)
			lastStatus = resp.StatusCode
			return fmt.Errorf("unexpected status %s", resp.Status)
		}
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			lastStatus = 0
			return fmt.Errorf("read body: %w", err)
		}
		body = b
		return nil
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = delay
	eb.Multiplier = 2
	eb.RandomizationFactor = 0
	pol := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(attempts-1)), ctx)
	if err := backoff.Retry(op, pol); err != nil {
		return "", &NetworkError{ID: id, Status: lastStatus, Err: err}
	}
	return string(body), nil
}
