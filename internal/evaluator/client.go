package evaluator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"wordnerd/internal/feedback"
)

// ClientConfig configures the HTTP judge client.
type ClientConfig struct {
	// BaseURL is the judge endpoint; the guess rides in as ?guess=word.
	BaseURL string
	// Timeout bounds a single request.
	Timeout time.Duration
	// MaxRetries is how many times a transient failure is retried
	// before it becomes fatal to the session. Zero disables retry.
	MaxRetries int
	// Backoff is the first retry delay; it doubles per retry.
	Backoff time.Duration
}

// Client is an Evaluator backed by a remote HTTP judge. Transient
// transport failures (network errors, 5xx) are retried with exponential
// backoff up to MaxRetries; anything else fails immediately.
type Client struct {
	cfg  ClientConfig
	http *http.Client
	log  *zap.Logger
}

// NewClient builds a judge client. log may be nil.
func NewClient(cfg ClientConfig, log *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("evaluator: base URL required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("evaluator: base URL: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 500 * time.Millisecond
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log,
	}, nil
}

// slotResult is the judge's wire format for one slot.
type slotResult struct {
	Slot   int    `json:"slot"`
	Guess  string `json:"guess"`
	Result string `json:"result"`
}

// Guess implements Evaluator.
func (c *Client) Guess(ctx context.Context, word string) ([]feedback.Record, error) {
	backoff := c.cfg.Backoff
	var lastErr error

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			c.log.Warn("retrying guess submission",
				zap.String("word", word),
				zap.Int("attempt", attempt),
				zap.Error(lastErr))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, &TransportError{Op: "submit " + word, Err: ctx.Err()}
			}
			backoff *= 2
		}

		recs, retryable, err := c.submit(ctx, word)
		if err == nil {
			return recs, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return nil, &TransportError{Op: "submit " + word, Err: lastErr}
}

func (c *Client) submit(ctx context.Context, word string) (recs []feedback.Record, retryable bool, err error) {
	u, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return nil, false, err
	}
	q := u.Query()
	q.Set("guess", word)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// Network-level failures are the transient case retry exists for,
		// unless the context itself is done.
		return nil, ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("judge returned %s: %s", resp.Status, body)
		return nil, resp.StatusCode >= 500, err
	}

	var results []slotResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, false, fmt.Errorf("malformed payload: %w", err)
	}
	if len(results) != len(word) {
		return nil, false, fmt.Errorf("judge returned %d slots for %d-letter guess", len(results), len(word))
	}

	recs = make([]feedback.Record, len(results))
	for i, r := range results {
		if r.Slot != i {
			return nil, false, fmt.Errorf("slot %d reported out of order as %d", i, r.Slot)
		}
		if len(r.Guess) != 1 {
			return nil, false, fmt.Errorf("slot %d echoes %q, want one letter", i, r.Guess)
		}
		outcome := feedback.Outcome(r.Result)
		if !outcome.Valid() {
			return nil, false, fmt.Errorf("slot %d carries unknown outcome %q", i, r.Result)
		}
		recs[i] = feedback.Record{Slot: i, Char: r.Guess[0], Outcome: outcome}
	}
	return recs, false, nil
}
