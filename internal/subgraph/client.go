package subgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrUpstream marks a failed subgraph query: transport, HTTP status, GraphQL
// errors or an open circuit.
var ErrUpstream = errors.New("subgraph upstream failure")

const maxErrorBody = 512

// Config configures a subgraph client.
type Config struct {
	Name         string
	URL          string
	RPS          float64
	MaxRetries   int
	RetryBackoff time.Duration
	Timeout      time.Duration
}

// Client posts GraphQL queries to one subgraph endpoint.
type Client struct {
	name       string
	url        string
	http       *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	maxRetries int
	backoff    time.Duration
	logger     *zap.Logger
}

type request struct {
	Query string `json:"query"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Name == "" {
		cfg.Name = "subgraph"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}

	settings := gobreaker.Settings{
		Name:     cfg.Name,
		Interval: 60 * time.Second,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("subgraph breaker state change",
				zap.String("subgraph", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &Client{
		name:       cfg.Name,
		url:        cfg.URL,
		http:       &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
		breaker:    gobreaker.NewCircuitBreaker(settings),
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.RetryBackoff,
		logger:     logger,
	}
}

// Name returns the subgraph label used in logs and metrics.
func (c *Client) Name() string {
	return c.name
}

// Query runs a GraphQL query and decodes its data object into out. Transport
// and 5xx failures are retried with exponential backoff; GraphQL errors, 4xx
// responses and an open breaker are not.
func (c *Client) Query(ctx context.Context, query string, out interface{}) error {
	attempt := 0
	err := withRetry(ctx, c.maxRetries, c.backoff, func(ctx context.Context) error {
		attempt++
		if err := c.limiter.Wait(ctx); err != nil {
			return permanent(err)
		}
		_, err := c.breaker.Execute(func() (interface{}, error) {
			return nil, c.do(ctx, query, out)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return permanent(err)
		}
		if err != nil {
			c.logger.Debug("subgraph attempt failed",
				zap.String("subgraph", c.name),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUpstream, c.name, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, query string, out interface{}) error {
	body, err := json.Marshal(request{Query: query})
	if err != nil {
		return permanent(fmt.Errorf("encode query: %w", err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		err := fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return permanent(err)
		}
		return err
	}

	var decoded response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Errors) > 0 {
		messages := make([]string, 0, len(decoded.Errors))
		for _, e := range decoded.Errors {
			messages = append(messages, e.Message)
		}
		return permanent(fmt.Errorf("graphql errors: %s", strings.Join(messages, "; ")))
	}
	if len(decoded.Data) == 0 || string(decoded.Data) == "null" {
		return permanent(errors.New("empty data"))
	}
	if err := json.Unmarshal(decoded.Data, out); err != nil {
		return permanent(fmt.Errorf("decode data: %w", err))
	}
	return nil
}
