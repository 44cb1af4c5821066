package cricapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL      = "https://api.cricapi.com/v1"
	defaultTimeout      = 10 * time.Second
	defaultRetryBackoff = 500 * time.Millisecond
	maxResponseBytes    = 4 << 20

	TransportNetHTTP  = "nethttp"
	TransportFastHTTP = "fasthttp"
)

var (
	// errTransient marks failures worth retrying and counting against the
	// circuit breaker: network errors, 429 and 5xx.
	errTransient = crerr.New("cricapi transient failure")
	// errFailureStatus is a well-formed envelope whose status is not success.
	errFailureStatus = crerr.New("cricapi returned failure status")
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	RateLimit      float64
	RateBurst      int
	Transport      string
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads matches, squads and player profiles from a CricAPI-compatible
// provider. It implements usecase.MatchProvider.
type Client struct {
	doer         requestDoer
	baseURL      string
	apiKey       string
	maxRetries   int
	retryBackoff time.Duration
	limiter      *rate.Limiter
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("cricapi")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}

	breaker := resilience.NewCircuitBreaker("cricapi", cfg.CircuitBreaker,
		resilience.WithFailurePredicate(isTransient),
		resilience.WithStateChange(func(name string, from, to resilience.CircuitState) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from, "to", to)
		}),
	)

	return &Client{
		doer:         newRequestDoer(cfg.Transport, cfg.HTTPClient, timeout),
		baseURL:      baseURL,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		limiter:      rate.NewLimiter(limit, burst),
		logger:       logger,
		breaker:      breaker,
	}
}

// CurrentMatches is the primary listing: matches in progress or about to start.
func (c *Client) CurrentMatches(ctx context.Context) ([]match.Match, error) {
	items, err := fetch[[]matchPayload](ctx, c, "/currentMatches", url.Values{"offset": {"0"}})
	if err != nil {
		return nil, fmt.Errorf("fetch current matches: %w", err)
	}
	return toMatches(items), nil
}

// Matches is the broader listing used when CurrentMatches fails.
func (c *Client) Matches(ctx context.Context) ([]match.Match, error) {
	items, err := fetch[[]matchPayload](ctx, c, "/matches", url.Values{"offset": {"0"}})
	if err != nil {
		return nil, fmt.Errorf("fetch matches: %w", err)
	}
	return toMatches(items), nil
}

func (c *Client) Squad(ctx context.Context, matchID string) ([]player.SquadTeam, error) {
	items, err := fetch[[]squadPayload](ctx, c, "/match_squad", url.Values{"id": {matchID}})
	if err != nil {
		return nil, fmt.Errorf("fetch squad match_id=%s: %w", matchID, err)
	}

	out := make([]player.SquadTeam, 0, len(items))
	for _, item := range items {
		out = append(out, item.toSquadTeam())
	}
	return out, nil
}

func (c *Client) PlayerInfo(ctx context.Context, playerID string) (player.Profile, error) {
	item, err := fetch[playerInfoPayload](ctx, c, "/players_info", url.Values{"id": {playerID}})
	if err != nil {
		return player.Profile{}, fmt.Errorf("fetch player info player_id=%s: %w", playerID, err)
	}
	return item.toProfile(), nil
}

// fetch performs one GET and decodes the envelope's data into T. Identical
// concurrent requests share a single upstream call.
func fetch[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var zero T

	values := url.Values{}
	for key, vals := range query {
		values[key] = append([]string(nil), vals...)
	}
	values.Set("apikey", c.apiKey)
	fullURL := c.baseURL + path + "?" + values.Encode()

	preview := requestPreview(http.MethodGet, fullURL)
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.String("cricapi.path", path),
			attribute.String("cricapi.request_preview", preview),
		)
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		var raw []byte
		callErr := c.breaker.Do(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(ctx, fullURL, preview)
			return reqErr
		})
		return raw, callErr
	})
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "circuit breaker rejected request", "path", path, "state", c.breaker.State())
			return zero, fmt.Errorf("%w: cricket data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return zero, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return zero, crerr.Newf("unexpected response payload type %T", out)
	}

	var head envelopeHead
	if err := sonic.Unmarshal(raw, &head); err != nil {
		return zero, crerr.Wrap(err, "decode provider envelope")
	}
	if !strings.EqualFold(strings.TrimSpace(head.Status), statusSuccess) {
		return zero, crerr.Mark(
			crerr.Newf("provider status=%q reason=%q", head.Status, head.Reason),
			errFailureStatus,
		)
	}

	var env envelope[T]
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return zero, crerr.Wrap(err, "decode provider payload")
	}
	return env.Data, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL, preview string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, crerr.Wrap(err, "wait for rate limiter")
		}

		c.logger.DebugContext(ctx, "provider request", "attempt", attempt+1, "request", preview)
		status, raw, err := c.doer.get(ctx, fullURL)
		switch {
		case err != nil:
			lastErr = crerr.Mark(crerr.Newf("send request: %s", redactSecret(err.Error(), c.apiKey)), errTransient)
		case status >= 200 && status < 300:
			return raw, nil
		case isRetryableStatus(status):
			lastErr = crerr.Mark(crerr.Newf("provider status=%d body=%s", status, abbreviateBody(raw)), errTransient)
		default:
			return nil, crerr.Newf("provider status=%d body=%s", status, abbreviateBody(raw))
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "provider request failed", "request", preview, "error", lastErr)
	return nil, lastErr
}

func isTransient(err error) bool {
	return err != nil && crerr.Is(err, errTransient)
}

// IsFailureStatus reports whether err came from a provider envelope with a
// non-success status, as opposed to a transport problem.
func IsFailureStatus(err error) bool {
	return err != nil && crerr.Is(err, errFailureStatus)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
