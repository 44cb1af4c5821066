package cricapi

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// requestDoer performs one GET and returns the status and body.
type requestDoer interface {
	get(ctx context.Context, fullURL string) (int, []byte, error)
}

func newRequestDoer(kind string, client *http.Client, timeout time.Duration) requestDoer {
	if strings.EqualFold(strings.TrimSpace(kind), TransportFastHTTP) {
		return &fastHTTPDoer{
			client: &fasthttp.Client{
				Name:                "fantasy-cricket",
				ReadTimeout:         timeout,
				WriteTimeout:        timeout,
				MaxResponseBodySize: maxResponseBytes,
			},
			timeout: timeout,
		}
	}

	if client == nil {
		client = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &netHTTPDoer{client: client}
}

type netHTTPDoer struct {
	client *http.Client
}

func (d *netHTTPDoer) get(ctx context.Context, fullURL string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return 0, nil, crerr.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, crerr.Wrap(err, "read response body")
	}
	return resp.StatusCode, body, nil
}

type fastHTTPDoer struct {
	client  *fasthttp.Client
	timeout time.Duration
}

func (d *fastHTTPDoer) get(ctx context.Context, fullURL string) (int, []byte, error) {
	deadline := time.Now().Add(d.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if err := d.client.DoDeadline(req, resp, deadline); err != nil {
		return 0, nil, err
	}

	// resp is returned to the pool, so the body must be copied out.
	body := append([]byte(nil), resp.Body()...)
	return resp.StatusCode(), body, nil
}
