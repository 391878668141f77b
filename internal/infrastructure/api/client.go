package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/you/storeadmin/domain"
	"github.com/you/storeadmin/internal/observability"
)

// Client is the single transport to the remote REST API
type Client struct {
	baseURL     string
	httpClient  *http.Client
	interceptor *Interceptor
}

// NewClient creates a client rooted at baseURL. A zero timeout means no timeout.
func NewClient(baseURL string, timeout time.Duration, interceptor *Interceptor) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: timeout},
		interceptor: interceptor,
	}
}

// errorBody is the remote API error envelope; message is a string or a list of strings
type errorBody struct {
	Message    json.RawMessage `json:"message"`
	Name       string          `json:"name"`
	Code       string          `json:"code"`
	StatusCode int             `json:"statusCode"`
	Error      string          `json:"error"`
}

// Do sends the request and decodes a 2xx JSON body into out (if non-nil)
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	raw, err := c.Raw(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// Raw sends the request and returns the 2xx body untouched
func (c *Client) Raw(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	resource := resourceOf(path)
	ctx, span := observability.StartSpan(ctx, "api "+method+" "+resource,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	logger := zerolog.Ctx(ctx)
	start := time.Now()

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	c.interceptor.Apply(req)

	resp, err := c.httpClient.Do(req)
	observability.UpstreamRequestDuration.WithLabelValues(method, resource).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.UpstreamRequestsTotal.WithLabelValues(method, resource, "transport_error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		logger.Error().Err(err).Str("method", method).Str("path", path).Msg("Remote API unreachable")
		return nil, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		observability.UpstreamRequestsTotal.WithLabelValues(method, resource, "transport_error").Inc()
		span.RecordError(err)
		return nil, fmt.Errorf("%w: read body: %w", domain.ErrTransport, err)
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp.StatusCode, payload)
		observability.UpstreamRequestsTotal.WithLabelValues(method, resource, strconv.Itoa(resp.StatusCode)).Inc()
		span.SetStatus(codes.Error, apiErr.Error())
		logger.Warn().
			Int("status", resp.StatusCode).
			Str("method", method).
			Str("path", path).
			Str("error", apiErr.Error()).
			Msg("Remote API rejected request")
		return nil, apiErr
	}

	observability.UpstreamRequestsTotal.WithLabelValues(method, resource, "ok").Inc()
	logger.Debug().
		Int("status", resp.StatusCode).
		Str("method", method).
		Str("path", path).
		Dur("duration", time.Since(start)).
		Msg("Remote API call completed")
	return payload, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "*/*")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func decodeError(status int, payload []byte) *domain.APIError {
	apiErr := &domain.APIError{StatusCode: status}

	var envelope errorBody
	if err := json.Unmarshal(payload, &envelope); err != nil {
		apiErr.Body = strings.TrimSpace(string(payload))
		return apiErr
	}

	apiErr.Message = decodeMessage(envelope.Message)
	apiErr.Name = envelope.Name
	apiErr.Code = envelope.Code
	if apiErr.Message == "" {
		apiErr.Message = envelope.Error
	}
	if apiErr.Message == "" {
		apiErr.Body = strings.TrimSpace(string(payload))
	}
	return apiErr
}

func decodeMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return strings.Join(many, "; ")
	}
	return ""
}

// resourceOf keeps metric cardinality low: /products/42 -> products
func resourceOf(path string) string {
	trimmed := strings.Trim(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		if trimmed[:i] == "auth" {
			return trimmed
		}
		return trimmed[:i]
	}
	return trimmed
}

var _ domain.APIClient = (*Client)(nil)
