package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	logpkg "github.com/benvon/taskdeck/internal/logger"
	"github.com/benvon/taskdeck/internal/models"
	"github.com/benvon/taskdeck/internal/request"
	"github.com/benvon/taskdeck/internal/telemetry"
	"github.com/benvon/taskdeck/internal/validation"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// maxResponseBytes bounds how much of a response body is read
	maxResponseBytes = 10 << 20

	tasksPath = "/tasks"
	parsePath = "/ai/parse-task"
)

// errServerStatus marks a 5xx response as a breaker failure
var errServerStatus = errors.New("server error status")

// Client talks to the remote task service and its AI parsing endpoint.
// All calls share one base URL and JSON encoding. Calls are never retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	breaker    *gobreaker.CircuitBreaker
	timeout    time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets a per-request timeout. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithCircuitBreaker fails calls fast after maxFailures consecutive transport
// or 5xx failures, probing again after cooldown.
func WithCircuitBreaker(maxFailures int, cooldown time.Duration) Option {
	return func(c *Client) {
		if maxFailures < 1 {
			return
		}
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "task-service",
			MaxRequests: 1,
			Timeout:     cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= uint32(maxFailures)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				c.logger.Warn("circuit_breaker_state_change",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		})
	}
}

// NewClient creates a client for the task service rooted at baseURL
func NewClient(baseURL string, logger *zap.Logger, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", baseURL)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

// ListTasks returns the full task collection
func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, tasksPath, tasksPath, nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// CreateTask persists a task. Priority case variants are normalized before
// validation. The response body is ignored.
func (c *Client) CreateTask(ctx context.Context, task models.Task) error {
	task.Priority = task.Priority.Normalize()
	if err := validation.ValidateTask(task); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTask, err)
	}
	return c.do(ctx, http.MethodPost, tasksPath, tasksPath, task, nil)
}

// UpdateTask sends a partial status update for one task
func (c *Client) UpdateTask(ctx context.Context, id string, update models.TaskUpdate) error {
	path, err := taskPath(id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, tasksPath+"/{id}", update, nil)
}

// DeleteTask removes one task
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	path, err := taskPath(id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, path, tasksPath+"/{id}", nil, nil)
}

// ParseText sends free text to the AI parser and returns the candidate tasks it extracted
func (c *Client) ParseText(ctx context.Context, text string) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodPost, parsePath, parsePath, models.ParseRequest{Text: text}, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

func taskPath(id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", ErrMissingID
	}
	return tasksPath + "/" + url.PathEscape(id), nil
}

// response is what one round trip produced before status handling
type response struct {
	status int
	body   []byte
}

// do performs one request. route is the path template used for span names
// so task ids do not blow up span cardinality.
func (c *Client) do(ctx context.Context, method, path, route string, body, out any) error {
	ctx, requestID := request.Ensure(ctx)
	ctx, span := telemetry.Tracer().Start(ctx, method+" "+route,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "encode request")
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	start := time.Now()
	resp, err := c.execute(ctx, method, path, payload)
	duration := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		c.logger.Warn("api_request_failed",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("path", logpkg.SanitizePath(path)),
			zap.Int64("duration_ms", duration.Milliseconds()),
			zap.String("error", logpkg.SanitizeError(err)),
		)
		return err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.status))
	c.logger.Debug("api_request",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", logpkg.SanitizePath(path)),
		zap.Int("status_code", resp.status),
		zap.Int64("duration_ms", duration.Milliseconds()),
	)

	if resp.status < 200 || resp.status > 299 {
		apiErr := &APIError{Method: method, Path: path, StatusCode: resp.status, Payload: resp.body}
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.Int("status_code", resp.status),
			zap.Bool("not_found", IsNotFound(apiErr)),
			zap.String("payload", logpkg.SanitizePayload(resp.body)),
		}
		if IsServerError(apiErr) {
			c.logger.Warn("api_error_response", fields...)
		} else {
			c.logger.Debug("api_error_response", fields...)
		}
		span.SetStatus(codes.Error, http.StatusText(resp.status))
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode response")
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// execute sends the request, going through the circuit breaker when one is configured.
// Only transport errors and 5xx responses count as breaker failures.
func (c *Client) execute(ctx context.Context, method, path string, payload []byte) (*response, error) {
	if c.breaker == nil {
		return c.roundTrip(ctx, method, path, payload)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.roundTrip(ctx, method, path, payload)
		if err != nil {
			return nil, err
		}
		if IsServerError(&APIError{StatusCode: resp.status}) {
			return resp, errServerStatus
		}
		return resp, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrCircuitOpen)
	}
	if errors.Is(err, errServerStatus) {
		// The response itself is still reported to the caller as an APIError.
		return result.(*response), nil
	}
	if err != nil {
		return nil, err
	}
	return result.(*response), nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, payload []byte) (*response, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	request.SetHeader(ctx, req.Header)
	telemetry.InjectHeaders(ctx, req.Header)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Debug("failed_to_close_response_body", zap.Error(closeErr))
		}
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s %s response: %w", method, path, err)
	}
	return &response{status: resp.StatusCode, body: data}, nil
}
