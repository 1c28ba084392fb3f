package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"clipdeck/internal/composition"
	"clipdeck/internal/trace"
)

// DefaultBaseURL is where the composition service listens by default.
const DefaultBaseURL = "http://localhost:8080/api/v1"

// maxBody caps how much of a response body is read.
const maxBody = 8 << 20

// Client talks to the composition service.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	tracer  oteltrace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets a per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTracer sets the tracer used for client spans.
func WithTracer(t oteltrace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// New creates a client for the API rooted at baseURL (DefaultBaseURL if empty).
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		logger:  zap.NewNop(),
		tracer:  noop.NewTracerProvider().Tracer(trace.InstrumentationName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CloseIdleConnections releases pooled connections held by the client.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}

// Composition fetches the full composition document.
func (c *Client) Composition(ctx context.Context) (*composition.Composition, error) {
	ctx, span := c.tracer.Start(ctx, "composition.fetch")
	defer span.End()

	var comp composition.Composition
	if err := c.do(ctx, http.MethodGet, &comp, "composition"); err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("fetch composition: %w", err)
	}
	span.SetAttributes(trace.AttrLayers.Int(comp.LayerCount()))
	return &comp, nil
}

// SlotProbe describes what occupies a clip slot.
type SlotProbe struct {
	Layer  int
	Slot   int
	ClipID int64
	Empty  bool
}

type slotResponse struct {
	Clip *struct {
		ID int64 `json:"id"`
	} `json:"clip"`
}

// ClipSlot reports whether the slot at (layer, slot) holds a clip.
func (c *Client) ClipSlot(ctx context.Context, layer, slot int) (SlotProbe, error) {
	ctx, span := c.tracer.Start(ctx, "clip.probe", oteltrace.WithAttributes(
		trace.AttrLayer.Int(layer),
		trace.AttrSlot.Int(slot),
	))
	defer span.End()

	var resp slotResponse
	if err := c.do(ctx, http.MethodGet, &resp, slotPath(layer, slot)...); err != nil {
		recordError(span, err)
		return SlotProbe{}, fmt.Errorf("probe layer %d slot %d: %w", layer, slot, err)
	}
	probe := SlotProbe{Layer: layer, Slot: slot, Empty: resp.Clip == nil}
	if resp.Clip != nil {
		probe.ClipID = resp.Clip.ID
	}
	return probe, nil
}

// Connect triggers the clip at (layer, slot). Any 2xx is success; the body is
// ignored.
func (c *Client) Connect(ctx context.Context, layer, slot int) error {
	ctx, span := c.tracer.Start(ctx, "clip.connect", oteltrace.WithAttributes(
		trace.AttrLayer.Int(layer),
		trace.AttrSlot.Int(slot),
	))
	defer span.End()

	if err := c.do(ctx, http.MethodPost, nil, append(slotPath(layer, slot), "connect")...); err != nil {
		recordError(span, err)
		return fmt.Errorf("connect layer %d slot %d: %w", layer, slot, err)
	}
	return nil
}

func slotPath(layer, slot int) []string {
	return []string{"composition", "layers", strconv.Itoa(layer), "clips", strconv.Itoa(slot)}
}

// do issues a request and, when out is non-nil, decodes the JSON body into it.
func (c *Client) do(ctx context.Context, method string, out any, elem ...string) error {
	u, err := url.JoinPath(c.baseURL, elem...)
	if err != nil {
		return fmt.Errorf("build url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", zap.String("method", method), zap.String("url", u), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug("request",
		zap.String("method", method),
		zap.String("url", u),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return &StatusError{
			Method:     method,
			Path:       req.URL.Path,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err := sonic.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

func recordError(span oteltrace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	var se *StatusError
	if errors.As(err, &se) {
		span.SetAttributes(attribute.Int("http.status_code", se.StatusCode))
	}
}
