package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fekuna/ecoscan/internal/apperror"
	"github.com/fekuna/ecoscan/internal/logger"
	"github.com/google/uuid"
	"github.com/guonaihong/gout"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client performs single-attempt JSON calls against the shop backend.
// Failed calls are never retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.ZapLogger
}

func NewClient(baseURL string, timeout time.Duration, log logger.ZapLogger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}
}

// NewClientWithHTTP lets tests plug in an httptest client.
func NewClientWithHTTP(baseURL string, hc *http.Client, log logger.ZapLogger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
		logger:     log,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends in as a JSON body (when non-nil) and decodes a 2xx response into out
// (when non-nil). Transport failures and non-2xx answers are reported as
// apperror.ErrNetworkFailure; the latter as *apperror.StatusError.
func (c *Client) Do(ctx context.Context, method, path, token string, in, out any) error {
	url := c.baseURL + path
	requestID := uuid.New().String()

	header := gout.H{"X-Request-ID": requestID}
	if token != "" {
		header["Authorization"] = "Bearer " + token
	}

	g := gout.New(c.httpClient)
	df := g.GET(url)
	switch method {
	case http.MethodGet:
	case http.MethodPost:
		df = g.POST(url)
	case http.MethodPut:
		df = g.PUT(url)
	case http.MethodDelete:
		df = g.DELETE(url)
	default:
		return fmt.Errorf("unsupported method %s", method)
	}

	df = df.WithContext(ctx).SetHeader(header)
	if in != nil {
		df = df.SetJSON(in)
	}

	var (
		body string
		code int
	)
	start := time.Now()
	err := df.BindBody(&body).Code(&code).Do()
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return fmt.Errorf("%s %s: %w: %v", method, path, apperror.ErrNetworkFailure, err)
	}

	c.logger.Debug("request done",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", code),
		zap.Duration("took", time.Since(start)),
	)

	if code < 200 || code > 299 {
		return fmt.Errorf("%s %s: %w", method, path, apperror.NewStatusError(code, errorMessage(body)))
	}

	if out != nil && body != "" {
		if err := json.Unmarshal([]byte(body), out); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}
	return nil
}

// errorMessage extracts the {"error": "..."} field the backend puts on failures.
func errorMessage(body string) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}
