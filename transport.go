package helixir

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"helixir/internal/logger"
	"helixir/models"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// userAgent identifies the client to the API.
const userAgent = "helixir-go"

// Statuses the API serves transiently; requests hitting them are
// retried with backoff.
var retryStatus = map[int]bool{
	http.StatusRequestTimeout:      true,
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// doRequest performs one HTTP request with retries and returns the
// raw response body. The auth token travels as the token query
// parameter. Error statuses carrying a {message, errors} envelope
// come back as *APIError.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, query url.Values) ([]byte, error) {
	endpointURL := c.baseURL.JoinPath(endpoint)
	if c.cfg.AuthToken != "" {
		merged := url.Values{}
		for key, values := range query {
			merged[key] = values
		}
		merged.Set("token", c.cfg.AuthToken)
		query = merged
	}
	if len(query) > 0 {
		endpointURL.RawQuery = query.Encode()
	}
	requestID := uuid.NewString()

	var delay time.Duration
	attempts := c.cfg.RetryAttempts
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, method, endpointURL.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("building request failed: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("X-Request-ID", requestID)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if attempt < attempts {
				delay = nextDelay(delay)
				logger.Debugf("request %s to %s failed (%v), retrying in %s", requestID, endpoint, err, delay)
				if !sleepWithContext(ctx, delay) {
					return nil, ctx.Err()
				}
				continue
			}
			return nil, fmt.Errorf("request to %s failed after %d attempts: %w", endpoint, attempt+1, err)
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("reading response from %s failed: %w", endpoint, readErr)
		}

		if retryStatus[resp.StatusCode] && attempt < attempts {
			delay = nextDelay(delay)
			logger.Debugf("request %s to %s got status %d, retrying in %s", requestID, endpoint, resp.StatusCode, delay)
			if !sleepWithContext(ctx, delay) {
				return nil, ctx.Err()
			}
			continue
		}
		if resp.StatusCode >= 300 {
			return nil, apiError(resp.StatusCode, body)
		}
		return body, nil
	}
}

// apiError surfaces the API error envelope when the body carries one.
func apiError(status int, body []byte) error {
	if gjson.ValidBytes(body) {
		parsed := gjson.ParseBytes(body)
		msg := parsed.Get("message")
		errList := parsed.Get("errors")
		if msg.Exists() && errList.Exists() {
			apiErr := &APIError{Status: status, Message: msg.String()}
			for _, item := range errList.Array() {
				apiErr.Errors = append(apiErr.Errors, item.String())
			}
			return apiErr
		}
	}
	trimmed := strings.TrimSpace(string(body))
	if len(trimmed) > 4096 {
		trimmed = trimmed[:4096]
	}
	if trimmed == "" {
		return fmt.Errorf("api returned status %d", status)
	}
	return fmt.Errorf("api returned status %d: %s", status, trimmed)
}

// call performs a GET against one endpoint and maps the payload onto
// responseType. An empty responseType returns the decoded JSON
// untouched. Empty payloads ("" or null) produce a warning and a nil
// result.
func (c *Client) call(ctx context.Context, responseType, endpoint string, query url.Values) (any, error) {
	body, err := c.doRequest(ctx, http.MethodGet, endpoint, query)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == `""` || trimmed == "null" {
		c.warnf("empty payload from %s", endpoint)
		return nil, nil
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decoding response from %s failed: %w", endpoint, err)
	}
	if responseType == "" {
		return decoded, nil
	}
	out, err := models.Unmarshal(c.registry, responseType, decoded)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	return out, nil
}

// callEntities is call for List[...] response types.
func (c *Client) callEntities(ctx context.Context, responseType, endpoint string, query url.Values) ([]*models.Entity, error) {
	out, err := c.call(ctx, responseType, endpoint, query)
	if err != nil || out == nil {
		return nil, err
	}
	entities, ok := out.([]*models.Entity)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected payload shape %T", endpoint, out)
	}
	return entities, nil
}

// callEntity is call for single-entity response types.
func (c *Client) callEntity(ctx context.Context, responseType, endpoint string, query url.Values) (*models.Entity, error) {
	out, err := c.call(ctx, responseType, endpoint, query)
	if err != nil || out == nil {
		return nil, err
	}
	entity, ok := out.(*models.Entity)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected payload shape %T", endpoint, out)
	}
	return entity, nil
}

// callEntityMap is call for Dict[str, ...] response types.
func (c *Client) callEntityMap(ctx context.Context, responseType, endpoint string, query url.Values) (map[string]*models.Entity, error) {
	out, err := c.call(ctx, responseType, endpoint, query)
	if err != nil || out == nil {
		return nil, err
	}
	raw, ok := out.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected payload shape %T", endpoint, out)
	}
	entities := make(map[string]*models.Entity, len(raw))
	for key, value := range raw {
		entity, ok := value.(*models.Entity)
		if !ok {
			return nil, fmt.Errorf("%s: unexpected payload shape %T under %q", endpoint, value, key)
		}
		entities[key] = entity
	}
	return entities, nil
}

// callInt is call for numeric count endpoints.
func (c *Client) callInt(ctx context.Context, endpoint string, query url.Values) (int64, error) {
	out, err := c.call(ctx, "int", endpoint, query)
	if err != nil || out == nil {
		return 0, err
	}
	n, ok := out.(int64)
	if !ok {
		return 0, fmt.Errorf("%s: unexpected payload shape %T", endpoint, out)
	}
	return n, nil
}

// callFloat is call for scalar numeric endpoints.
func (c *Client) callFloat(ctx context.Context, endpoint string, query url.Values) (float64, error) {
	out, err := c.call(ctx, "float", endpoint, query)
	if err != nil || out == nil {
		return 0, err
	}
	f, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("%s: unexpected payload shape %T", endpoint, out)
	}
	return f, nil
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		d = time.Second
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func nextDelay(current time.Duration) time.Duration {
	if current <= 0 {
		return time.Second
	}
	next := current * 2
	if next > 30*time.Second {
		next = 30 * time.Second
	}
	return next
}
