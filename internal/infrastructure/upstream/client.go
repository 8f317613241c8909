// Package upstream talks to the third-party feed that publishes the doctor
// list.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-doctor-finder/config"
	"go-doctor-finder/internal/delivery/dto"
	"go-doctor-finder/internal/domain/entity"
	"go-doctor-finder/internal/infrastructure/metrics"

	"github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// FetchFailedMessage is the user-facing message of every FetchError.
const FetchFailedMessage = "Failed to fetch doctors"

// Client fetches the raw doctor records. With MaxAttempts above 1 it retries
// network errors and 5xx/429 responses at a constant delay.
type Client struct {
	httpClient  *http.Client
	url         string
	maxAttempts int
	retryDelay  time.Duration
	log         *logrus.Logger
	metrics     *metrics.Metrics
}

func NewClient(cfg config.UpstreamConfig, log *logrus.Logger, m *metrics.Metrics) *Client {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		url:         cfg.URL,
		maxAttempts: attempts,
		retryDelay:  cfg.RetryDelay,
		log:         log,
		metrics:     m,
	}
}

// FetchRecords performs the request (plus any configured retries) and
// decodes the payload. Array elements that are not objects are skipped.
func (c *Client) FetchRecords(ctx context.Context) ([]dto.DoctorRecord, error) {
	var body []byte
	attempt := 0
	operation := func() error {
		attempt++
		b, err := c.get(ctx)
		if err != nil {
			if attempt < c.maxAttempts {
				c.log.Warnf("Upstream attempt %d/%d failed: %+v", attempt, c.maxAttempts, err)
			}
			return err
		}
		body = b
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryDelay), uint64(c.maxAttempts-1)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("error").Inc()
		return nil, err
	}
	c.metrics.UpstreamRequests.WithLabelValues("ok").Inc()

	return decodeRecords(body, c.log)
}

func (c *Client) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, backoff.Permanent(&entity.FetchError{Message: FetchFailedMessage, Err: err})
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		fetchErr := &entity.FetchError{Message: FetchFailedMessage, Err: err}
		if ctx.Err() != nil {
			return nil, backoff.Permanent(fetchErr)
		}
		return nil, fetchErr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		fetchErr := &entity.FetchError{
			StatusCode: resp.StatusCode,
			Message:    FetchFailedMessage,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, fetchErr
		}
		return nil, backoff.Permanent(fetchErr)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &entity.FetchError{Message: FetchFailedMessage, Err: err}
	}
	return body, nil
}

var errNotArray = errors.New("payload is not a JSON array")

func decodeRecords(body []byte, log *logrus.Logger) ([]dto.DoctorRecord, error) {
	var items []json.RawMessage
	if err := sonic.ConfigStd.Unmarshal(body, &items); err != nil {
		return nil, &entity.FetchError{Message: FetchFailedMessage, Err: fmt.Errorf("%w: %v", errNotArray, err)}
	}

	records := make([]dto.DoctorRecord, 0, len(items))
	skipped := 0
	for _, item := range items {
		if string(bytes.TrimSpace(item)) == "null" {
			skipped++
			continue
		}
		var record dto.DoctorRecord
		if err := sonic.ConfigStd.Unmarshal(item, &record); err != nil {
			skipped++
			continue
		}
		records = append(records, record)
	}
	if skipped > 0 {
		log.Warnf("Skipped %d upstream records that are not objects", skipped)
	}
	return records, nil
}
