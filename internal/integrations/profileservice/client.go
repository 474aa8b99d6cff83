package profileservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

const (
	defaultMaxRetries      = 2
	defaultInitialInterval = 100 * time.Millisecond
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с ProfileService
type Client struct {
	baseURL         string
	httpClient      *http.Client
	log             Logger
	maxRetries      uint64
	initialInterval time.Duration
}

// NewClient создает новый экземпляр клиента ProfileService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:             log,
		maxRetries:      defaultMaxRetries,
		initialInterval: defaultInitialInterval,
	}
}

// GetProfile получает профиль пользователя.
// Сетевые ошибки и ответы 429/502/503/504 повторяются с экспоненциальной задержкой.
func (c *Client) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var profile *Profile

	operation := func() error {
		p, err := c.fetchProfile(ctx, id)
		if err != nil {
			return err
		}
		profile = p
		return nil
	}

	notify := func(err error, wait time.Duration) {
		c.log.Warn("ProfileService: retrying id=%s in %s: %v", id, wait, err)
	}

	if err := backoff.RetryNotify(operation, c.newBackOff(ctx), notify); err != nil {
		return nil, err
	}

	return profile, nil
}

func (c *Client) newBackOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.initialInterval
	return backoff.WithContext(backoff.WithMaxRetries(exp, c.maxRetries), ctx)
}

// fetchProfile один запрос. Неповторяемые ошибки оборачиваются в backoff.Permanent.
func (c *Client) fetchProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	url := fmt.Sprintf("%s/internal/profiles/%s", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("%w: failed to create request: %v", ErrInternal, err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("ProfileService request failed for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, backoff.Permanent(ErrProfileNotFound)
	case http.StatusBadRequest:
		return nil, backoff.Permanent(fmt.Errorf("%w: invalid profile ID format", ErrInvalidResponse))
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return nil, fmt.Errorf("%w: unexpected status code %d", ErrInvalidResponse, resp.StatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, backoff.Permanent(fmt.Errorf("%w: unexpected status code %d: %s",
			ErrInvalidResponse, resp.StatusCode, string(body)))
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err))
	}

	return &profile, nil
}
