package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dcastillo/iot-telemetry/models"
	"github.com/go-resty/resty/v2"
)

type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

func NewHTTPServerAdapter(cfg HTTPClientConfig) ServerAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpServerAdapter{client: cli}
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, email string, password string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.LoginRequest{Email: email, Password: password}).
		Post("/auth/register")
	if err != nil {
		return fmt.Errorf("register request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Login(ctx context.Context, email string, password string) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.LoginRequest{Email: email, Password: password}).
		Post("/auth/login")
	if err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	var loginResponse models.LoginResponse
	if err = json.Unmarshal(resp.Body(), &loginResponse); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if loginResponse.Token == "" {
		return "", fmt.Errorf("login response: %w: no token in body", ErrUnauthorized)
	}

	h.SetToken(loginResponse.Token)
	return loginResponse.Token, nil
}

func (h *httpServerAdapter) SendReadings(ctx context.Context, readings []models.Reading) (string, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(readings).
		Post("/iot")
	if err != nil {
		return "", fmt.Errorf("send readings request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	var message string
	if err = json.Unmarshal(resp.Body(), &message); err != nil {
		return "", fmt.Errorf("decode send readings response: %w", err)
	}

	return message, nil
}

func (h *httpServerAdapter) Latest(ctx context.Context, deviceID string) (models.Reading, error) {
	resp, err := h.authedRequest(ctx).
		Get("/iot/latest/" + url.PathEscape(deviceID))
	if err != nil {
		return models.Reading{}, fmt.Errorf("latest reading request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Reading{}, err
	}

	var reading models.Reading
	if err = json.Unmarshal(resp.Body(), &reading); err != nil {
		return models.Reading{}, fmt.Errorf("decode latest reading response: %w", err)
	}

	return reading, nil
}

func (h *httpServerAdapter) Query(ctx context.Context, filter models.ReadingFilter) ([]models.Reading, error) {
	req := h.authedRequest(ctx)
	if filter.DeviceID != "" {
		req.SetQueryParam("deviceId", filter.DeviceID)
	}
	if filter.Start != nil {
		req.SetQueryParam("startTimestamp", filter.Start.Format(time.RFC3339))
	}
	if filter.End != nil {
		req.SetQueryParam("endTimestamp", filter.End.Format(time.RFC3339))
	}

	resp, err := req.Get("/iot")
	if err != nil {
		return nil, fmt.Errorf("query readings request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var readings []models.Reading
	if err = json.Unmarshal(resp.Body(), &readings); err != nil {
		return nil, fmt.Errorf("decode query readings response: %w", err)
	}

	return readings, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
