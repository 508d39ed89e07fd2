package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-shelf-keeper/internal/config"
	"github.com/MKhiriev/go-shelf-keeper/internal/logger"
	"github.com/MKhiriev/go-shelf-keeper/models"
)

type httpSyncServer struct {
	client *resty.Client
	logger *logger.Logger

	mu    sync.RWMutex
	token string
}

// NewHTTPSyncServer constructs the resty-backed [SyncServer] for the
// configured base URL and request timeout.
func NewHTTPSyncServer(cfg config.ClientAdapter, log *logger.Logger) SyncServer {
	baseURL := cfg.ServerURL
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout)

	return &httpSyncServer{client: cli, logger: log}
}

func (h *httpSyncServer) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpSyncServer) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// AccountID extracts the "sub" claim from the stored session token. The
// token is parsed without signature verification: the client only needs the
// identifier, the server is the one that validates signatures.
func (h *httpSyncServer) AccountID() (string, error) {
	token := h.Token()
	if token == "" {
		return "", ErrNoToken
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("session token has no subject claim")
	}

	return claims.Subject, nil
}

func (h *httpSyncServer) GetManifest(ctx context.Context, since *time.Time) (models.ManifestResponse, error) {
	req := h.authedRequest(ctx)
	if since != nil {
		req.SetQueryParam("since", since.UTC().Format(time.RFC3339Nano))
	}

	resp, err := req.Get("/api/sync/manifest")
	if err != nil {
		return models.ManifestResponse{}, fmt.Errorf("%w: manifest request: %w", ErrServerUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ManifestResponse{}, err
	}

	var manifest models.ManifestResponse
	if err = json.Unmarshal(resp.Body(), &manifest); err != nil {
		return models.ManifestResponse{}, fmt.Errorf("decode manifest response: %w", err)
	}

	return manifest, nil
}

func (h *httpSyncServer) Push(ctx context.Context, pushReq models.PushRequest) (models.PushResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(pushReq).
		Post("/api/sync/push")
	if err != nil {
		return models.PushResponse{}, fmt.Errorf("%w: push request: %w", ErrServerUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PushResponse{}, err
	}

	var pushResp models.PushResponse
	if err = json.Unmarshal(resp.Body(), &pushResp); err != nil {
		return models.PushResponse{}, fmt.Errorf("decode push response: %w", err)
	}

	return pushResp, nil
}

func (h *httpSyncServer) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	switch {
	case resp.StatusCode() == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case resp.StatusCode() == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case resp.StatusCode() >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrServerUnavailable, body)
	default:
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}
}
