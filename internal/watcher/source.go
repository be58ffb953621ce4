package watcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"healthnudge/internal/model"
	"healthnudge/internal/session"
)

// Source lists the medicines the watcher matches against.
type Source interface {
	ListMedicines(ctx context.Context) ([]model.Medicine, error)
}

// HTTPSource polls the records API's medicines endpoint with a bearer token.
type HTTPSource struct {
	base   string
	token  string
	client *http.Client
}

// NewHTTPSource creates a source for GET {base}/api/medicines.
func NewHTTPSource(base, token string) *HTTPSource {
	return &HTTPSource{
		base:   strings.TrimRight(base, "/"),
		token:  token,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// ListMedicines fetches the caller's active medicines. A 401 means the
// session is no longer valid and is reported as session.ErrExpired so the
// watcher stops polling.
func (h *HTTPSource) ListMedicines(ctx context.Context) ([]model.Medicine, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.base+"/api/medicines", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+h.token)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch medicines: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, session.ErrExpired
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch medicines: unexpected status %s", resp.Status)
	}

	var payload struct {
		Medicines []model.Medicine `json:"medicines"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode medicines: %w", err)
	}
	return payload.Medicines, nil
}
