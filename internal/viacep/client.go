// Package viacep resolves Brazilian postal codes through the public ViaCEP
// API, with a Redis cache, request collapsing and a circuit breaker in front
// of the upstream.
package viacep

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"hubb-assist/internal/tenant"
	tenanterrors "hubb-assist/internal/tenant/errors"
)

const (
	cacheTTL       = 24 * time.Hour
	requestTimeout = 5 * time.Second
)

type viaCEPPayload struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	rdb        *redis.Client
	cb         *gobreaker.CircuitBreaker
	sf         singleflight.Group
	logger     *zap.Logger
}

func NewClient(baseURL string, rdb *redis.Client, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.L()
	}
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		rdb:        rdb,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "viacep",
			MaxRequests: 3,
			Interval:    30 * time.Second,
			Timeout:     10 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 5 && failureRatio >= 0.6
			},
		}),
		logger: logger.Named("viacep"),
	}
}

// Resolve implements tenant.CEPResolver. Lookups for the same CEP arriving
// together are collapsed into one upstream call.
func (c *Client) Resolve(ctx context.Context, cep string) (tenant.Address, error) {
	normalized, err := NormalizeCEP(cep)
	if err != nil {
		return tenant.Address{}, err
	}

	if addr, ok := c.fromCache(ctx, normalized); ok {
		return addr, nil
	}

	v, err, _ := c.sf.Do(normalized, func() (any, error) {
		return c.fetch(ctx, normalized)
	})
	if err != nil {
		return tenant.Address{}, err
	}

	addr := v.(tenant.Address)
	c.toCache(ctx, normalized, addr)
	return addr, nil
}

func (c *Client) fetch(ctx context.Context, cep string) (tenant.Address, error) {
	result, err := c.cb.Execute(func() (any, error) {
		url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, cep)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		// ViaCEP answers 400 for malformed codes and "erro": true for
		// well-formed codes that do not exist.
		if resp.StatusCode == http.StatusBadRequest {
			return nil, tenanterrors.ErrInvalidCEP
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("viacep returned status %d", resp.StatusCode)
		}

		var payload viaCEPPayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, err
		}
		if payload.Erro {
			return nil, tenanterrors.ErrInvalidCEP
		}

		return tenant.Address{
			CEP:          payload.CEP,
			Street:       payload.Logradouro,
			Neighborhood: payload.Bairro,
			City:         payload.Localidade,
			State:        payload.UF,
		}, nil
	})
	if err != nil {
		if err == tenanterrors.ErrInvalidCEP {
			return tenant.Address{}, err
		}
		c.logger.Warn("viacep lookup failed", zap.String("cep", cep), zap.Error(err))
		return tenant.Address{}, tenanterrors.ErrCEPLookupUnavailable
	}
	return result.(tenant.Address), nil
}

func (c *Client) fromCache(ctx context.Context, cep string) (tenant.Address, bool) {
	if c.rdb == nil {
		return tenant.Address{}, false
	}
	raw, err := c.rdb.Get(ctx, cacheKey(cep)).Result()
	if err != nil {
		return tenant.Address{}, false
	}
	var addr tenant.Address
	if err := json.Unmarshal([]byte(raw), &addr); err != nil {
		return tenant.Address{}, false
	}
	return addr, true
}

func (c *Client) toCache(ctx context.Context, cep string, addr tenant.Address) {
	if c.rdb == nil {
		return
	}
	raw, err := json.Marshal(addr)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(cep), raw, cacheTTL).Err(); err != nil {
		c.logger.Debug("viacep cache write failed", zap.Error(err))
	}
}

func cacheKey(cep string) string {
	return "viacep:" + cep
}

// NormalizeCEP strips formatting and requires exactly eight digits.
func NormalizeCEP(cep string) (string, error) {
	var b strings.Builder
	for _, r := range cep {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() != 8 {
		return "", tenanterrors.ErrInvalidCEP
	}
	return b.String(), nil
}
