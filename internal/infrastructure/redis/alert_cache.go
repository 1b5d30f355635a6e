// Package redis cache de lectura para el módulo de alertas. Solo TTL corto:
// la ruta de alertas tolera datos levemente desfasados y no vale la pena
// invalidar por cada escritura del ledger.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/invorya/inventory-api/internal/application/alerts"
	"github.com/invorya/inventory-api/internal/application/dto"
)

const alertKeyPrefix = "alerts:low-stock:"

var _ alerts.AlertCache = (*AlertCache)(nil)

// AlertCache implementa alerts.AlertCache sobre Redis con expiración TTL.
type AlertCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAlertCache construye el cache. ttl controla la frescura máxima servida.
func NewAlertCache(client *redis.Client, ttl time.Duration) *AlertCache {
	return &AlertCache{client: client, ttl: ttl}
}

func alertKey(companyID int64, windowDays int) string {
	return fmt.Sprintf("%s%d:%d", alertKeyPrefix, companyID, windowDays)
}

// Get devuelve la respuesta cacheada o (nil, nil) en miss.
func (c *AlertCache) Get(ctx context.Context, companyID int64, windowDays int) (*dto.LowStockAlertsResponse, error) {
	raw, err := c.client.Get(ctx, alertKey(companyID, windowDays)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var resp dto.LowStockAlertsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		// Entrada corrupta: tratarla como miss para que se regenere.
		return nil, nil
	}
	return &resp, nil
}

// Set guarda la respuesta con el TTL configurado.
func (c *AlertCache) Set(ctx context.Context, companyID int64, windowDays int, resp *dto.LowStockAlertsResponse) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, alertKey(companyID, windowDays), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
