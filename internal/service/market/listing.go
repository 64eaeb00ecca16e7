package market

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"FinDash/internal/domain/models"
	"FinDash/internal/domain/repository"
	xhttp "FinDash/pkg/http"
	"FinDash/pkg/logger"
)

// ListingClient implements repository.ListingSource against a JSON listing endpoint
// answering GET <base>?market=<name> with an array of listing rows.
type ListingClient struct {
	http    httpBase
	metrics repository.Metrics
	log     *logger.Logger
}

func NewListingClient(baseURL string, client *xhttp.Client, m repository.Metrics, l *logger.Logger) *ListingClient {
	return &ListingClient{
		http:    newHTTPBase(baseURL, client),
		metrics: m,
		log:     l.With("listing"),
	}
}

func (c *ListingClient) Listing(ctx context.Context, market string) ([]models.Listing, error) {
	q := url.Values{}
	q.Set("market", market)

	var rows []models.Listing
	err := c.http.getJSON(ctx, "", q, &rows)
	if c.metrics != nil && !errors.Is(err, ErrNotConfigured) {
		c.metrics.RecordUpstream("listing", err == nil)
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", market, err)
	}
	c.log.Debug("listing fetched", logger.String("market", market), logger.Int("rows", len(rows)))
	return rows, nil
}
