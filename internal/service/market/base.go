package market

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	xhttp "FinDash/pkg/http"
)

// httpBase centralizes the outbound client and JSON GET handling shared by the market sources.
type httpBase struct {
	baseURL string
	client  *xhttp.Client
}

func newHTTPBase(baseURL string, client *xhttp.Client) httpBase {
	return httpBase{baseURL: baseURL, client: client}
}

// getJSON fetches baseURL+path with query and decodes the JSON body into dest.
// Transient failures are retried by the client.
func (b httpBase) getJSON(ctx context.Context, path string, query url.Values, dest interface{}) error {
	if b.client == nil || b.baseURL == "" {
		return ErrNotConfigured
	}
	u := strings.TrimRight(b.baseURL, "/")
	if path != "" {
		u += "/" + strings.TrimLeft(path, "/")
	}
	err := b.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         u,
		QueryParams: query,
	}, dest)
	if err != nil {
		return fmt.Errorf("get %s: %w", u, err)
	}
	return nil
}
