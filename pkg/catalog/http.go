package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matst80/slask-cars/pkg/common/jsoncompat"
	"github.com/matst80/slask-cars/pkg/types"
)

const maxResponseSize = 64 << 20

// HTTPSource reads the paginated catalog API, GET <BaseURL>/cars/.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) Fetch(ctx context.Context, q Query) (*types.ListingPage, error) {
	u := s.BaseURL + "/cars/"
	if v := q.Values(); len(v) > 0 {
		u += "?" + v.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch listings: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("fetch listings: unexpected status %s", res.Status)
	}
	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read listings: %w", err)
	}
	return DecodePage(body)
}

// DecodePage accepts either a paginated response or a bare listing array.
func DecodePage(body []byte) (*types.ListingPage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var cars []types.Listing
		if err := jsoncompat.Unmarshal(trimmed, &cars); err != nil {
			return nil, fmt.Errorf("decode listings: %w", err)
		}
		return types.NewLocalPage(cars), nil
	}
	page := &types.ListingPage{}
	if err := jsoncompat.Unmarshal(trimmed, page); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}
	return page, nil
}
