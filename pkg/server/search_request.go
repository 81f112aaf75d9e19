package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/schema"
	"github.com/matst80/slask-cars/pkg/common/jsoncompat"
)

// ViewRequest holds the presentation parameters of a stateless listing
// request. Filters are read from the same query by the url adapter.
type ViewRequest struct {
	Sort string `json:"sort" schema:"sort,default:name"`
	Size int    `json:"size" schema:"size"`
}

var requestDecoder = newRequestDecoder()

func newRequestDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

func ViewRequestFromQuery(query url.Values) (ViewRequest, error) {
	req := ViewRequest{}
	err := requestDecoder.Decode(&req, query)
	return req, err
}

type toggleRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type ratingRequest struct {
	Value float64 `json:"value"`
}

type priceRequest struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type yearRequest struct {
	Year int `json:"year"`
}

type vatRequest struct {
	Enabled bool `json:"enabled"`
}

type mileageRequest struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

type sortRequest struct {
	Key string `json:"key"`
}

type sizeRequest struct {
	Size int `json:"size"`
}

type pageRequest struct {
	Page int `json:"page"`
}

const maxBodySize = 1 << 16

func decodeBody(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return errors.New("empty request body")
	}
	if err = jsoncompat.Unmarshal(body, v); err != nil {
		return fmt.Errorf("malformed request body: %w", err)
	}
	return nil
}

// locationFromBody reads the location a view is mounted at. Either a path
// with query, or only the query.
func locationFromBody(r *http.Request, fallbackPath string) (*url.URL, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, err
	}
	raw := strings.TrimSpace(string(body))
	if raw != "" && !strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "?") {
		raw = "?" + raw
	}
	location, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("malformed location: %w", err)
	}
	if location.Path == "" {
		location.Path = fallbackPath
	}
	return location, nil
}
