package urlsync

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/gorilla/schema"
)

const (
	ParamBrand      = "brand"
	ParamModel      = "model"
	ParamYear       = "year"
	ParamVat        = "vat"
	ParamMinMileage = "minMileage"
	ParamMaxMileage = "maxMileage"
	ParamMinPrice   = "minPrice"
	ParamMaxPrice   = "maxPrice"
	ParamPage       = "page"
)

// Whitelist is every query parameter the adapter reads or writes. Anything else
// in a query belongs to someone else and is passed through untouched.
var Whitelist = []string{
	ParamBrand, ParamModel, ParamYear, ParamVat,
	ParamMinMileage, ParamMaxMileage, ParamMinPrice, ParamMaxPrice, ParamPage,
}

// Params is the raw whitelisted part of a query. Numbers are kept as text so a
// malformed value only loses its own field.
type Params struct {
	Brand      []string `schema:"brand"`
	Model      []string `schema:"model"`
	Year       string   `schema:"year"`
	Vat        string   `schema:"vat"`
	MinMileage string   `schema:"minMileage"`
	MaxMileage string   `schema:"maxMileage"`
	MinPrice   string   `schema:"minPrice"`
	MaxPrice   string   `schema:"maxPrice"`
	Page       string   `schema:"page"`
}

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

func DecodeParams(query url.Values) (Params, error) {
	var p Params
	err := decoder.Decode(&p, query)
	return p, err
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseInt(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func distinct(values []string) []string {
	ret := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" && !slices.Contains(ret, v) {
			ret = append(ret, v)
		}
	}
	return ret
}

func cloneValues(query url.Values) url.Values {
	ret := make(url.Values, len(query))
	for k, v := range query {
		ret[k] = slices.Clone(v)
	}
	return ret
}

func setOrDelete(query url.Values, key, value string, ok bool) {
	if ok {
		query.Set(key, value)
	} else {
		query.Del(key)
	}
}
