package urlsync

import (
	"log/slog"
	"net/url"
	"strconv"

	"github.com/matst80/slask-cars/pkg/state"
	"github.com/matst80/slask-cars/pkg/types"
)

// Seed restores the whitelisted part of a query into the store. Present
// parameters override the current criteria, absent or malformed ones leave
// their field alone.
func Seed(query url.Values, s *state.Store) Labels {
	p, err := DecodeParams(query)
	if err != nil {
		slog.Debug("ignoring malformed query parameters", "error", err)
	}
	c := s.Snapshot().Criteria
	page := 1

	if brands := distinct(p.Brand); len(brands) > 0 {
		c.Brands = brands
	}
	if models := distinct(p.Model); len(models) > 0 {
		c.Models = models
	}
	if year, ok := parseInt(p.Year); ok && year > 0 {
		c.Year = year
	}
	if p.Vat != "" {
		c.VatOnly = p.Vat == "true"
	}
	if lo, ok := parseNumber(p.MinMileage); ok {
		c.MileageBounds.Min = &lo
	}
	if hi, ok := parseNumber(p.MaxMileage); ok {
		c.MileageBounds.Max = &hi
	}
	if lo, ok := parseNumber(p.MinPrice); ok {
		c.PriceRange.Min = lo
	}
	if hi, ok := parseNumber(p.MaxPrice); ok {
		c.PriceRange.Max = hi
	}
	if n, ok := parseInt(p.Page); ok && n > 1 {
		page = n
	}

	s.Restore(c, page)
	return LabelsFor(c)
}

// Write mirrors a store mutation into a copy of query. Only the whitelisted
// parameters of the fields in the change are touched, a filter change always
// sends the view back to page 1.
func Write(query url.Values, snap state.Snapshot, change state.Change) url.Values {
	ret := cloneValues(query)
	switch change.Kind {
	case state.KindFilter, state.KindClear:
		for _, field := range change.Fields {
			encodeField(ret, field, &snap.Criteria)
		}
		ret.Set(ParamPage, "1")
	case state.KindPageSize:
		ret.Set(ParamPage, "1")
	case state.KindPage:
		ret.Set(ParamPage, strconv.Itoa(snap.Page))
	}
	return ret
}

// Encode serializes every whitelisted field of the snapshot into a copy of
// query. Default values are left out unless query already spells them out,
// so a location the adapter wrote encodes back to itself.
func Encode(query url.Values, snap state.Snapshot) url.Values {
	ret := cloneValues(query)
	for _, field := range state.AllFields() {
		encodeField(ret, field, &snap.Criteria)
	}
	setOrDelete(ret, ParamPage, strconv.Itoa(snap.Page), snap.Page > 1)

	keepExplicit(ret, query, ParamPage, strconv.Itoa(max(snap.Page, 1)))
	keepExplicit(ret, query, ParamVat, strconv.FormatBool(snap.Criteria.VatOnly))
	keepExplicit(ret, query, ParamMinPrice, formatNumber(snap.Criteria.PriceRange.Min))
	keepExplicit(ret, query, ParamMaxPrice, formatNumber(snap.Criteria.PriceRange.Max))
	return ret
}

func keepExplicit(ret, query url.Values, key, value string) {
	if query.Has(key) && !ret.Has(key) {
		ret.Set(key, value)
	}
}

func encodeField(query url.Values, field string, c *types.Criteria) {
	switch field {
	case types.FieldBrands.String():
		encodeSet(query, ParamBrand, c.Brands)
	case types.FieldModels.String():
		encodeSet(query, ParamModel, c.Models)
	case state.FieldYear:
		setOrDelete(query, ParamYear, strconv.Itoa(c.Year), c.Year > 0)
	case state.FieldVat:
		setOrDelete(query, ParamVat, "true", c.VatOnly)
	case state.FieldMileageBounds:
		encodeBound(query, ParamMinMileage, c.MileageBounds.Min)
		encodeBound(query, ParamMaxMileage, c.MileageBounds.Max)
	case state.FieldPriceRange:
		b := priceBounds(c.PriceRange)
		encodeBound(query, ParamMinPrice, b.Min)
		encodeBound(query, ParamMaxPrice, b.Max)
	}
}

func encodeSet(query url.Values, key string, values types.ValueSet) {
	query.Del(key)
	for _, v := range values {
		query.Add(key, v)
	}
}

func encodeBound(query url.Values, key string, v *float64) {
	if v == nil {
		query.Del(key)
		return
	}
	query.Set(key, formatNumber(*v))
}
