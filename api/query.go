package api

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/raushankrgupta/shoplungu/pipeline"
)

// listValues accepts both repeated and comma separated parameters
func listValues(q url.Values, name string) []string {
	var out []string
	for _, raw := range q[name] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func positiveInt(q url.Values, name string, fallback int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return n, nil
}

// parseListingQuery reads filter, sort and page parameters:
// category, brand, size, color, min_price, max_price, in_stock, sort, page, page_size
func parseListingQuery(q url.Values, defaultPageSize int) (pipeline.Query, error) {
	query := pipeline.Query{
		Filter: pipeline.FilterSpec{
			Categories: listValues(q, "category"),
			Brands:     listValues(q, "brand"),
			Sizes:      listValues(q, "size"),
			Colors:     listValues(q, "color"),
		},
	}

	minRaw, maxRaw := q.Get("min_price"), q.Get("max_price")
	if minRaw != "" || maxRaw != "" {
		r := &pipeline.PriceRange{Min: 0, Max: math.MaxFloat64}
		var err error
		if minRaw != "" {
			if r.Min, err = strconv.ParseFloat(minRaw, 64); err != nil {
				return query, errors.New("min_price must be a number")
			}
		}
		if maxRaw != "" {
			if r.Max, err = strconv.ParseFloat(maxRaw, 64); err != nil {
				return query, errors.New("max_price must be a number")
			}
		}
		query.Filter.PriceRange = r
	}

	if raw := q.Get("in_stock"); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			return query, errors.New("in_stock must be true or false")
		}
		query.Filter.InStockOnly = inStock
	}

	if err := query.Filter.Validate(); err != nil {
		return query, err
	}

	sortKey, err := pipeline.ParseSortKey(q.Get("sort"))
	if err != nil {
		return query, err
	}
	query.Sort = sortKey

	if query.Page, err = positiveInt(q, "page", 1); err != nil {
		return query, err
	}
	if query.PageSize, err = positiveInt(q, "page_size", defaultPageSize); err != nil {
		return query, err
	}
	return query, nil
}
