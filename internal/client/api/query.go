package api

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// SortField orders results by one field. Listing order is sort priority.
type SortField struct {
	Field string
	Desc  bool
}

// Filter restricts results to entities whose Field matches Value under Op.
// An empty Op means equality.
type Filter struct {
	Field string
	Op    string
	Value string
}

// Populate asks the backend to include a relation in the response. An empty
// Fields list includes the whole relation; otherwise only the named
// subfields.
type Populate struct {
	Relation string
	Fields   []string
}

// Params describes one list request. The zero value means first page,
// backend-default page size, no sorting, filtering or population.
type Params struct {
	Page     int
	PageSize int
	Sort     []SortField
	Filters  []Filter
	Populate []Populate
}

// Values renders the params in the backend's bracket notation:
//
//	pagination[page]=1&pagination[pageSize]=10
//	sort[price]=desc
//	filters[status][$eq]=IN_STOCK
//	populate=branch  /  populate[vehicle]=vin,model
func (p Params) Values() url.Values {
	v := url.Values{}

	if p.Page > 0 {
		v.Set("pagination[page]", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		v.Set("pagination[pageSize]", strconv.Itoa(p.PageSize))
	}

	for _, s := range p.Sort {
		dir := "asc"
		if s.Desc {
			dir = "desc"
		}
		v.Set(fmt.Sprintf("sort[%s]", s.Field), dir)
	}

	for _, f := range p.Filters {
		op := f.Op
		if op == "" {
			op = "$eq"
		}
		v.Set(fmt.Sprintf("filters[%s][%s]", f.Field, op), f.Value)
	}

	var whole []string
	for _, pop := range p.Populate {
		if len(pop.Fields) == 0 {
			whole = append(whole, pop.Relation)
			continue
		}
		v.Set(fmt.Sprintf("populate[%s]", pop.Relation), strings.Join(pop.Fields, ","))
	}
	if len(whole) > 0 {
		// canonical order so equal populate sets produce equal queries
		sort.Strings(whole)
		v.Set("populate", strings.Join(whole, ","))
	}

	return v
}

// CacheKey is the canonical encoding of the params. Two Params that render
// the same query string share cached results.
func (p Params) CacheKey() string {
	return p.Values().Encode()
}
