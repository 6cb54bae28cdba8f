// Package query translates loosely-typed URL query parameters into
// validated Mongo filters and find options. Client values only ever end
// up as bson values (regex text is meta-quoted), never in query text,
// and malformed input degrades to "filter absent" instead of erroring.
package query

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxLimit bounds every list request, public or authenticated.
const MaxLimit = 1000

type Query struct {
	Filter bson.M
	Sort   bson.D
	Limit  int64
	Offset int64
}

// RangeParam maps one query parameter onto a comparison against a
// numeric field, e.g. budget_min → {budget, $gte}.
type RangeParam struct {
	Field string
	Op    string
}

// Spec declares, per resource, which parameters are accepted and what
// predicate each one builds. Anything not declared here is ignored.
type Spec struct {
	// Equality maps a parameter name to the bson field it must equal.
	// On array fields Mongo equality matches containment, which is how
	// association filters (project by strategic issue id) work.
	Equality map[string]string
	// Ranges maps parameter names to numeric comparisons.
	Ranges map[string]RangeParam
	// SearchFields are OR-matched with a case-insensitive substring
	// regex built from the "search" parameter.
	SearchFields []string
	// YearField pairs hold the period columns for the "year"
	// containment filter: start ≤ year ≤ end.
	YearStartField string
	YearEndField   string
	// SortFields is the order_by allow-list, parameter value → field.
	SortFields map[string]string
	// DefaultSort applies when order_by is absent or not allow-listed.
	DefaultSort bson.D
	// DefaultLimit applies when limit is absent or invalid; 0 means no
	// limit is applied to the find.
	DefaultLimit int64
}

// Build assembles the query. ownerOverride, when non-empty, is forced
// onto the filter last so a client-supplied owner filter can never
// widen the scope.
func (s Spec) Build(params url.Values, ownerOverride string) Query {
	filter := bson.M{}

	for param, field := range s.Equality {
		if v, ok := cleanValue(params.Get(param)); ok {
			filter[field] = v
		}
	}

	for param, rp := range s.Ranges {
		raw, ok := cleanValue(params.Get(param))
		if !ok {
			continue
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		mergeRange(filter, rp.Field, rp.Op, n)
	}

	if len(s.SearchFields) > 0 {
		if v, ok := cleanValue(params.Get("search")); ok {
			pattern := primitive.Regex{Pattern: regexp.QuoteMeta(v), Options: "i"}
			or := make([]bson.M, 0, len(s.SearchFields))
			for _, field := range s.SearchFields {
				or = append(or, bson.M{field: pattern})
			}
			filter["$or"] = or
		}
	}

	if s.YearStartField != "" && s.YearEndField != "" {
		if raw, ok := cleanValue(params.Get("year")); ok {
			if year, err := strconv.Atoi(raw); err == nil {
				mergeRange(filter, s.YearStartField, "$lte", year)
				mergeRange(filter, s.YearEndField, "$gte", year)
			}
		}
	}

	if ownerOverride != "" {
		filter["metadata.created_by"] = ownerOverride
	}

	return Query{
		Filter: filter,
		Sort:   s.sort(params),
		Limit:  s.limit(params),
		Offset: offset(params),
	}
}

func (s Spec) sort(params url.Values) bson.D {
	raw, ok := cleanValue(params.Get("order_by"))
	if !ok {
		return s.DefaultSort
	}
	field, ok := s.SortFields[raw]
	if !ok {
		// Unknown sort columns fall back silently so stale client
		// state can't break list endpoints.
		return s.DefaultSort
	}
	direction := -1
	if dir, ok := cleanValue(params.Get("order_dir")); ok && strings.EqualFold(dir, "asc") {
		direction = 1
	}
	return bson.D{{Key: field, Value: direction}}
}

func (s Spec) limit(params url.Values) int64 {
	raw, ok := cleanValue(params.Get("limit"))
	if !ok {
		return s.DefaultLimit
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return s.DefaultLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

func offset(params url.Values) int64 {
	raw, ok := cleanValue(params.Get("offset"))
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// cleanValue drops the values clients send for "no filter": empty
// strings and the literal null/undefined that loose frontends emit.
func cleanValue(raw string) (string, bool) {
	v := strings.TrimSpace(raw)
	if v == "" || v == "null" || v == "undefined" {
		return "", false
	}
	return v, true
}

func mergeRange(filter bson.M, field, op string, value interface{}) {
	if existing, ok := filter[field].(bson.M); ok {
		existing[op] = value
		return
	}
	filter[field] = bson.M{op: value}
}
