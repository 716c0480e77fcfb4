package query

import (
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultLimit = 10

// reserved parameter names are handled by their own stages and never appear
// in the condition set.
var reservedParams = map[string]struct{}{
	"page":   {},
	"sort":   {},
	"limit":  {},
	"fields": {},
}

// comparisonOps is the closed set of operators accepted in bracket form,
// e.g. price[gte]=500. Anything else is dropped.
var comparisonOps = map[string]string{
	"gte": "$gte",
	"gt":  "$gt",
	"lte": "$lte",
	"lt":  "$lt",
}

// Features accumulates a pending find from raw request parameters. Each
// stage mutates and returns the receiver so calls chain left-to-right;
// nothing is executed until a repository runs the accumulated filter and
// options against a collection.
type Features struct {
	params map[string]string
	filter bson.M
	opts   *options.FindOptions
}

func New(params map[string]string) *Features {
	return &Features{
		params: params,
		filter: bson.M{},
		opts:   options.Find(),
	}
}

// Filter builds the condition set from every non-reserved parameter.
// difficulty=easy becomes equality; price[gte]=500 becomes
// {"price": {"$gte": 500}}. Numeric and boolean values compare typed.
func (f *Features) Filter() *Features {
	for key, value := range f.params {
		if _, ok := reservedParams[key]; ok {
			continue
		}

		field, op, hasOp := splitOperator(key)
		if !hasOp {
			f.filter[field] = coerce(value)
			continue
		}

		mongoOp, ok := comparisonOps[op]
		if !ok {
			continue
		}
		cond, ok := f.filter[field].(bson.M)
		if !ok {
			cond = bson.M{}
			f.filter[field] = cond
		}
		cond[mongoOp] = coerce(value)
	}
	return f
}

// Sort applies sort=a,-b as an ordered sort document, leading '-' meaning
// descending. Without a sort parameter results come newest-first.
func (f *Features) Sort() *Features {
	raw, ok := f.params["sort"]
	if !ok || raw == "" {
		f.opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
		return f
	}

	var sort bson.D
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		order := 1
		if strings.HasPrefix(field, "-") {
			order = -1
			field = field[1:]
		}
		sort = append(sort, bson.E{Key: field, Value: order})
	}
	if len(sort) > 0 {
		f.opts.SetSort(sort)
	}
	return f
}

// LimitFields applies fields=a,b as an inclusion projection ('-a' excludes).
// The default projection hides the legacy __v version field.
func (f *Features) LimitFields() *Features {
	raw, ok := f.params["fields"]
	if !ok || raw == "" {
		f.opts.SetProjection(bson.M{"__v": 0})
		return f
	}

	projection := bson.M{}
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if strings.HasPrefix(field, "-") {
			projection[field[1:]] = 0
		} else {
			projection[field] = 1
		}
	}
	if len(projection) > 0 {
		f.opts.SetProjection(projection)
	}
	return f
}

// Paginate computes skip = (page-1)*limit. An unset or malformed page means
// page 1, an unset or malformed limit means 10.
func (f *Features) Paginate() *Features {
	page := parsePositive(f.params["page"], 1)
	limit := parsePositive(f.params["limit"], defaultLimit)

	f.opts.SetSkip(int64(page-1) * int64(limit))
	f.opts.SetLimit(int64(limit))
	return f
}

// Conditions returns the accumulated condition set.
func (f *Features) Conditions() bson.M {
	return f.filter
}

// Options returns the accumulated find options.
func (f *Features) Options() *options.FindOptions {
	return f.opts
}

// splitOperator splits "price[gte]" into ("price", "gte", true).
func splitOperator(key string) (field, op string, ok bool) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return key, "", false
	}
	return key[:open], key[open+1 : len(key)-1], true
}

// coerce gives numeric-looking and boolean-looking values their typed form
// so comparisons behave numerically instead of lexically.
func coerce(value string) interface{} {
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}

func parsePositive(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
