package giantbomb

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Query selects, orders and shapes the items of a list resource.
type Query struct {
	Sort   string   // e.g. "original_price:desc", passed verbatim.
	Filter Filter   // field:value criteria.
	Fields []string // fields to return, all when empty.
}

// clone returns a deep copy of q.
func (q Query) clone() Query {
	q.Filter = q.Filter.clone()
	q.Fields = slices.Clone(q.Fields)
	return q
}

// Values returns the wire parameters of q for the page starting at offset.
func (q Query) Values(offset int, apiKey string) url.Values {
	v := make(url.Values)
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if len(q.Fields) > 0 {
		v.Set("field_list", strings.Join(q.Fields, ","))
	}
	if q.Filter.Len() > 0 {
		v.Set("filter", q.Filter.String())
	}
	v.Set("offset", strconv.Itoa(offset))
	v.Set("api-key", apiKey)
	v.Set("format", "json")
	return v
}

// Filter is an ordered mapping of field name to value.
//
// The zero value is an empty filter ready to use.
type Filter struct {
	keys   []string
	values map[string]string
}

// Set sets the value of key. An existing key keeps its position.
func (f *Filter) Set(key string, value any) {
	if f.values == nil {
		f.values = make(map[string]string)
	}
	if _, exists := f.values[key]; !exists {
		f.keys = append(f.keys, key)
	}
	f.values[key] = fmt.Sprint(value)
}

func (f Filter) clone() Filter {
	return Filter{keys: slices.Clone(f.keys), values: maps.Clone(f.values)}
}

// Get returns the value of key.
func (f Filter) Get(key string) (value string, ok bool) {
	value, ok = f.values[key]
	return
}

// Len returns the number of keys in f.
func (f Filter) Len() int { return len(f.keys) }

// Keys returns the keys of f in insertion order.
func (f Filter) Keys() []string { return slices.Clone(f.keys) }

// String returns the wire form of f: "key:value" pairs joined by commas.
func (f Filter) String() string {
	pairs := make([]string, 0, len(f.keys))
	for _, k := range f.keys {
		pairs = append(pairs, k+":"+f.values[k])
	}
	return strings.Join(pairs, ",")
}

// ParseFilter parses the wire form of a filter, like "name:nintendo,deck:handheld".
func ParseFilter(s string) (Filter, error) {
	var f Filter
	if strings.TrimSpace(s) == "" {
		return f, nil
	}
	for _, pair := range strings.Split(s, ",") {
		key, value, found := strings.Cut(pair, ":")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return Filter{}, fmt.Errorf("invalid filter %q: want key:value", pair)
		}
		f.Set(key, strings.TrimSpace(value))
	}
	return f, nil
}
