package search

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultPage is always requested, there is no paging control.
	DefaultPage = 0
	// DefaultSize is the fixed page size.
	DefaultSize = 10
)

// Param is one key/value pair of the search query string.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of query parameters.
type Params []Param

// EncodeParams turns criteria into query parameters. Unset fields are
// omitted entirely. Availability entries are indexed from 0 in the
// selector's current order.
func EncodeParams(c Criteria) Params {
	params := make(Params, 0, 6+3*c.Availabilities.Len())

	if c.Query != nil && *c.Query != "" {
		params = append(params, Param{"query", *c.Query})
	}
	if c.Subject != nil && *c.Subject != "" {
		params = append(params, Param{"subject", *c.Subject})
	}
	if c.Level != nil && *c.Level != "" {
		params = append(params, Param{"level", *c.Level})
	}
	if c.Rating != nil {
		params = append(params, Param{"rating", strconv.FormatFloat(*c.Rating, 'f', -1, 64)})
	}

	params = append(params,
		Param{"page", strconv.Itoa(DefaultPage)},
		Param{"size", strconv.Itoa(DefaultSize)},
	)

	for i, slot := range c.Availabilities.Slots() {
		prefix := fmt.Sprintf("availabilities[%d]", i)
		params = append(params,
			Param{prefix + ".day", string(slot.Day)},
			Param{prefix + ".startTime", slot.Start.String()},
			Param{prefix + ".endTime", slot.End.String()},
		)
	}

	return params
}

// Get returns the first value for key and whether it was present.
func (p Params) Get(key string) (string, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return "", false
}

// Keys returns the keys in order.
func (p Params) Keys() []string {
	keys := make([]string, len(p))
	for i, param := range p {
		keys[i] = param.Key
	}
	return keys
}

// Values converts to url.Values.
func (p Params) Values() url.Values {
	v := make(url.Values, len(p))
	for _, param := range p {
		v.Add(param.Key, param.Value)
	}
	return v
}

// Encode renders the query string keeping parameter order.
func (p Params) Encode() string {
	var b strings.Builder
	for i, param := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(param.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(param.Value))
	}
	return b.String()
}
