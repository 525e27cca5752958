package executor

import (
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strings"
)

// Param is a single query parameter. Params keep insertion order.
type Param struct {
	Key   string
	Value any
}

type Params []Param

// AddParams appends params to rawURL as a query string.
//
// Falsy values (nil, "", 0, false) are omitted, so a filter equal to zero
// cannot be expressed. Slice values repeat the key: key=v1&key=v2.
// Every pair is followed by '&' and the '?' is always written; receivers
// tolerate the trailing separator.
func AddParams(rawURL string, params Params) string {
	var b strings.Builder
	b.WriteString(rawURL)
	b.WriteByte('?')

	for _, p := range params {
		if isFalsy(p.Value) {
			continue
		}

		key := url.QueryEscape(p.Key)
		for _, v := range paramValues(p.Value) {
			b.WriteString(key)
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
			b.WriteByte('&')
		}
	}

	return b.String()
}

// JoinPath appends one path segment to base, escaping it.
// An empty segment yields base with a trailing slash.
func JoinPath(base string, segment any) string {
	s := ""
	if segment != nil {
		s = fmt.Sprint(segment)
	}

	return strings.TrimSuffix(base, "/") + "/" + url.PathEscape(s)
}

func isFalsy(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return !rv.Bool()
	case reflect.String:
		return rv.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f == 0 || math.IsNaN(f)
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return isFalsy(rv.Elem().Interface())
	case reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}

	return false
}

func paramValues(v any) []string {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []string{fmt.Sprint(rv.Interface())}
	}

	// An empty list still writes the key once, with an empty value.
	if rv.Len() == 0 {
		return []string{""}
	}

	values := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		if elem == nil {
			values = append(values, "")
			continue
		}
		values = append(values, fmt.Sprint(elem))
	}

	return values
}
