package selector

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/spf13/cast"

	"github.com/verte-zerg/threshpick/internal/model"
)

var metricFields = []string{"tp", "fn", "fp"}

// parseEntry converts one raw key/value pair. On failure the returned entry
// carries the reason and is not evaluated further.
func parseEntry(key, value any) model.Entry {
	entry := model.Entry{Key: fmt.Sprint(key)}

	threshold, ok := toFloat(key)
	if !ok {
		entry.Reason = model.SkipInvalidKey
		return entry
	}
	entry.Threshold = threshold

	if ms, ok := asMetricSet(value); ok {
		entry.Metrics = ms
		return entry
	}

	field, ok := recordLookup(value)
	if !ok {
		entry.Reason = model.SkipNotRecord
		return entry
	}
	counts := make([]float64, len(metricFields))
	for i, name := range metricFields {
		raw, present := field(name)
		if !present {
			entry.Reason = model.SkipInvalidMetric
			entry.Field = name
			return entry
		}
		n, ok := toFloat(raw)
		if !ok {
			entry.Reason = model.SkipInvalidMetric
			entry.Field = name
			return entry
		}
		counts[i] = n
	}
	entry.Metrics = model.MetricSet{TP: counts[0], FN: counts[1], FP: counts[2]}
	if raw, present := field("tn"); present {
		if n, ok := toFloat(raw); ok {
			entry.Metrics.TN = n
		}
	}
	return entry
}

func asMetricSet(value any) (model.MetricSet, bool) {
	switch ms := value.(type) {
	case model.MetricSet:
		return ms, true
	case *model.MetricSet:
		if ms != nil {
			return *ms, true
		}
	}
	return model.MetricSet{}, false
}

// recordLookup returns a field accessor for map values keyed by strings.
func recordLookup(value any) (func(string) (any, bool), bool) {
	v := reflect.ValueOf(value)
	if !v.IsValid() || v.Kind() != reflect.Map {
		return nil, false
	}
	keyType := v.Type().Key()
	switch {
	case keyType.Kind() == reflect.String:
	case keyType.Kind() == reflect.Interface && reflect.TypeOf("").Implements(keyType):
	default:
		return nil, false
	}
	return func(name string) (any, bool) {
		k := reflect.ValueOf(name)
		if keyType.Kind() == reflect.String {
			k = k.Convert(keyType)
		}
		got := v.MapIndex(k)
		if !got.IsValid() {
			return nil, false
		}
		return got.Interface(), true
	}, true
}

// toFloat converts numbers, booleans and decimal numeric strings. Containers,
// nil, NaN, hex literals and unparsable strings fail.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case json.Number:
		f, err := n.Float64()
		return f, err == nil && !math.IsNaN(f)
	case string:
		s := strings.TrimSpace(n)
		if s == "" || hasHexPrefix(s) {
			return 0, false
		}
		v = s
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct, reflect.Ptr, reflect.Interface:
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func hasHexPrefix(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
