package utils

import (
	"bytes"
	"encoding/json"
	"slices"
)

// OrderedKV is a value tagged with its position in an OrderedKVMap.
type OrderedKV[T any] struct {
	Value T
	Order int64
}

// OrderedKVMap marshals to a JSON object whose keys appear in Order.
type OrderedKVMap[T any] map[string]OrderedKV[T]

// NewOrderedKVMap builds a map whose JSON key order follows keys.
func NewOrderedKVMap[T any](keys []string, value func(key string) T) OrderedKVMap[T] {
	om := make(OrderedKVMap[T], len(keys))
	for i, k := range keys {
		om[k] = OrderedKV[T]{Value: value(k), Order: int64(i)}
	}
	return om
}

// Keys returns the keys in marshal order.
func (om OrderedKVMap[T]) Keys() []string {
	keys := make([]string, 0, len(om))
	for k := range om {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		oa, ob := om[a].Order, om[b].Order
		switch {
		case oa < ob:
			return -1
		case oa > ob:
			return 1
		default:
			return 0
		}
	})
	return keys
}

func (om OrderedKVMap[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range om.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}

		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valueBytes, err := json.Marshal(om[k].Value)
		if err != nil {
			return nil, err
		}
		buf.Write(valueBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
