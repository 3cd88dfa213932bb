package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
)

// DecodeList normalises a list response. It accepts {data:{<key>:[...]}} for any
// of the given keys and a bare array. Any other shape, {data:[...]} included,
// yields an empty list and a warning.
func DecodeList[T any](raw []byte, keys ...string) []T {
	return decodeOrEmpty[T](raw, false, keys...)
}

// DecodeListLoose is DecodeList that also takes {data:[...]}, as the feed
// endpoints answer.
func DecodeListLoose[T any](raw []byte, keys ...string) []T {
	return decodeOrEmpty[T](raw, true, keys...)
}

func decodeOrEmpty[T any](raw []byte, loose bool, keys ...string) []T {
	items, err := decodeList[T](raw, loose, keys...)
	if err != nil {
		logrus.Warnf("%v: %s", err, truncate(string(raw), 200))
		return []T{}
	}

	return items
}

func decodeList[T any](raw []byte, loose bool, keys ...string) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrShapeMismatch)
	}

	switch raw[0] {
	case '[':
		return unmarshalList[T](raw)
	case '{':
	default:
		return nil, fmt.Errorf("%w: not a list", ErrShapeMismatch)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}

	data, ok := top["data"]
	data = bytes.TrimSpace(data)
	if !ok || len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, fmt.Errorf("%w: missing data", ErrShapeMismatch)
	}

	if data[0] == '[' {
		if !loose {
			return nil, fmt.Errorf("%w: bare list under data", ErrShapeMismatch)
		}
		return unmarshalList[T](data)
	}

	var inner map[string]json.RawMessage
	if err := json.Unmarshal(data, &inner); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}

	for _, key := range keys {
		list, ok := inner[key]
		list = bytes.TrimSpace(list)
		if !ok || len(list) == 0 || list[0] != '[' {
			continue
		}
		return unmarshalList[T](list)
	}

	return nil, fmt.Errorf("%w: none of %v in data", ErrShapeMismatch, keys)
}

func unmarshalList[T any](raw []byte) ([]T, error) {
	items := make([]T, 0)
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	return items, nil
}

// DecodeData unwraps {data:{...}} or accepts the bare object.
func DecodeData[T any](raw []byte) (T, error) {
	var out T

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return out, fmt.Errorf("%w: empty body", ErrShapeMismatch)
	}

	var top map[string]json.RawMessage
	if raw[0] == '{' {
		if err := json.Unmarshal(raw, &top); err != nil {
			return out, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
		}
		if data, ok := top["data"]; ok && !bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
			raw = data
		}
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}

	return out, nil
}
