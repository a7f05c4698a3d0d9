package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/stride/internal/logger"
)

// LoadList reads the collection stored under key. A missing key yields an
// empty list; unreadable or corrupt data is logged and also yields an empty
// list so the app keeps working.
func LoadList[T any](p Provider, key string) []T {
	items := []T{}
	raw, err := p.Get(key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			logger.Component("storage").Warn("failed to read collection", "key", key, "error", err)
		}
		return items
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Component("storage").Warn("discarding corrupt collection", "key", key, "error", err)
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// SaveList overwrites the collection stored under key.
func SaveList[T any](p Provider, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := p.Put(key, string(data)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// LoadValue decodes a single JSON value stored under key. ok is false when
// the key is missing or the value cannot be decoded.
func LoadValue[T any](p Provider, key string) (value T, ok bool) {
	raw, err := p.Get(key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			logger.Component("storage").Warn("failed to read value", "key", key, "error", err)
		}
		return value, false
	}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		logger.Component("storage").Warn("discarding corrupt value", "key", key, "error", err)
		return value, false
	}
	return value, true
}

// SaveValue stores a single JSON value under key.
func SaveValue[T any](p Provider, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := p.Put(key, string(data)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
