package storage

import "errors"

// ErrKeyNotFound is returned by Get when nothing is stored under the key.
var ErrKeyNotFound = errors.New("key not found")

// Provider is a string key-value store. Every collection the app keeps is a
// JSON document stored under its own key and rewritten whole on save.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	Get(key string) (string, error)
	Put(key, value string) error
	Delete(key string) error
	// Keys lists stored keys beginning with prefix, sorted. An empty prefix lists all keys.
	Keys(prefix string) ([]string, error)

	GetConfigPath() string
}

// Migrator is implemented by stores backed by a versioned SQL schema.
type Migrator interface {
	// Migrate applies pending migrations and returns how many ran.
	Migrate(logFn func(string)) (int, error)
	SchemaVersion() (current, latest int, err error)
}
