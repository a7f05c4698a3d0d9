package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/stride/internal/config"
	"github.com/julianstephens/stride/internal/keyring"
	"github.com/julianstephens/stride/internal/storage"
	"github.com/julianstephens/stride/internal/storage/postgres"
	"github.com/julianstephens/stride/internal/storage/sqlite"
)

// KeyringTarget as the storage setting reads the PostgreSQL connection
// string from the OS keyring.
const KeyringTarget = "keyring"

// IsPostgres reports whether target is a PostgreSQL connection string.
func IsPostgres(target string) bool {
	return strings.HasPrefix(target, "postgres://") ||
		strings.HasPrefix(target, "postgresql://") ||
		strings.Contains(target, "host=")
}

// OpenStore picks the backend for target: PostgreSQL for connection strings
// and the keyring, a JSON file for *.json and SQLite otherwise. Connection
// strings given on the command line or in the config must not carry a
// password unless trusted, which is how the environment variable is passed.
func OpenStore(target string, trusted bool) (storage.Provider, error) {
	switch {
	case target == KeyringTarget:
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, fmt.Errorf("no connection string in keyring, run 'stride keyring set'")
			}
			return nil, err
		}
		return postgres.New(connStr), nil
	case IsPostgres(target):
		if err := postgres.ValidateConnString(target); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				if trusted {
					return postgres.New(target), nil
				}
				return nil, fmt.Errorf("%w: store it with 'stride keyring set', use .pgpass or set %s", err, config.EnvDBConnection)
			}
			return nil, err
		}
		return postgres.New(target), nil
	case strings.HasSuffix(strings.ToLower(target), ".json"):
		return storage.NewJSONStore(target), nil
	default:
		return sqlite.NewStore(target), nil
	}
}
