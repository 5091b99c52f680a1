// Package tokenstore persists the single bearer credential the client holds
// between runs. At most one credential exists per store; saving replaces it,
// clearing destroys it.
package tokenstore

import "errors"

// ErrNoCredential is returned by Load when no credential is stored.
var ErrNoCredential = errors.New("no stored credential")

// Store is the credential storage contract.
//
// Contract:
//   - Save: persist the credential, replacing any previous one.
//   - Load: return the stored credential or ErrNoCredential.
//   - Clear: destroy the stored credential; clearing an empty store is not
//     an error.
type Store interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}
