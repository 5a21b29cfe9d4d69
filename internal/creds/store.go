// Package creds defines the credential storage boundary. The engine only
// ever asks for the current token; where it lives (file, OS keychain,
// environment) is an implementation detail behind Store.
package creds

// Store holds the single access token used against the remote content store.
//
// Contract:
//   - Get returns "" (and no error) when no token has been configured.
//   - Set persists the token; Delete removes it.
//
// Implementations must be safe for concurrent Get with serialized Set/Delete.
type Store interface {
	Get() (string, error)
	Set(token string) error
	Delete() error
}
