// Package credential stores the API key in the system keyring, falling
// back to an encrypted file where no native backend exists. It is the
// secure-storage collaborator behind the session's Store interface.
package credential

import (
	"fmt"

	"github.com/99designs/keyring"
)

const (
	serviceName = "aliasctl"
	apiKeyName  = "api-key"
)

// KeyringStore persists the credential in the system keyring. The zero
// value is usable; the ring is opened lazily on each call so a locked or
// unavailable backend surfaces as an error at use time, not startup.
type KeyringStore struct{}

func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/aliasctl/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("aliasctl-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Get retrieves the stored API key. A missing key is an error, matching
// the keyring backends' behavior.
func (KeyringStore) Get() (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(apiKeyName)
	if err != nil {
		return "", fmt.Errorf("getting API key: %w", err)
	}

	return string(item.Data), nil
}

// Set stores the API key, replacing any previous value.
func (KeyringStore) Set(value string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:  apiKeyName,
		Data: []byte(value),
	})
	if err != nil {
		return fmt.Errorf("setting API key: %w", err)
	}

	return nil
}

// Delete removes the stored API key. Removing an absent key is not an
// error; log-out must be repeatable.
func (KeyringStore) Delete() error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	if err := ring.Remove(apiKeyName); err != nil && err != keyring.ErrKeyNotFound {
		return fmt.Errorf("deleting API key: %w", err)
	}

	return nil
}
