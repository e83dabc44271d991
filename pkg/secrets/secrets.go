package secrets

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "imagekit-cli"
	keyringUser    = "private-key"
)

// SavePrivateKey stores the account private key in the OS keyring.
func SavePrivateKey(key string) error {
	if key == "" {
		return fmt.Errorf("private key is empty")
	}
	if err := keyring.Set(keyringService, keyringUser, key); err != nil {
		return fmt.Errorf("failed to store private key in keyring: %w", err)
	}
	return nil
}

// PrivateKey returns the stored private key, or "" when none is saved.
func PrivateKey() (string, error) {
	key, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read private key from keyring: %w", err)
	}
	return key, nil
}

// DeletePrivateKey removes the stored private key, if any.
func DeletePrivateKey() error {
	err := keyring.Delete(keyringService, keyringUser)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete private key from keyring: %w", err)
	}
	return nil
}
