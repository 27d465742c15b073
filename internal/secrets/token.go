package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups the app’s secrets in the OS keychain.
	KeyringService = "jobscreen"

	tokenAccount = "jobscreen:api-token"
)

// GetAPIToken returns the admin API token from the keychain. Empty
// means admin routes stay disabled.
func GetAPIToken() (string, error) {
	tok, err := keyring.Get(KeyringService, tokenAccount)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(tok), nil
}

func SetAPIToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, tokenAccount, token)
}

func DeleteAPIToken() error {
	return keyring.Delete(KeyringService, tokenAccount)
}
