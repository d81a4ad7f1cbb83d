// Package secrets resolves credentials from config, the environment, or the
// OS keychain.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/amishk599/medalerts/internal/model"
)

// KeyringService groups medalerts secrets in the OS keychain.
const KeyringService = "medalerts"

// SerpAPIAccount is the keychain account holding the SerpAPI key.
const SerpAPIAccount = "serpapi"

// Environment variables consulted when a secret is not in the config file.
const (
	EnvSerpAPIKey    = "SERPAPI_KEY"
	EnvSMTPPassword  = "GMAIL_APP_PASSWORD"
	EnvSMTPUsername  = "GMAIL_ADDRESS"
	EnvRecipientMail = "RECIPIENT_EMAIL"
)

// Credential names one secret and where to look for it.
type Credential struct {
	Name    string // for error messages, e.g. "SerpAPI key"
	Value   string // from config; wins when non-empty
	EnvVar  string
	Account string // keychain account; empty skips the keychain
}

// Resolve returns the first non-empty value of: the config value, the
// environment variable, the keychain entry. It fails with
// model.ErrMissingCredential when none is set.
func Resolve(c Credential) (string, error) {
	if v := strings.TrimSpace(c.Value); v != "" {
		return v, nil
	}
	if c.EnvVar != "" {
		if v := strings.TrimSpace(os.Getenv(c.EnvVar)); v != "" {
			return v, nil
		}
	}
	if strings.TrimSpace(c.Account) != "" {
		v, err := keyring.Get(KeyringService, c.Account)
		if err == nil && strings.TrimSpace(v) != "" {
			return v, nil
		}
		if err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w: %s: keychain: %v", model.ErrMissingCredential, c.Name, err)
		}
	}
	where := []string{"config"}
	if c.EnvVar != "" {
		where = append(where, "$"+c.EnvVar)
	}
	if c.Account != "" {
		where = append(where, fmt.Sprintf("keychain %s/%s", KeyringService, c.Account))
	}
	return "", fmt.Errorf("%w: %s (looked in %s)", model.ErrMissingCredential, c.Name, strings.Join(where, ", "))
}

// Set stores a secret in the keychain.
func Set(account, secret string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(secret) == "" {
		return errors.New("secret is empty")
	}
	return keyring.Set(KeyringService, account, secret)
}

// Delete removes a secret from the keychain.
func Delete(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}

// SMTPAccount is the default keychain account for an SMTP login.
func SMTPAccount(username, host string) string {
	return fmt.Sprintf("medalerts:smtp:%s@%s", username, host)
}
