package secrets

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/amishk599/medalerts/internal/model"
)

func TestResolve_Precedence(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, Set("serpapi", "from-keychain"))
	t.Setenv("TEST_MEDALERTS_KEY", "from-env")

	c := Credential{Name: "key", Value: "from-config", EnvVar: "TEST_MEDALERTS_KEY", Account: "serpapi"}
	got, err := Resolve(c)
	require.NoError(t, err)
	assert.Equal(t, "from-config", got)

	c.Value = ""
	got, err = Resolve(c)
	require.NoError(t, err)
	assert.Equal(t, "from-env", got)

	t.Setenv("TEST_MEDALERTS_KEY", "")
	got, err = Resolve(c)
	require.NoError(t, err)
	assert.Equal(t, "from-keychain", got)
}

func TestResolve_Missing(t *testing.T) {
	keyring.MockInit()
	t.Setenv("TEST_MEDALERTS_KEY", "")

	_, err := Resolve(Credential{Name: "SerpAPI key", EnvVar: "TEST_MEDALERTS_KEY", Account: "nobody"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrMissingCredential))
	assert.Contains(t, err.Error(), "SerpAPI key")
	assert.Contains(t, err.Error(), "$TEST_MEDALERTS_KEY")
}

func TestResolve_KeychainError(t *testing.T) {
	keyring.MockInitWithError(errors.New("no dbus session"))
	t.Setenv("TEST_MEDALERTS_KEY", "")

	_, err := Resolve(Credential{Name: "key", EnvVar: "TEST_MEDALERTS_KEY", Account: "serpapi"})
	require.ErrorIs(t, err, model.ErrMissingCredential)
	assert.Contains(t, err.Error(), "no dbus session")
}

func TestSetDelete(t *testing.T) {
	keyring.MockInit()
	assert.Error(t, Set("", "x"))
	assert.Error(t, Set("acct", " "))
	assert.Error(t, Delete(""))

	require.NoError(t, Set("acct", "secret"))
	require.NoError(t, Delete("acct"))
	_, err := Resolve(Credential{Name: "x", Account: "acct"})
	assert.ErrorIs(t, err, model.ErrMissingCredential)
}

func TestSMTPAccount(t *testing.T) {
	assert.Equal(t, "medalerts:smtp:me@example.com@smtp.gmail.com", SMTPAccount("me@example.com", "smtp.gmail.com"))
}
