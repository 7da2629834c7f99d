package main

import (
	"strings"
	"testing"

	"github.com/AlexZinkM/eth-wallet/internal/crypto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFromSecret_Hex(t *testing.T) {
	key, err := keyFromSecret([]byte(strings.Repeat("ab", 32)), "")
	require.NoError(t, err)
	assert.Len(t, key, 32)

	_, err = keyFromSecret([]byte("not-a-key"), "")
	assert.Error(t, err)
}

func TestKeyFromSecret_MatchesServerPassphraseKey(t *testing.T) {
	if testing.Short() {
		t.Skip("scrypt derivation is slow")
	}
	const salt = "0123456789abcdef0123"

	key, err := keyFromSecret([]byte("correct horse"), salt)
	require.NoError(t, err)

	serverKey, source, err := crypto.ResolveKey("", "correct horse", salt)
	require.NoError(t, err)
	require.Equal(t, crypto.KeySourcePassphrase, source)
	assert.Equal(t, serverKey, key)
}

func TestNewCommand_Flags(t *testing.T) {
	cmd := newCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--passphrase", "--new-salt", "fresh-salt-value-1234", "--dry-run"}))

	passphrase, err := cmd.Flags().GetBool(passphraseFlag)
	require.NoError(t, err)
	assert.True(t, passphrase)

	salt, err := cmd.Flags().GetString(newSaltFlag)
	require.NoError(t, err)
	assert.Equal(t, "fresh-salt-value-1234", salt)
}
