package sftp

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	"github.com/nimbushr/syncengine/internal/config"
)

func generateEd25519PEM(t *testing.T) string {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	block, err := ssh.MarshalPrivateKey(priv, "")
	require.NoError(t, err)
	return string(pem.EncodeToMemory(block))
}

func TestSignerFromPEMParsesEd25519Key(t *testing.T) {
	key := generateEd25519PEM(t)

	signer, err := signerFromPEM(key, "")
	require.NoError(t, err)
	assert.Equal(t, ssh.KeyAlgoED25519, signer.PublicKey().Type())
}

func TestSignerFromPEMRejectsGarbage(t *testing.T) {
	_, err := signerFromPEM("not a key", "")
	assert.Error(t, err)
}

func TestAuthMethodsPrefersKeyOverPassword(t *testing.T) {
	cfg := &config.SFTPConfig{PrivateKeyPEM: generateEd25519PEM(t), Password: "unused"}

	methods, err := authMethods(cfg)
	require.NoError(t, err)
	require.Len(t, methods, 1)
}

func TestAuthMethodsFallsBackToPasswordWhenNoKey(t *testing.T) {
	cfg := &config.SFTPConfig{Password: "hunter2"}

	methods, err := authMethods(cfg)
	require.NoError(t, err)
	require.Len(t, methods, 1)
}
