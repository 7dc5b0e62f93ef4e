package sftp

import (
	"fmt"

	"golang.org/x/crypto/ssh"

	"github.com/nimbushr/syncengine/internal/config"
)

// authMethods builds the SSH auth chain for cfg: a key (Ed25519 or RSA, as
// present in PrivateKeyPEM) when set, otherwise a plain password (§4.5.1:
// "Key-auth only when pkey_pem is set; Ed25519 preferred, RSA fallback;
// password only as last resort").
func authMethods(cfg *config.SFTPConfig) ([]ssh.AuthMethod, error) {
	if cfg.PrivateKeyPEM == "" {
		return []ssh.AuthMethod{ssh.Password(cfg.Password)}, nil
	}

	signer, err := signerFromPEM(cfg.PrivateKeyPEM, cfg.Passphrase)
	if err != nil {
		return nil, err
	}
	return []ssh.AuthMethod{ssh.PublicKeys(signer)}, nil
}

// signerFromPEM parses an OpenSSH-formatted private key. ssh.ParsePrivateKey
// auto-detects the algorithm (Ed25519, RSA, ...) from the PEM block itself,
// so preference between them is a property of which key the tenant hands
// us, not a choice this client makes.
func signerFromPEM(pemBytes, passphrase string) (ssh.Signer, error) {
	if passphrase != "" {
		key, err := ssh.ParsePrivateKeyWithPassphrase([]byte(pemBytes), []byte(passphrase))
		if err != nil {
			return nil, fmt.Errorf("parse key: %w", err)
		}
		return key, nil
	}
	key, err := ssh.ParsePrivateKey([]byte(pemBytes))
	if err != nil {
		return nil, fmt.Errorf("parse key: %w", err)
	}
	return key, nil
}
