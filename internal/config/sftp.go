package config

import (
	"fmt"
	"time"

	"github.com/nimbushr/syncengine/internal/env"
)

// SFTPConfig configures the snapshot-delivery SFTP client (§4.5
// "CSV output (SFTP)").
type SFTPConfig struct {
	Host string `env:"SFTP_HOST"`
	User string `env:"SFTP_USER"`

	// PrivateKeyPEM is the OpenSSH-formatted private key (Ed25519 or RSA).
	// Passphrase is optional; empty means the key is unencrypted.
	PrivateKeyPEM string `env:"SFTP_PRIVATE_KEY"`
	Passphrase    string `env:"SFTP_PRIVATE_KEY_PASSPHRASE"`

	// Password is used only when PrivateKeyPEM is unset — key auth is
	// always preferred (§4.5.1: "Key-auth only when pkey_pem is set ...
	// password only as last resort").
	Password string `env:"SFTP_PASSWORD"`

	// RemotePath is the destination path for the employee CSV (§4.5,
	// default "/employees.csv").
	RemotePath string `env:"SFTP_REMOTE_PATH"`

	// ConnectTimeout bounds the TCP dial + SSH handshake (§5: "SFTP connect
	// deadline 15 s").
	ConnectTimeout time.Duration `env:"SFTP_CONNECT_TIMEOUT"`
}

// Validate applies defaults and checks required fields.
func (c *SFTPConfig) Validate() error {
	if c.Host == "" || c.User == "" {
		return fmt.Errorf("sftp: host and user are required")
	}
	if c.PrivateKeyPEM == "" && c.Password == "" {
		return fmt.Errorf("sftp: one of private key or password is required")
	}
	if c.RemotePath == "" {
		c.RemotePath = "/employees.csv"
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 15 * time.Second
	}
	return nil
}

// LoadSFTPConfig loads and validates SFTP delivery configuration.
func LoadSFTPConfig() (*SFTPConfig, error) {
	cfg := &SFTPConfig{}
	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load SFTP config: %w", err)
	}
	return cfg, nil
}
