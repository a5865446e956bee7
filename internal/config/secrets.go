package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/fernet/fernet-go"
	"gopkg.in/yaml.v3"
)

// Encrypted values in the secrets file are wrapped as ENC[<fernet token>].
// Unwrapped values are taken literally.
const (
	encPrefix = "ENC["
	encSuffix = "]"
)

// secretsFile mirrors the on-disk layout of the deployed secrets file.
type secretsFile struct {
	Database map[string]string `yaml:"database"`
}

// IsEncrypted reports whether value carries an encrypted token.
func IsEncrypted(value string) bool {
	return strings.HasPrefix(value, encPrefix) && strings.HasSuffix(value, encSuffix)
}

func extractEncryptedValue(value string) string {
	return strings.TrimSuffix(strings.TrimPrefix(value, encPrefix), encSuffix)
}

// loadSecrets reads the secrets file and decrypts every ENC[...] value with
// the given Fernet key.
func loadSecrets(path, secretKey string) (*secretsFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read secrets file: %w", err)
	}

	secrets := &secretsFile{}
	if err := yaml.Unmarshal(raw, secrets); err != nil {
		return nil, fmt.Errorf("parse secrets file: %w", err)
	}

	keys, err := fernet.DecodeKeys(secretKey)
	if err != nil {
		return nil, fmt.Errorf("decode secret key: %w", err)
	}

	for name, value := range secrets.Database {
		if !IsEncrypted(value) {
			continue
		}
		plain := fernet.VerifyAndDecrypt([]byte(extractEncryptedValue(value)), 0, keys)
		if plain == nil {
			return nil, fmt.Errorf("decrypt secret %q: token invalid or key mismatch", name)
		}
		secrets.Database[name] = string(plain)
	}

	return secrets, nil
}
