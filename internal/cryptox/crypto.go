// Package cryptox implements the metadata encryption scheme of the drive:
// JSON payloads sealed with AES-256-GCM under keys derived from the account
// master keys.
//
// A metadata envelope is the standard-base64 encoding of nonce||ciphertext,
// where the nonce is 12 bytes. The AES key for a master key string is its
// SHA-256 digest. Master keys rotate on password change, so a payload may be
// decryptable by any key in the account's key list; the Decrypt* helpers try
// each key in order.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/dkrasnovs/skyvault/internal/common"
	"github.com/dkrasnovs/skyvault/internal/timex"
	"golang.org/x/crypto/argon2"
)

const nonceSize = 12

// DeriveMasterKey derives a 32-byte master key from an account password and
// salt using argon2id.
func DeriveMasterKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// MasterKeyString encodes a derived master key for transport and storage in
// the account key list.
func MasterKeyString(key []byte) string {
	return hex.EncodeToString(key)
}

// AuthVerifier derives the login verifier sent to the server in place of
// the master key itself.
func AuthVerifier(masterKey []byte) string {
	sum := sha256.Sum256(masterKey)
	return hex.EncodeToString(sum[:])
}

func aesKey(masterKey string) []byte {
	sum := sha256.Sum256([]byte(masterKey))
	return sum[:]
}

// EncryptMetadata seals plaintext under the given master key and returns the
// base64 envelope.
func EncryptMetadata(plaintext, masterKey string) (string, error) {
	block, err := aes.NewCipher(aesKey(masterKey))
	if err != nil {
		return "", err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := aesgcm.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// DecryptMetadata opens a base64 envelope with the given master key and
// returns the plaintext.
func DecryptMetadata(metadata, masterKey string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(metadata)
	if err != nil {
		return "", fmt.Errorf("decoding envelope: %w", err)
	}
	if len(raw) < nonceSize {
		return "", fmt.Errorf("envelope too short")
	}

	block, err := aes.NewCipher(aesKey(masterKey))
	if err != nil {
		return "", err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	plaintext, err := aesgcm.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// FileMetadata is the decrypted metadata payload of a file.
type FileMetadata struct {
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	Mime         string `json:"mime"`
	Key          string `json:"key"`
	LastModified int64  `json:"lastModified"`
	Hash         string `json:"hash,omitempty"`
}

// DecryptFileMetadata tries each master key in order against the metadata
// envelope and returns the last successfully decrypted payload carrying a
// non-empty name. LastModified is normalized to unix milliseconds.
//
// Returns common.ErrDecryptFailed when no key yields a usable payload and
// common.ErrNoMasterKeys when the key list is empty.
func DecryptFileMetadata(masterKeys []string, metadata string) (FileMetadata, error) {
	if len(masterKeys) == 0 {
		return FileMetadata{}, common.ErrNoMasterKeys
	}

	var (
		result FileMetadata
		found  bool
	)

	for _, mk := range masterKeys {
		plaintext, err := DecryptMetadata(metadata, mk)
		if err != nil {
			continue
		}

		var md FileMetadata
		if err := json.Unmarshal([]byte(plaintext), &md); err != nil {
			continue
		}
		if md.Name == "" {
			continue
		}

		md.LastModified = timex.UnixMs(md.LastModified)
		result = md
		found = true
	}

	if !found {
		return FileMetadata{}, common.ErrDecryptFailed
	}

	return result, nil
}

type folderMetadata struct {
	Name string `json:"name"`
}

// DecryptFolderName tries each master key in order against a folder name
// envelope. The literal payload "default" denotes the root folder and maps
// to "Default" without decryption.
func DecryptFolderName(masterKeys []string, metadata string) (string, error) {
	if metadata == "default" {
		return "Default", nil
	}

	if len(masterKeys) == 0 {
		return "", common.ErrNoMasterKeys
	}

	var (
		name  string
		found bool
	)

	for _, mk := range masterKeys {
		plaintext, err := DecryptMetadata(metadata, mk)
		if err != nil {
			continue
		}

		var md folderMetadata
		if err := json.Unmarshal([]byte(plaintext), &md); err != nil {
			continue
		}
		if md.Name == "" {
			continue
		}

		name = md.Name
		found = true
	}

	if !found {
		return "", common.ErrDecryptFailed
	}

	return name, nil
}
