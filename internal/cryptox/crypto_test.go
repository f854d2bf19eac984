package cryptox

import (
	"encoding/json"
	"testing"

	"github.com/dkrasnovs/skyvault/internal/common"
	"github.com/stretchr/testify/require"
)

func TestDeriveMasterKey(t *testing.T) {
	k1 := DeriveMasterKey([]byte("password"), []byte("salt0123"))
	k2 := DeriveMasterKey([]byte("password"), []byte("salt0123"))
	k3 := DeriveMasterKey([]byte("password"), []byte("other456"))

	require.Len(t, k1, 32)
	require.Equal(t, k1, k2)
	require.NotEqual(t, k1, k3)
	require.Len(t, MasterKeyString(k1), 64)
}

func TestEncryptDecryptMetadata(t *testing.T) {
	plaintext := `{"name":"vacation.jpg"}`

	envelope, err := EncryptMetadata(plaintext, "masterkey1")
	require.NoError(t, err)

	got, err := DecryptMetadata(envelope, "masterkey1")
	require.NoError(t, err)
	require.Equal(t, plaintext, got)

	_, err = DecryptMetadata(envelope, "wrongkey")
	require.Error(t, err)

	_, err = DecryptMetadata("not-base64!!", "masterkey1")
	require.Error(t, err)

	_, err = DecryptMetadata("c2hvcnQ=", "masterkey1")
	require.Error(t, err)
}

func encryptFileMetadata(t *testing.T, md FileMetadata, masterKey string) string {
	t.Helper()
	b, err := json.Marshal(md)
	require.NoError(t, err)
	envelope, err := EncryptMetadata(string(b), masterKey)
	require.NoError(t, err)
	return envelope
}

func TestDecryptFileMetadata(t *testing.T) {
	md := FileMetadata{Name: "report.pdf", Size: 1024, Mime: "application/pdf", Key: "filekey", LastModified: 1673740800}
	envelope := encryptFileMetadata(t, md, "key-b")

	t.Run("second key decrypts", func(t *testing.T) {
		got, err := DecryptFileMetadata([]string{"key-a", "key-b"}, envelope)
		require.NoError(t, err)
		require.Equal(t, "report.pdf", got.Name)
		require.Equal(t, int64(1024), got.Size)
		// Seconds-precision input timestamp is normalized to milliseconds.
		require.Equal(t, int64(1673740800000), got.LastModified)
	})

	t.Run("no key works", func(t *testing.T) {
		_, err := DecryptFileMetadata([]string{"key-x", "key-y"}, envelope)
		require.ErrorIs(t, err, common.ErrDecryptFailed)
	})

	t.Run("empty key list", func(t *testing.T) {
		_, err := DecryptFileMetadata(nil, envelope)
		require.ErrorIs(t, err, common.ErrNoMasterKeys)
	})

	t.Run("empty name is not usable", func(t *testing.T) {
		empty := encryptFileMetadata(t, FileMetadata{Name: ""}, "key-a")
		_, err := DecryptFileMetadata([]string{"key-a"}, empty)
		require.ErrorIs(t, err, common.ErrDecryptFailed)
	})
}

func TestDecryptFolderName(t *testing.T) {
	envelope, err := EncryptMetadata(`{"name":"Documents"}`, "key-a")
	require.NoError(t, err)

	name, err := DecryptFolderName([]string{"key-a"}, envelope)
	require.NoError(t, err)
	require.Equal(t, "Documents", name)

	name, err = DecryptFolderName(nil, "default")
	require.NoError(t, err)
	require.Equal(t, "Default", name)

	_, err = DecryptFolderName([]string{"wrong"}, envelope)
	require.ErrorIs(t, err, common.ErrDecryptFailed)
}
