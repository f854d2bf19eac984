package metacache

import (
	"context"
	"encoding/json"

	"github.com/dkrasnovs/skyvault/internal/cryptox"
)

// Decrypter resolves encrypted metadata envelopes with the account master
// keys, caching every successful result. It satisfies the Decrypter
// interfaces of the items and events packages.
type Decrypter struct {
	masterKeys []string
	cache      *Cache
}

// NewDecrypter builds a caching decrypter for the given master key list.
func NewDecrypter(masterKeys []string, cache *Cache) *Decrypter {
	return &Decrypter{masterKeys: masterKeys, cache: cache}
}

// DecryptFileMetadata resolves a file metadata envelope, consulting the
// cache first.
func (d *Decrypter) DecryptFileMetadata(ctx context.Context, metadata, uuid string) (cryptox.FileMetadata, error) {
	key := Key("file", uuid, metadata)

	if cached, ok := d.cache.Get(ctx, key); ok {
		var md cryptox.FileMetadata
		if err := json.Unmarshal([]byte(cached), &md); err == nil && md.Name != "" {
			return md, nil
		}
	}

	md, err := cryptox.DecryptFileMetadata(d.masterKeys, metadata)
	if err != nil {
		return cryptox.FileMetadata{}, err
	}

	if b, err := json.Marshal(md); err == nil {
		d.cache.Put(ctx, key, string(b))
	}

	return md, nil
}

// DecryptFolderName resolves a folder name envelope, consulting the cache
// first. The "default" payload bypasses both cache and decryption.
func (d *Decrypter) DecryptFolderName(ctx context.Context, name, uuid string) (string, error) {
	if name == "default" {
		return "Default", nil
	}

	key := Key("folder", uuid, name)

	if cached, ok := d.cache.Get(ctx, key); ok {
		return cached, nil
	}

	decrypted, err := cryptox.DecryptFolderName(d.masterKeys, name)
	if err != nil {
		return "", err
	}

	d.cache.Put(ctx, key, decrypted)

	return decrypted, nil
}
