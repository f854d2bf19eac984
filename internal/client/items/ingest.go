package items

import (
	"context"

	"github.com/dkrasnovs/skyvault/internal/client/api"
	"github.com/dkrasnovs/skyvault/internal/client/models"
	"github.com/dkrasnovs/skyvault/internal/cryptox"
	"github.com/dkrasnovs/skyvault/internal/logging"
	"github.com/dkrasnovs/skyvault/internal/timex"
)

// Decrypter resolves encrypted metadata envelopes to plaintext. Implemented
// by metacache.Decrypter.
type Decrypter interface {
	DecryptFileMetadata(ctx context.Context, metadata, uuid string) (cryptox.FileMetadata, error)
	DecryptFolderName(ctx context.Context, name, uuid string) (string, error)
}

// Ingest converts an undecrypted directory listing into items, decrypting
// names/metadata and normalizing timestamps to milliseconds. Entries whose
// metadata cannot be decrypted are skipped and logged; one broken row never
// fails the listing.
func Ingest(ctx context.Context, dec Decrypter, log logging.Logger, raw []api.DriveItem) []models.Item {
	out := make([]models.Item, 0, len(raw))

	for _, r := range raw {
		switch models.ItemType(r.Type) {
		case models.ItemTypeFile:
			md, err := dec.DecryptFileMetadata(ctx, r.Metadata, r.UUID)
			if err != nil {
				log.Warn(ctx, "skipping undecryptable file", "uuid", r.UUID, "error", err)
				continue
			}
			out = append(out, models.Item{
				UUID:         r.UUID,
				Type:         models.ItemTypeFile,
				Parent:       r.Parent,
				Name:         md.Name,
				Size:         md.Size,
				Mime:         md.Mime,
				Key:          md.Key,
				LastModified: md.LastModified,
				Favorited:    r.Favorited,
			})
		case models.ItemTypeFolder:
			name, err := dec.DecryptFolderName(ctx, r.Name, r.UUID)
			if err != nil {
				log.Warn(ctx, "skipping undecryptable folder", "uuid", r.UUID, "error", err)
				continue
			}
			out = append(out, models.Item{
				UUID:         r.UUID,
				Type:         models.ItemTypeFolder,
				Parent:       r.Parent,
				Name:         name,
				Size:         r.Size,
				LastModified: timex.UnixMs(r.Timestamp),
				Favorited:    r.Favorited,
				Color:        r.Color,
			})
		default:
			log.Warn(ctx, "unknown item type in listing", "uuid", r.UUID, "type", r.Type)
		}
	}

	return out
}
