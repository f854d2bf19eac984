// Package events renders the audit log: per-type decryption and
// formatting of event rows, and forward cursor pagination over the event
// feed.
package events

import (
	"context"
	"strconv"

	"github.com/dkrasnovs/skyvault/internal/client/models"
	"github.com/dkrasnovs/skyvault/internal/cryptox"
	"github.com/dkrasnovs/skyvault/internal/i18n"
	"github.com/dkrasnovs/skyvault/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Decrypter resolves encrypted metadata envelopes to plaintext. Implemented
// by metacache.Decrypter.
type Decrypter interface {
	DecryptFileMetadata(ctx context.Context, metadata, uuid string) (cryptox.FileMetadata, error)
	DecryptFolderName(ctx context.Context, name, uuid string) (string, error)
}

// Formatter turns events into display strings. Decrypted names pass through
// i18n.StripTags before interpolation so stored markup never reaches a
// plain-text label.
type Formatter struct {
	dec  Decrypter
	lang string
	log  logging.Logger
}

func NewFormatter(dec Decrypter, lang string, log logging.Logger) *Formatter {
	return &Formatter{dec: dec, lang: lang, log: log}
}

// EventText returns the display string for one event. File events decrypt
// file metadata, folder events decrypt the folder name, account events
// decrypt nothing. Decryption failures are returned to the caller
// unwrapped of any partial formatting. An unknown event type is not an
// error; its raw type tag is the display string.
func (f *Formatter) EventText(ctx context.Context, ev models.Event) (string, error) {
	switch ev.Type {
	case "fileUploaded":
		return f.fileInfo(ctx, ev, "eventFileUploadedInfo")
	case "fileVersioned":
		return f.fileInfo(ctx, ev, "eventFileVersionedInfo")
	case "versionedFileRestored":
		return f.fileInfo(ctx, ev, "eventVersionedFileRestoredInfo")
	case "fileMoved":
		return f.fileInfo(ctx, ev, "eventFileMovedInfo")
	case "fileRenamed":
		md, err := f.dec.DecryptFileMetadata(ctx, ev.Info.Metadata, ev.Info.UUID)
		if err != nil {
			return "", err
		}
		old, err := f.dec.DecryptFileMetadata(ctx, ev.Info.OldMetadata, ev.Info.UUID)
		if err != nil {
			return "", err
		}
		return i18n.TR(f.lang, "eventFileRenamedInfo",
			[]string{"__NAME__", "__NEW__"},
			[]string{i18n.StripTags(old.Name), i18n.StripTags(md.Name)}), nil
	case "fileTrash":
		return f.fileInfo(ctx, ev, "eventFileTrashInfo")
	case "fileRm":
		return f.fileInfo(ctx, ev, "eventFileRmInfo")
	case "fileRestored":
		return f.fileInfo(ctx, ev, "eventFileRestoredInfo")
	case "fileShared":
		md, err := f.dec.DecryptFileMetadata(ctx, ev.Info.Metadata, ev.Info.UUID)
		if err != nil {
			return "", err
		}
		return i18n.TR(f.lang, "eventFileSharedInfo",
			[]string{"__NAME__", "__EMAIL__"},
			[]string{i18n.StripTags(md.Name), ev.Info.ReceiverEmail}), nil
	case "fileLinkEdited":
		return f.fileInfo(ctx, ev, "eventFileLinkEditedInfo")
	case "folderTrash":
		return f.folderInfo(ctx, ev, "eventFolderTrashInfo")
	case "folderShared":
		name, err := f.dec.DecryptFolderName(ctx, ev.Info.Name, ev.Info.UUID)
		if err != nil {
			return "", err
		}
		return i18n.TR(f.lang, "eventFolderSharedInfo",
			[]string{"__NAME__", "__EMAIL__"},
			[]string{i18n.StripTags(name), ev.Info.ReceiverEmail}), nil
	case "folderMoved":
		return f.folderInfo(ctx, ev, "eventFolderMovedInfo")
	case "folderRenamed":
		name, err := f.dec.DecryptFolderName(ctx, ev.Info.Name, ev.Info.UUID)
		if err != nil {
			return "", err
		}
		oldName, err := f.dec.DecryptFolderName(ctx, ev.Info.OldName, ev.Info.UUID)
		if err != nil {
			return "", err
		}
		return i18n.TR(f.lang, "eventFolderRenamedInfo",
			[]string{"__NAME__", "__NEW__"},
			[]string{i18n.StripTags(oldName), i18n.StripTags(name)}), nil
	case "subFolderCreated", "baseFolderCreated":
		return f.folderInfo(ctx, ev, "eventFolderCreatedInfo")
	case "folderRestored":
		return f.folderInfo(ctx, ev, "eventFolderRestoredInfo")
	case "folderColorChanged":
		return f.folderInfo(ctx, ev, "eventFolderColorChangedInfo")
	case "login":
		return i18n.T(f.lang, "eventLoginInfo"), nil
	case "deleteVersioned":
		return i18n.T(f.lang, "eventDeleteVersionedInfo"), nil
	case "deleteAll":
		return i18n.T(f.lang, "eventDeleteAllInfo"), nil
	case "deleteUnfinished":
		return i18n.T(f.lang, "eventDeleteUnfinishedInfo"), nil
	case "trashEmptied":
		return i18n.T(f.lang, "eventTrashEmptiedInfo"), nil
	case "requestAccountDeletion":
		return i18n.T(f.lang, "eventRequestAccountDeletionInfo"), nil
	case "2faEnabled":
		return i18n.T(f.lang, "event2FAEnabledInfo"), nil
	case "2faDisabled":
		return i18n.T(f.lang, "event2FADisabledInfo"), nil
	case "codeRedeemed":
		return i18n.TR(f.lang, "eventCodeRedeemInfo",
			[]string{"__CODE__"}, []string{ev.Info.Code}), nil
	case "emailChanged":
		return i18n.TR(f.lang, "eventEmailChangedInfo",
			[]string{"__CODE__"}, []string{ev.Info.Email}), nil
	case "passwordChanged":
		return i18n.T(f.lang, "eventPasswordChangedInfo"), nil
	case "removedSharedInItems":
		return i18n.TR(f.lang, "eventRemovedSharedInItemsInfo",
			[]string{"__COUNT__", "__EMAIL__"},
			[]string{strconv.Itoa(ev.Info.Count), ev.Info.SharerEmail}), nil
	case "removedSharedOutItems":
		return i18n.TR(f.lang, "eventRemovedSharedOutItemsInfo",
			[]string{"__COUNT__", "__EMAIL__"},
			[]string{strconv.Itoa(ev.Info.Count), ev.Info.ReceiverEmail}), nil
	default:
		return ev.Type, nil
	}
}

func (f *Formatter) fileInfo(ctx context.Context, ev models.Event, key string) (string, error) {
	md, err := f.dec.DecryptFileMetadata(ctx, ev.Info.Metadata, ev.Info.UUID)
	if err != nil {
		return "", err
	}
	return i18n.TR(f.lang, key, []string{"__NAME__"}, []string{i18n.StripTags(md.Name)}), nil
}

func (f *Formatter) folderInfo(ctx context.Context, ev models.Event, key string) (string, error) {
	name, err := f.dec.DecryptFolderName(ctx, ev.Info.Name, ev.Info.UUID)
	if err != nil {
		return "", err
	}
	return i18n.TR(f.lang, key, []string{"__NAME__"}, []string{i18n.StripTags(name)}), nil
}

// formatConcurrency bounds how many rows decrypt at once per page.
const formatConcurrency = 4

// FormatPage formats a slice of events concurrently, one result per input
// row. A failing row ends up as an empty string and is logged; it never
// affects its siblings.
func (f *Formatter) FormatPage(ctx context.Context, evs []models.Event) []string {
	out := make([]string, len(evs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(formatConcurrency)

	for i, ev := range evs {
		i, ev := i, ev
		g.Go(func() error {
			text, err := f.EventText(ctx, ev)
			if err != nil {
				f.log.Error(ctx, "formatting event", "id", ev.ID, "type", ev.Type, "error", err)
				return nil
			}
			out[i] = text
			return nil
		})
	}

	_ = g.Wait()

	return out
}

// labelKeys maps event types to their short list label keys. Both folder
// creation variants share one label.
var labelKeys = map[string]string{
	"fileUploaded":           "eventFileUploaded",
	"fileVersioned":          "eventFileVersioned",
	"versionedFileRestored":  "eventVersionedFileRestored",
	"fileMoved":              "eventFileMoved",
	"fileRenamed":            "eventFileRenamed",
	"fileTrash":              "eventFileTrash",
	"fileRm":                 "eventFileRm",
	"fileRestored":           "eventFileRestored",
	"fileShared":             "eventFileShared",
	"fileLinkEdited":         "eventFileLinkEdited",
	"folderTrash":            "eventFolderTrash",
	"folderShared":           "eventFolderShared",
	"folderMoved":            "eventFolderMoved",
	"folderRenamed":          "eventFolderRenamed",
	"subFolderCreated":       "eventFolderCreated",
	"baseFolderCreated":      "eventFolderCreated",
	"folderRestored":         "eventFolderRestored",
	"folderColorChanged":     "eventFolderColorChanged",
	"login":                  "eventLogin",
	"deleteVersioned":        "eventDeleteVersioned",
	"deleteAll":              "eventDeleteAll",
	"deleteUnfinished":       "eventDeleteUnfinished",
	"trashEmptied":           "eventTrashEmptied",
	"requestAccountDeletion": "eventRequestAccountDeletion",
	"2faEnabled":             "event2FAEnabled",
	"2faDisabled":            "event2FADisabled",
	"codeRedeemed":           "eventCodeRedeem",
	"emailChanged":           "eventEmailChanged",
	"passwordChanged":        "eventPasswordChanged",
	"removedSharedInItems":   "eventRemovedSharedInItems",
	"removedSharedOutItems":  "eventRemovedSharedOutItems",
}

// Label returns the short localized list label for an event type, falling
// back to the raw type tag.
func Label(lang, eventType string) string {
	if key, ok := labelKeys[eventType]; ok {
		return i18n.T(lang, key)
	}
	return eventType
}
