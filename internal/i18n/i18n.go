// Package i18n holds the localized string tables for user-facing text and
// the placeholder interpolation used by event templates.
//
// Templates carry placeholders in the form __NAME__; TR substitutes them
// positionally. Only English is bundled; unknown languages fall back to it.
package i18n

import (
	"regexp"
	"strings"
	"time"
)

var en = map[string]string{
	"events":    "Events",
	"eventInfo": "Event info",
	"settings":  "Settings",
	"loading":   "Loading...",

	// Event list labels, keyed by event type.
	"eventFileUploaded":            "File uploaded",
	"eventFileVersioned":           "File versioned",
	"eventVersionedFileRestored":   "Versioned file restored",
	"eventFileMoved":               "File moved",
	"eventFileRenamed":             "File renamed",
	"eventFileTrash":               "File moved to trash",
	"eventFileRm":                  "File deleted",
	"eventFileRestored":            "File restored",
	"eventFileShared":              "File shared",
	"eventFileLinkEdited":          "File public link edited",
	"eventFolderTrash":             "Folder moved to trash",
	"eventFolderShared":            "Folder shared",
	"eventFolderMoved":             "Folder moved",
	"eventFolderRenamed":           "Folder renamed",
	"eventFolderCreated":           "Folder created",
	"eventFolderRestored":          "Folder restored",
	"eventFolderColorChanged":      "Folder color changed",
	"eventLogin":                   "Login",
	"eventDeleteVersioned":         "Versioned files deleted",
	"eventDeleteAll":               "All files deleted",
	"eventDeleteUnfinished":        "Unfinished uploads deleted",
	"eventTrashEmptied":            "Trash emptied",
	"eventRequestAccountDeletion":  "Account deletion requested",
	"event2FAEnabled":              "Two factor authentication enabled",
	"event2FADisabled":             "Two factor authentication disabled",
	"eventCodeRedeem":              "Code redeemed",
	"eventEmailChanged":            "Email changed",
	"eventPasswordChanged":         "Password changed",
	"eventRemovedSharedInItems":    "Incoming shared items removed",
	"eventRemovedSharedOutItems":   "Outgoing shared items removed",

	// Event detail templates.
	"eventFileUploadedInfo":           "__NAME__ was uploaded",
	"eventFileVersionedInfo":          "__NAME__ was versioned",
	"eventVersionedFileRestoredInfo":  "Versioned file __NAME__ was restored",
	"eventFileMovedInfo":              "__NAME__ was moved",
	"eventFileRenamedInfo":            "__NAME__ was renamed to __NEW__",
	"eventFileTrashInfo":              "__NAME__ was moved to the trash",
	"eventFileRmInfo":                 "__NAME__ was deleted",
	"eventFileRestoredInfo":           "__NAME__ was restored from the trash",
	"eventFileSharedInfo":             "__NAME__ was shared with __EMAIL__",
	"eventFileLinkEditedInfo":         "Public link of __NAME__ was edited",
	"eventFolderTrashInfo":            "__NAME__ was moved to the trash",
	"eventFolderSharedInfo":           "__NAME__ was shared with __EMAIL__",
	"eventFolderMovedInfo":            "__NAME__ was moved",
	"eventFolderRenamedInfo":          "__NAME__ was renamed to __NEW__",
	"eventFolderCreatedInfo":          "__NAME__ was created",
	"eventFolderRestoredInfo":         "__NAME__ was restored from the trash",
	"eventFolderColorChangedInfo":     "Color of __NAME__ was changed",
	"eventLoginInfo":                  "Someone logged into your account",
	"eventDeleteVersionedInfo":        "All versioned files and folders were deleted",
	"eventDeleteAllInfo":              "All files and folders were deleted",
	"eventDeleteUnfinishedInfo":       "All unfinished uploads were deleted",
	"eventTrashEmptiedInfo":           "The trash was emptied",
	"eventRequestAccountDeletionInfo": "Account deletion was requested",
	"event2FAEnabledInfo":             "Two factor authentication was enabled",
	"event2FADisabledInfo":            "Two factor authentication was disabled",
	"eventCodeRedeemInfo":             "Code __CODE__ was redeemed",
	"eventEmailChangedInfo":           "Email was changed to __CODE__",
	"eventPasswordChangedInfo":        "Password was changed",
	"eventRemovedSharedInItemsInfo":   "__COUNT__ items shared by __EMAIL__ were removed",
	"eventRemovedSharedOutItemsInfo":  "__COUNT__ items shared with __EMAIL__ were removed",
}

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var monthShortNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// T returns the localized string for key, falling back to the key itself
// when no translation exists.
func T(lang, key string) string {
	if s, ok := en[key]; ok {
		return s
	}
	return key
}

// TR returns the localized string for key with the given placeholders
// replaced. from and to are positional pairs, e.g.
//
//	TR("en", "eventFileRenamedInfo", []string{"__NAME__", "__NEW__"}, []string{"a.txt", "b.txt"})
func TR(lang, key string, from, to []string) string {
	s := T(lang, key)
	for i := range from {
		if i >= len(to) {
			break
		}
		s = strings.ReplaceAll(s, from[i], to[i])
	}
	return s
}

// MonthName returns the localized full month name.
func MonthName(lang string, m time.Month) string {
	return monthNames[int(m)-1]
}

// MonthShort returns the localized abbreviated month name.
func MonthShort(lang string, m time.Month) string {
	return monthShortNames[int(m)-1]
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

// StripTags removes HTML-like tags from s, keeping the inner text. Decrypted
// names are attacker-controlled, so anything markup-shaped is dropped before
// the string reaches a plain-text label.
func StripTags(s string) string {
	return tagRe.ReplaceAllString(s, "")
}
