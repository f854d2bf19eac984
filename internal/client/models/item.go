// Package models defines the records surfaced in drive listings and the
// audit log.
package models

// ItemType tags a listing record as a file or a folder.
type ItemType string

const (
	ItemTypeFile   ItemType = "file"
	ItemTypeFolder ItemType = "folder"
)

// FolderColors is the fixed palette selectable for folder tints. An empty
// Item.Color means the default tint.
var FolderColors = []string{"default", "blue", "green", "purple", "red", "gray"}

// Item is a file or folder record in one listing. UUID is unique within a
// listing response; every patch and selection operation keys on it.
//
// LastModified is unix milliseconds, normalized once at ingestion.
type Item struct {
	UUID         string   `json:"uuid"`
	Type         ItemType `json:"type"`
	Parent       string   `json:"parent"`
	Name         string   `json:"name"`
	Size         int64    `json:"size"`
	Mime         string   `json:"mime"`
	Key          string   `json:"key"`
	LastModified int64    `json:"lastModified"`
	Favorited    bool     `json:"favorited"`
	Offline      bool     `json:"offline"`
	Selected     bool     `json:"selected"`
	Color        string   `json:"color,omitempty"`
	// Thumbnail is an opaque cache key; non-empty means a generated
	// thumbnail exists on disk under the thumbnail cache directory.
	Thumbnail string `json:"thumbnail,omitempty"`
}

// Range selects the bucketing granularity of a photo listing.
type Range string

const (
	RangeAll    Range = "all"
	RangeYears  Range = "years"
	RangeMonths Range = "months"
	RangeDays   Range = "days"
)

// NormalizeRange maps arbitrary input to a valid Range, defaulting to
// RangeAll.
func NormalizeRange(s string) Range {
	switch Range(s) {
	case RangeYears, RangeMonths, RangeDays, RangeAll:
		return Range(s)
	default:
		return RangeAll
	}
}

// DisplayItem is one row of a rendered listing: either a plain item
// (RangeAll) or a synthetic bucket aggregating several items under one
// label. Buckets are recomputed from the current item slice on every
// change and own no identity of their own.
//
// The embedded Item carries the representative fields (thumbnail, color,
// type) of the first item folded into the bucket.
type DisplayItem struct {
	Item

	// Title is the bucket label: a year, "Month Year", or
	// "Day. Mon Year". Empty for RangeAll rows.
	Title string `json:"title,omitempty"`

	// RemainingItems counts the source items folded into this bucket.
	RemainingItems int `json:"remainingItems,omitempty"`

	// Including lists the UUIDs of the folded items in input order.
	Including []string `json:"including,omitempty"`
}
