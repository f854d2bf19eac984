// Package items implements the listing core: grouping dated items into
// year/month/day buckets for the photo grid, and the store that owns one
// listing's item slice.
package items

import (
	"strconv"
	"time"

	"github.com/dkrasnovs/skyvault/internal/client/models"
	"github.com/dkrasnovs/skyvault/internal/filex"
	"github.com/dkrasnovs/skyvault/internal/i18n"
)

// GroupForRange folds a flat item slice into display rows for the given
// range mode.
//
// RangeAll maps items 1:1 into rows; when photoGrid is set, video items
// without a generated thumbnail are dropped since they cannot be rendered
// yet. The bucketing modes group by calendar year, (year, month) or
// (year, month, day) in the local timezone. The first item seen for a key
// seeds the bucket's representative fields; later hits only grow the count
// and the Including list.
//
// Year buckets are reversed after building in first-seen order. That is
// the shipped behavior of the photo grid and is intentionally not a
// descending sort by year.
func GroupForRange(in []models.Item, r models.Range, lang string, photoGrid bool) []models.DisplayItem {
	if r == models.RangeAll {
		out := make([]models.DisplayItem, 0, len(in))
		for _, item := range in {
			if photoGrid && undisplayableVideo(item) {
				continue
			}
			out = append(out, models.DisplayItem{Item: item})
		}
		return out
	}

	var (
		out    []models.DisplayItem
		index  = map[string]int{}
		keyFor func(t time.Time) (string, string)
	)

	switch r {
	case models.RangeYears:
		keyFor = func(t time.Time) (string, string) {
			y := strconv.Itoa(t.Year())
			return y, y
		}
	case models.RangeMonths:
		keyFor = func(t time.Time) (string, string) {
			key := strconv.Itoa(t.Year()) + ":" + strconv.Itoa(int(t.Month()))
			title := i18n.MonthName(lang, t.Month()) + " " + strconv.Itoa(t.Year())
			return key, title
		}
	default: // models.RangeDays
		keyFor = func(t time.Time) (string, string) {
			key := strconv.Itoa(t.Year()) + ":" + strconv.Itoa(int(t.Month())) + ":" + strconv.Itoa(t.Day())
			title := strconv.Itoa(t.Day()) + ". " + i18n.MonthShort(lang, t.Month()) + " " + strconv.Itoa(t.Year())
			return key, title
		}
	}

	for _, item := range in {
		if undisplayableVideo(item) {
			continue
		}

		key, title := keyFor(time.UnixMilli(item.LastModified).Local())

		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, models.DisplayItem{Item: item, Title: title})
		}

		out[i].RemainingItems++
		out[i].Including = append(out[i].Including, item.UUID)
	}

	if r == models.RangeYears {
		reverse(out)
	}

	return out
}

// undisplayableVideo reports whether item is a video with no generated
// thumbnail. Such rows are suppressed rather than shown broken.
func undisplayableVideo(item models.Item) bool {
	return filex.IsVideo(item.Name) && item.Thumbnail == ""
}

func reverse(s []models.DisplayItem) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
