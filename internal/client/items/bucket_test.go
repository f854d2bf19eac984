package items

import (
	"testing"
	"time"

	"github.com/dkrasnovs/skyvault/internal/client/models"
	"github.com/stretchr/testify/require"
)

func ms(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 12, 0, 0, 0, time.Local).UnixMilli()
}

func photo(uuid string, ts int64) models.Item {
	return models.Item{
		UUID:         uuid,
		Type:         models.ItemTypeFile,
		Name:         uuid + ".jpg",
		LastModified: ts,
		Thumbnail:    "thumb-" + uuid,
	}
}

func TestGroupForRange_AllIsIdentity(t *testing.T) {
	in := []models.Item{
		photo("1", ms(2023, time.January, 15)),
		photo("2", ms(2023, time.June, 20)),
		photo("3", ms(2024, time.February, 1)),
	}

	out := GroupForRange(in, models.RangeAll, "en", false)

	require.Len(t, out, len(in))
	for i := range in {
		require.Equal(t, in[i].UUID, out[i].UUID)
		require.Empty(t, out[i].Title)
		require.Nil(t, out[i].Including)
	}
}

func TestGroupForRange_AllPhotoGridFiltersBareVideos(t *testing.T) {
	in := []models.Item{
		photo("1", ms(2023, time.January, 15)),
		{UUID: "2", Type: models.ItemTypeFile, Name: "clip.mp4", LastModified: ms(2023, time.January, 16)},
		{UUID: "3", Type: models.ItemTypeFile, Name: "clip2.mp4", LastModified: ms(2023, time.January, 17), Thumbnail: "t3"},
	}

	// Non-photo context keeps everything.
	require.Len(t, GroupForRange(in, models.RangeAll, "en", false), 3)

	out := GroupForRange(in, models.RangeAll, "en", true)
	require.Len(t, out, 2)
	require.Equal(t, "1", out[0].UUID)
	require.Equal(t, "3", out[1].UUID)
}

func TestGroupForRange_Years(t *testing.T) {
	in := []models.Item{
		photo("1", ms(2023, time.January, 15)),
		photo("2", ms(2023, time.June, 20)),
		photo("3", ms(2024, time.February, 1)),
	}

	out := GroupForRange(in, models.RangeYears, "en", true)

	require.Len(t, out, 2)

	// Built in first-seen order (2023, 2024), then reversed.
	require.Equal(t, "2024", out[0].Title)
	require.Equal(t, []string{"3"}, out[0].Including)
	require.Equal(t, 1, out[0].RemainingItems)

	require.Equal(t, "2023", out[1].Title)
	require.Equal(t, []string{"1", "2"}, out[1].Including)
	require.Equal(t, 2, out[1].RemainingItems)

	// First item seen for a key seeds the representative fields.
	require.Equal(t, "1", out[1].UUID)
	require.Equal(t, "thumb-1", out[1].Thumbnail)
}

func TestGroupForRange_Months(t *testing.T) {
	in := []models.Item{
		photo("1", ms(2023, time.January, 15)),
		photo("2", ms(2023, time.January, 28)),
		photo("3", ms(2023, time.June, 20)),
	}

	out := GroupForRange(in, models.RangeMonths, "en", true)

	require.Len(t, out, 2)
	// First-seen order, no reversal.
	require.Equal(t, "January 2023", out[0].Title)
	require.Equal(t, []string{"1", "2"}, out[0].Including)
	require.Equal(t, "June 2023", out[1].Title)
}

func TestGroupForRange_Days(t *testing.T) {
	in := []models.Item{
		photo("1", ms(2023, time.June, 20)),
		photo("2", ms(2023, time.June, 20)),
		photo("3", ms(2023, time.June, 21)),
	}

	out := GroupForRange(in, models.RangeDays, "en", true)

	require.Len(t, out, 2)
	require.Equal(t, "20. Jun 2023", out[0].Title)
	require.Equal(t, 2, out[0].RemainingItems)
	require.Equal(t, "21. Jun 2023", out[1].Title)
}

func TestGroupForRange_CountsPartitionInput(t *testing.T) {
	in := []models.Item{
		photo("1", ms(2022, time.March, 3)),
		photo("2", ms(2023, time.March, 3)),
		photo("3", ms(2023, time.April, 9)),
		photo("4", ms(2024, time.April, 9)),
		photo("5", ms(2024, time.April, 10)),
	}

	for _, r := range []models.Range{models.RangeYears, models.RangeMonths, models.RangeDays} {
		out := GroupForRange(in, r, "en", true)

		total := 0
		seen := map[string]int{}
		for _, b := range out {
			total += b.RemainingItems
			require.Len(t, b.Including, b.RemainingItems)
			for _, id := range b.Including {
				seen[id]++
			}
		}

		require.Equal(t, len(in), total, "range %s", r)
		require.Len(t, seen, len(in), "range %s", r)
		for id, n := range seen {
			require.Equal(t, 1, n, "uuid %s appears once for range %s", id, r)
		}
	}
}

func TestGroupForRange_BucketingSkipsBareVideos(t *testing.T) {
	in := []models.Item{
		photo("1", ms(2023, time.June, 20)),
		{UUID: "2", Type: models.ItemTypeFile, Name: "clip.mp4", LastModified: ms(2023, time.June, 20)},
	}

	out := GroupForRange(in, models.RangeDays, "en", true)
	require.Len(t, out, 1)
	require.Equal(t, []string{"1"}, out[0].Including)
}

func TestGroupForRange_Idempotent(t *testing.T) {
	in := []models.Item{
		photo("1", ms(2023, time.January, 15)),
		photo("2", ms(2023, time.June, 20)),
		photo("3", ms(2024, time.February, 1)),
	}

	a := GroupForRange(in, models.RangeYears, "en", true)
	b := GroupForRange(in, models.RangeYears, "en", true)
	require.Equal(t, a, b)
}

func TestGroupForRange_Empty(t *testing.T) {
	require.Empty(t, GroupForRange(nil, models.RangeYears, "en", true))
	require.Empty(t, GroupForRange(nil, models.RangeAll, "en", true))
}

func TestNormalizeRange(t *testing.T) {
	require.Equal(t, models.RangeYears, models.NormalizeRange("years"))
	require.Equal(t, models.RangeAll, models.NormalizeRange(""))
	require.Equal(t, models.RangeAll, models.NormalizeRange("bogus"))
}
