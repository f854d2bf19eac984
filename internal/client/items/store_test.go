package items

import (
	"testing"

	"github.com/dkrasnovs/skyvault/internal/client/models"
	"github.com/stretchr/testify/require"
)

func newTestStore(view View, items ...models.Item) *Store {
	s := NewStore(view, "parent-1")
	s.SetItems(items)
	return s
}

func file(uuid string) models.Item {
	return models.Item{UUID: uuid, Type: models.ItemTypeFile, Name: uuid + ".jpg", Parent: "parent-1"}
}

func TestStore_SelectUnselect(t *testing.T) {
	s := newTestStore(ViewDrive, file("a"), file("b"))

	s.Apply(SelectItem{UUID: "a"})
	require.True(t, s.Items()[0].Selected)
	require.False(t, s.Items()[1].Selected)

	s.Apply(SelectAll{})
	for _, it := range s.Items() {
		require.True(t, it.Selected)
	}

	s.Apply(UnselectItem{UUID: "a"})
	require.False(t, s.Items()[0].Selected)

	s.Apply(UnselectAll{})
	for _, it := range s.Items() {
		require.False(t, it.Selected)
	}
}

func TestStore_AddRemove(t *testing.T) {
	s := newTestStore(ViewDrive, file("a"))

	s.Apply(AddItem{Item: file("b"), Parent: "parent-1"})
	require.Len(t, s.Items(), 2)

	// Items for another listing are ignored.
	s.Apply(AddItem{Item: file("c"), Parent: "other-parent"})
	require.Len(t, s.Items(), 2)

	s.Apply(RemoveItem{UUID: "a"})
	got := s.Items()
	require.Len(t, got, 1)
	require.Equal(t, "b", got[0].UUID)

	// Removing a missing uuid is a no-op.
	s.Apply(RemoveItem{UUID: "zzz"})
	require.Len(t, s.Items(), 1)
}

func TestStore_Patches(t *testing.T) {
	folder := models.Item{UUID: "f", Type: models.ItemTypeFolder, Name: "Docs", Parent: "parent-1"}
	s := newTestStore(ViewDrive, file("a"), folder)

	s.Apply(ChangeItemName{UUID: "a", Name: "renamed.jpg"})
	require.Equal(t, "renamed.jpg", s.Items()[0].Name)

	s.Apply(ChangeFolderColor{UUID: "f", Color: "blue"})
	require.Equal(t, "blue", s.Items()[1].Color)

	s.Apply(FolderSize{UUID: "f", Size: 4096})
	require.Equal(t, int64(4096), s.Items()[1].Size)

	repl := file("a")
	repl.Name = "whole.jpg"
	repl.Favorited = true
	s.Apply(ChangeWholeItem{UUID: "a", Item: repl})
	require.Equal(t, "whole.jpg", s.Items()[0].Name)
	require.True(t, s.Items()[0].Favorited)
}

func TestStore_MarkFavorite(t *testing.T) {
	s := newTestStore(ViewDrive, file("a"))
	s.Apply(MarkItemFavorite{UUID: "a", Value: true})
	require.True(t, s.Items()[0].Favorited)

	// On the favorites listing, unfavoriting removes the row.
	fav := newTestStore(ViewFavorites, file("a"), file("b"))
	fav.Apply(MarkItemFavorite{UUID: "a", Value: false})
	got := fav.Items()
	require.Len(t, got, 1)
	require.Equal(t, "b", got[0].UUID)
}

func TestStore_MarkOffline(t *testing.T) {
	s := newTestStore(ViewDrive, file("a"))
	s.Apply(MarkItemOffline{UUID: "a", Value: true})
	require.True(t, s.Items()[0].Offline)

	off := newTestStore(ViewOffline, file("a"))
	off.Apply(MarkItemOffline{UUID: "a", Value: false})
	require.Empty(t, off.Items())
}

func TestStore_ReloadList(t *testing.T) {
	s := newTestStore(ViewDrive, file("a"))

	var reloaded []string
	s.OnReload(func(parent string) { reloaded = append(reloaded, parent) })

	s.Apply(ReloadList{Parent: "parent-1"})
	s.Apply(ReloadList{Parent: "some-other"})

	require.Equal(t, []string{"parent-1"}, reloaded)
}

func TestStore_NotifiesSubscribers(t *testing.T) {
	s := newTestStore(ViewDrive, file("a"))

	var calls int
	s.Subscribe(func(items []models.Item) { calls++ })

	s.Apply(SelectItem{UUID: "a"})
	s.Apply(SelectItem{UUID: "missing"}) // no change, no notify
	s.Apply(RemoveItem{UUID: "a"})

	require.Equal(t, 2, calls)
}

func TestStore_SetVisibleHooks(t *testing.T) {
	plain := file("a") // jpg without thumbnail
	clip := models.Item{UUID: "v", Type: models.ItemTypeFile, Name: "v.mp4", Thumbnail: "t", Parent: "parent-1"}
	folder := models.Item{UUID: "f", Type: models.ItemTypeFolder, Name: "Docs", Parent: "parent-1"}
	sized := models.Item{UUID: "g", Type: models.ItemTypeFolder, Name: "Big", Size: 10, Parent: "parent-1"}

	s := newTestStore(ViewDrive, plain, clip, folder, sized)

	var thumbs, sizes []string
	s.OnThumbnailNeeded(func(it models.Item) { thumbs = append(thumbs, it.UUID) })
	s.OnFolderSizeNeeded(func(it models.Item) { sizes = append(sizes, it.UUID) })

	s.SetVisible([]string{"a", "v", "f", "g"})

	// "a" needs a thumbnail; "v" already has one.
	require.Equal(t, []string{"a"}, thumbs)
	// "f" has no size yet; "g" does.
	require.Equal(t, []string{"f"}, sizes)

	// Still-visible items do not refire.
	s.SetVisible([]string{"a", "f"})
	require.Equal(t, []string{"a"}, thumbs)
	require.Equal(t, []string{"f"}, sizes)

	// Scrolled out and back in refires.
	s.SetVisible(nil)
	s.SetVisible([]string{"a"})
	require.Equal(t, []string{"a", "a"}, thumbs)
}
