package items

import "github.com/dkrasnovs/skyvault/internal/client/models"

// Command is one mutation of a listing's item slice. The variant set is
// closed: every screen-to-screen notification the app emits is one of the
// types below, so dispatch is exhaustive at compile time instead of
// matching on strings at runtime.
type Command interface {
	isCommand()
}

// SelectItem marks one item selected.
type SelectItem struct {
	UUID string
}

// UnselectItem clears one item's selection.
type UnselectItem struct {
	UUID string
}

// SelectAll marks every item selected.
type SelectAll struct{}

// UnselectAll clears every selection.
type UnselectAll struct{}

// RemoveItem drops an item from the listing.
type RemoveItem struct {
	UUID string
}

// AddItem inserts an item when Parent matches the listing's parent.
type AddItem struct {
	Item   models.Item
	Parent string
}

// ChangeItemName renames an item in place.
type ChangeItemName struct {
	UUID string
	Name string
}

// ChangeWholeItem replaces the item with the given UUID wholesale.
type ChangeWholeItem struct {
	UUID string
	Item models.Item
}

// MarkItemFavorite sets or clears the favorite flag. Clearing it while the
// favorites listing is active removes the item instead.
type MarkItemFavorite struct {
	UUID  string
	Value bool
}

// MarkItemOffline sets or clears the offline-availability flag. Clearing it
// while the offline listing is active removes the item instead.
type MarkItemOffline struct {
	UUID  string
	Value bool
}

// ChangeFolderColor updates a folder's tint.
type ChangeFolderColor struct {
	UUID  string
	Color string
}

// FolderSize records an asynchronously fetched subtree size.
type FolderSize struct {
	UUID string
	Size int64
}

// ReloadList asks the listing owner to refetch from the server when Parent
// matches the listing's parent.
type ReloadList struct {
	Parent string
}

func (SelectItem) isCommand()        {}
func (UnselectItem) isCommand()      {}
func (SelectAll) isCommand()         {}
func (UnselectAll) isCommand()       {}
func (RemoveItem) isCommand()        {}
func (AddItem) isCommand()           {}
func (ChangeItemName) isCommand()    {}
func (ChangeWholeItem) isCommand()   {}
func (MarkItemFavorite) isCommand()  {}
func (MarkItemOffline) isCommand()   {}
func (ChangeFolderColor) isCommand() {}
func (FolderSize) isCommand()        {}
func (ReloadList) isCommand()        {}
