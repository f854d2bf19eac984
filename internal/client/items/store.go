package items

import (
	"sync"

	"github.com/dkrasnovs/skyvault/internal/client/models"
	"github.com/dkrasnovs/skyvault/internal/filex"
)

// View names the listing a store backs. The favorites and offline views
// treat unmark commands as removals, matching the screens they feed.
type View string

const (
	ViewDrive     View = "drive"
	ViewPhotos    View = "photos"
	ViewFavorites View = "favorites"
	ViewOffline   View = "offline"
)

// Store owns the item slice of one listing. It is the single source of
// truth the list view reads; sibling screens mutate it only through Apply,
// which patches non-destructively keyed by UUID and then notifies
// subscribers with a snapshot.
type Store struct {
	mu     sync.RWMutex
	view   View
	parent string
	items  []models.Item
	subs   []func([]models.Item)

	// onReload runs when a ReloadList command targets this listing.
	onReload func(parent string)

	// Visibility hooks. Fired from SetVisible for items newly scrolled
	// into view that still need background work.
	onThumbnailNeeded func(models.Item)
	onFolderSizeNeeded func(models.Item)

	visible map[string]bool
}

// NewStore creates a store for the given view and parent folder.
func NewStore(view View, parent string) *Store {
	return &Store{view: view, parent: parent, visible: map[string]bool{}}
}

// View returns the view this store backs.
func (s *Store) View() View {
	return s.view
}

// SetItems replaces the whole slice, e.g. after a listing fetch.
func (s *Store) SetItems(items []models.Item) {
	s.mu.Lock()
	s.items = append([]models.Item(nil), items...)
	s.mu.Unlock()
	s.notify()
}

// Items returns a copy of the current slice.
func (s *Store) Items() []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Item(nil), s.items...)
}

// Subscribe registers fn to run with a snapshot after every applied change.
func (s *Store) Subscribe(fn func([]models.Item)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// OnReload registers the refetch callback for ReloadList commands.
func (s *Store) OnReload(fn func(parent string)) {
	s.mu.Lock()
	s.onReload = fn
	s.mu.Unlock()
}

// OnThumbnailNeeded registers the hook fired for visible files that can
// have a thumbnail but do not yet.
func (s *Store) OnThumbnailNeeded(fn func(models.Item)) {
	s.mu.Lock()
	s.onThumbnailNeeded = fn
	s.mu.Unlock()
}

// OnFolderSizeNeeded registers the hook fired for visible folders with no
// size fetched yet.
func (s *Store) OnFolderSizeNeeded(fn func(models.Item)) {
	s.mu.Lock()
	s.onFolderSizeNeeded = fn
	s.mu.Unlock()
}

// Apply executes one command against the listing and notifies subscribers
// if anything changed.
func (s *Store) Apply(cmd Command) {
	var (
		changed bool
		reload  func(string)
		parent  string
	)

	s.mu.Lock()

	switch c := cmd.(type) {
	case SelectItem:
		changed = s.patch(c.UUID, func(it *models.Item) { it.Selected = true })
	case UnselectItem:
		changed = s.patch(c.UUID, func(it *models.Item) { it.Selected = false })
	case SelectAll:
		for i := range s.items {
			s.items[i].Selected = true
		}
		changed = len(s.items) > 0
	case UnselectAll:
		for i := range s.items {
			s.items[i].Selected = false
		}
		changed = len(s.items) > 0
	case RemoveItem:
		changed = s.remove(c.UUID)
	case AddItem:
		if c.Parent == s.parent {
			s.items = append(s.items, c.Item)
			changed = true
		}
	case ChangeItemName:
		changed = s.patch(c.UUID, func(it *models.Item) { it.Name = c.Name })
	case ChangeWholeItem:
		changed = s.patch(c.UUID, func(it *models.Item) { *it = c.Item })
	case MarkItemFavorite:
		if !c.Value && s.view == ViewFavorites {
			changed = s.remove(c.UUID)
		} else {
			changed = s.patch(c.UUID, func(it *models.Item) { it.Favorited = c.Value })
		}
	case MarkItemOffline:
		if !c.Value && s.view == ViewOffline {
			changed = s.remove(c.UUID)
		} else {
			changed = s.patch(c.UUID, func(it *models.Item) { it.Offline = c.Value })
		}
	case ChangeFolderColor:
		changed = s.patch(c.UUID, func(it *models.Item) { it.Color = c.Color })
	case FolderSize:
		changed = s.patch(c.UUID, func(it *models.Item) { it.Size = c.Size })
	case ReloadList:
		if c.Parent == s.parent && s.onReload != nil {
			reload = s.onReload
			parent = c.Parent
		}
	}

	s.mu.Unlock()

	if reload != nil {
		reload(parent)
	}
	if changed {
		s.notify()
	}
}

// SetVisible records which items are on screen and fires the background
// work hooks for items that became visible and still need a thumbnail or a
// folder size.
func (s *Store) SetVisible(uuids []string) {
	s.mu.Lock()

	next := make(map[string]bool, len(uuids))
	var pendingThumb, pendingSize []models.Item

	for _, id := range uuids {
		next[id] = true
		if s.visible[id] {
			continue
		}
		for i := range s.items {
			it := s.items[i]
			if it.UUID != id {
				continue
			}
			if it.Type == models.ItemTypeFile && it.Thumbnail == "" && filex.CanCompressThumbnail(filex.Ext(it.Name)) {
				pendingThumb = append(pendingThumb, it)
			}
			if it.Type == models.ItemTypeFolder && it.Size == 0 {
				pendingSize = append(pendingSize, it)
			}
			break
		}
	}

	s.visible = next
	thumbFn := s.onThumbnailNeeded
	sizeFn := s.onFolderSizeNeeded

	s.mu.Unlock()

	if thumbFn != nil {
		for _, it := range pendingThumb {
			thumbFn(it)
		}
	}
	if sizeFn != nil {
		for _, it := range pendingSize {
			sizeFn(it)
		}
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	snapshot := append([]models.Item(nil), s.items...)
	subs := append(([]func([]models.Item))(nil), s.subs...)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// patch applies fn to the item with the given uuid. Reports whether a row
// was touched. Caller holds the lock.
func (s *Store) patch(uuid string, fn func(*models.Item)) bool {
	for i := range s.items {
		if s.items[i].UUID == uuid {
			fn(&s.items[i])
			return true
		}
	}
	return false
}

// remove drops the item with the given uuid. Caller holds the lock.
func (s *Store) remove(uuid string) bool {
	for i := range s.items {
		if s.items[i].UUID == uuid {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}
