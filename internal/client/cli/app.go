// Package cli implements the interactive SkyVault command line.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dkrasnovs/skyvault/internal/client/api"
	"github.com/dkrasnovs/skyvault/internal/client/config"
	"github.com/dkrasnovs/skyvault/internal/client/events"
	"github.com/dkrasnovs/skyvault/internal/client/items"
	"github.com/dkrasnovs/skyvault/internal/client/metacache"
	"github.com/dkrasnovs/skyvault/internal/client/models"
	"github.com/dkrasnovs/skyvault/internal/cryptox"
	"github.com/dkrasnovs/skyvault/internal/logging"
	"github.com/dkrasnovs/skyvault/internal/timex"

	_ "modernc.org/sqlite"
)

// App wires the client components behind the REPL commands.
type App struct {
	config *config.Config
	log    logging.Logger
	api    *api.Client
	db     *sql.DB
	cache  *metacache.Cache

	// Session state, populated by Login.
	email     string
	dec       *metacache.Decrypter
	formatter *events.Formatter
	paginator *events.Paginator
	store     *items.Store
	rng       models.Range

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local cache database and builds the API client.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := metacache.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("initializing cache database: %w", err)
	}

	return &App{
		config: cfg,
		log:    log,
		api:    api.NewClient(cfg.APIEndpoint, log),
		db:     db,
		cache:  metacache.New(metacache.NewSQLiteStore(db), cfg.MetadataCacheTTL),
		rng:    models.RangeAll,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.dec != nil
}

// Login prompts for credentials, authenticates and unwraps the account
// master keys.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	info, err := a.api.GetAuthInfo(ctx, email)
	if err != nil {
		a.log.Error(ctx, "auth info failed", "error", err)
		fmt.Fprintln(a.out, "Login failed:", err)
		return err
	}

	derived := cryptox.DeriveMasterKey(password, []byte(info.Salt))
	for i := range password {
		password[i] = 0
	}

	sess, err := a.api.Login(ctx, email, cryptox.AuthVerifier(derived))
	if err != nil {
		a.log.Error(ctx, "login failed", "error", err)
		fmt.Fprintln(a.out, "Login failed:", err)
		return err
	}

	keyList, err := cryptox.DecryptMetadata(sess.MasterKeys, cryptox.MasterKeyString(derived))
	if err != nil {
		a.log.Error(ctx, "unwrapping master keys failed", "error", err)
		fmt.Fprintln(a.out, "Login failed:", err)
		return err
	}
	masterKeys := strings.Split(keyList, "|")

	if a.db != nil {
		cleared, err := metacache.BindAccount(ctx, a.db, email)
		if err != nil {
			a.log.Error(ctx, "binding cache to account failed", "error", err)
			fmt.Fprintln(a.out, "Login failed:", err)
			return err
		}
		if cleared {
			a.cache.Flush()
			a.log.Info(ctx, "account changed, cache cleared")
		}
	}

	a.email = email
	a.dec = metacache.NewDecrypter(masterKeys, a.cache)
	a.formatter = events.NewFormatter(a.dec, a.config.Lang, a.log)
	a.paginator = events.NewPaginator(a.api, a.config.EventsFilter, a.log)

	fmt.Fprintln(a.out, "Logged in as", email)
	return nil
}

// Logout drops the session state. Cached decrypted metadata stays, keyed
// by ciphertext, and is reused on the next login.
func (a *App) Logout(ctx context.Context) error {
	a.email = ""
	a.dec = nil
	a.formatter = nil
	a.paginator = nil
	a.store = nil
	a.rng = models.RangeAll
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// List fetches and prints a directory. With no argument the root listing
// is fetched.
func (a *App) List(ctx context.Context, args []string) error {
	parent := "root"
	view := items.ViewDrive
	if len(args) > 0 {
		parent = args[0]
	}

	raw, err := a.api.ListDirectory(ctx, parent)
	if err != nil {
		a.log.Error(ctx, "listing failed", "parent", parent, "error", err)
		fmt.Fprintln(a.out, "Listing failed:", err)
		return err
	}

	list := items.Ingest(ctx, a.dec, a.log, raw)

	a.store = items.NewStore(view, parent)
	a.store.OnReload(func(parent string) {
		// Refetch happens on the next ls; the REPL has no background
		// refresh loop.
		a.log.Info(ctx, "listing invalidated", "parent", parent)
	})
	a.store.SetItems(list)

	for _, it := range list {
		marker := " "
		if it.Type == models.ItemTypeFolder {
			marker = "d"
		}
		fmt.Fprintf(a.out, "%s %-36s  %10d  %s\n", marker, it.UUID, it.Size, it.Name)
	}
	fmt.Fprintf(a.out, "%d items\n", len(list))
	return nil
}

// Photos prints the current listing bucketed by the given range mode.
func (a *App) Photos(ctx context.Context, args []string) error {
	if a.store == nil {
		fmt.Fprintln(a.out, "No listing loaded; run ls first")
		return nil
	}

	if len(args) > 0 {
		a.rng = models.NormalizeRange(args[0])
	}

	rows := items.GroupForRange(a.store.Items(), a.rng, a.config.Lang, true)

	if a.rng == models.RangeAll {
		for _, r := range rows {
			fmt.Fprintf(a.out, "%-36s  %s\n", r.UUID, r.Name)
		}
	} else {
		for _, r := range rows {
			fmt.Fprintf(a.out, "%-20s  %d items\n", r.Title, r.RemainingItems)
		}
	}
	fmt.Fprintf(a.out, "%d rows (range: %s)\n", len(rows), a.rng)
	return nil
}

// Events loads the next page of the audit log and prints it.
func (a *App) Events(ctx context.Context) error {
	added, err := a.paginator.LoadMore(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Loading events failed:", err)
		return err
	}

	evs := a.paginator.Events()
	page := evs[len(evs)-added:]
	texts := a.formatter.FormatPage(ctx, page)

	for i, ev := range page {
		text := texts[i]
		if text == "" {
			text = "(unavailable)"
		}
		fmt.Fprintf(a.out, "%8d  %s  %s\n", ev.ID, timestampString(ev.Timestamp), text)
	}

	if added == 0 && a.paginator.Done() {
		fmt.Fprintln(a.out, "No more events")
	}
	return nil
}

// EventInfo prints the detail view of one event.
func (a *App) EventInfo(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: eventinfo <uuid>")
		return nil
	}

	ev, err := a.api.FetchEventInfo(ctx, args[0])
	if err != nil {
		fmt.Fprintln(a.out, "Fetching event failed:", err)
		return err
	}

	text, err := a.formatter.EventText(ctx, *ev)
	if err != nil {
		a.log.Error(ctx, "formatting event", "uuid", args[0], "error", err)
		fmt.Fprintln(a.out, "Formatting event failed:", err)
		return err
	}

	fmt.Fprintln(a.out, text)
	fmt.Fprintln(a.out, "Type:      ", events.Label(a.config.Lang, ev.Type))
	fmt.Fprintln(a.out, "Date:      ", timestampString(ev.Timestamp))
	if ev.Info.UserAgent != "" {
		fmt.Fprintln(a.out, "User agent:", ev.Info.UserAgent)
	}
	if ev.Info.IP != "" {
		fmt.Fprintln(a.out, "IP:        ", ev.Info.IP)
	}
	return nil
}

// FolderSize fetches the recursive size of a folder and, when the folder is
// part of the current listing, patches the stored row.
func (a *App) FolderSize(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: size <uuid>")
		return nil
	}

	size, err := a.api.FolderSize(ctx, args[0])
	if err != nil {
		fmt.Fprintln(a.out, "Fetching folder size failed:", err)
		return err
	}

	if a.store != nil {
		a.store.Apply(items.FolderSize{UUID: args[0], Size: size})
	}

	fmt.Fprintf(a.out, "%d bytes\n", size)
	return nil
}

func timestampString(ms int64) string {
	return timex.ToTime(ms).Format("2006-01-02 15:04:05")
}
