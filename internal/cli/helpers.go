package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mesh-intelligence/wardrobe/internal/catalog"
	"github.com/mesh-intelligence/wardrobe/internal/logger"
	"github.com/mesh-intelligence/wardrobe/internal/paths"
	"github.com/mesh-intelligence/wardrobe/internal/session"
	"github.com/mesh-intelligence/wardrobe/internal/sqlite"
	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// attachBackend resolves the data directory and attaches a SQLite backend.
// The caller must Detach it.
func (a *app) attachBackend() (*sqlite.Backend, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: a.cfg.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}
	return backend, nil
}

// loadCatalog loads the catalog named in config.yaml, or the built-in one.
func (a *app) loadCatalog() (*catalog.Catalog, error) {
	path := paths.ResolveCatalog(a.configDir, a.cfg.GetString(cfgKeyCatalog))
	if path == "" {
		return catalog.Builtin()
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, err
	}
	a.log.Debug("catalog loaded", "path", path, "categories", len(cat.Categories()))
	return cat, nil
}

// userSession is an open session plus the store it was loaded from.
type userSession struct {
	userID  string
	catalog *catalog.Catalog
	store   *sqlite.Backend
	session *session.Session
	diag    *logger.Diagnostics
}

// openSession loads the catalog, the user's record, and the saved selection.
// A saved selection that cannot be decoded is discarded with a warning.
func (a *app) openSession() (*userSession, error) {
	cat, err := a.loadCatalog()
	if err != nil {
		return nil, err
	}
	store, err := a.attachBackend()
	if err != nil {
		return nil, err
	}

	record, err := store.EnsureRecord(a.flags.user)
	if err != nil {
		store.Detach()
		return nil, err
	}

	diag := logger.NewDiagnostics(a.log)
	s := session.New(cat, record, session.Options{
		Strict:      a.cfg.GetBool(cfgKeyStrict),
		Log:         a.log,
		Diagnostics: diag,
	})

	blob, err := store.LoadSelection(a.flags.user)
	switch {
	case err == nil:
		if err := s.Load(blob); err != nil {
			a.log.Warn("saved selection discarded", "error", err)
		}
	case errors.Is(err, types.ErrNotFound):
	default:
		store.Detach()
		return nil, err
	}

	return &userSession{userID: a.flags.user, catalog: cat, store: store, session: s, diag: diag}, nil
}

// save writes the session's selection back to the store.
func (u *userSession) save() error {
	blob, err := u.session.Save()
	if err != nil {
		return err
	}
	return u.store.SaveSelection(u.userID, blob)
}

func (u *userSession) close() {
	u.store.Detach()
}

// recordView is the CLI rendering of an entitlement record.
type recordView struct {
	XP      int      `json:"xp"`
	Credits int      `json:"credits"`
	Premium bool     `json:"premium"`
	Owned   []string `json:"owned"`
}

func viewRecord(r types.EntitlementRecord) recordView {
	return recordView{XP: r.XP, Credits: r.Credits, Premium: r.Premium, Owned: r.Owned()}
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}

func printRecord(w io.Writer, r types.EntitlementRecord) {
	fmt.Fprintf(w, "XP:       %d\n", r.XP)
	fmt.Fprintf(w, "Credits:  %d\n", r.Credits)
	fmt.Fprintf(w, "Premium:  %t\n", r.Premium)
	if owned := r.Owned(); len(owned) > 0 {
		fmt.Fprintln(w, "Owned:")
		for _, id := range owned {
			fmt.Fprintf(w, "  %s\n", id)
		}
	}
}
