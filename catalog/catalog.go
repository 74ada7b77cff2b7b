package catalog

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mitchellh/go-homedir"

	"github.com/milk9111/lazycat/tilemap"
)

const (
	sqlPutMap = `INSERT INTO maps (id, name, path, tile_set, width, height, painted, walls)
	VALUES (:id, :name, :path, :tile_set, :width, :height, :painted, :walls)
	ON CONFLICT (id) DO UPDATE SET
		name=EXCLUDED.name, path=EXCLUDED.path, tile_set=EXCLUDED.tile_set,
		width=EXCLUDED.width, height=EXCLUDED.height,
		painted=EXCLUDED.painted, walls=EXCLUDED.walls;`
	sqlGetMap   = `SELECT id, name, path, tile_set, width, height, painted, walls FROM maps WHERE id=?;`
	sqlListMaps = `SELECT id, name, path, tile_set, width, height, painted, walls FROM maps ORDER BY name, id;`
	sqlDelMap   = `DELETE FROM maps WHERE id=?;`
)

// ErrNotFound is returned by Get for an unknown map id.
var ErrNotFound = errors.New("map not in catalog")

// Entry is one indexed map file.
type Entry struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Path    string `db:"path"`
	TileSet string `db:"tile_set"`
	Width   uint32 `db:"width"`
	Height  uint32 `db:"height"`
	Painted int    `db:"painted"`
	Walls   int    `db:"walls"`
}

// NewEntry summarises m as saved at path.
func NewEntry(m *tilemap.MapScreen, path string) Entry {
	w, h := m.Size()
	e := Entry{
		ID:      m.ID().String(),
		Name:    m.Name(),
		Path:    path,
		TileSet: m.TileSet(),
		Width:   w,
		Height:  h,
	}
	for _, t := range m.Painted() {
		e.Painted++
		if t.Tag == tilemap.TagWall {
			e.Walls++
		}
	}
	return e
}

// Catalog is a sqlite index of map files keyed by map id.
type Catalog struct {
	filename string
	db       *sqlx.DB
}

// Open the catalog database at dsn, creating it when it does not exist.
// ":memory:" gives a throwaway catalog.
func Open(dsn string) (*Catalog, error) {
	fname, err := homedir.Expand(dsn)
	if err != nil {
		return nil, fmt.Errorf("catalog: expand %s: %w", dsn, err)
	}
	db, err := sqlx.Open("sqlite3", fname)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", fname, err)
	}
	// one connection so ":memory:" sees a single database
	db.SetMaxOpenConns(1)

	c := &Catalog{filename: fname, db: db}
	if err := c.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: init %s: %w", fname, err)
	}
	return c, nil
}

// Filename returns the path to the database on disk.
func (c *Catalog) Filename() string {
	return c.filename
}

func (c *Catalog) init() error {
	createMaps := `CREATE TABLE IF NOT EXISTS maps(
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		path TEXT NOT NULL,
		tile_set TEXT NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		painted INTEGER NOT NULL DEFAULT 0,
		walls INTEGER NOT NULL DEFAULT 0
	    );`
	_, err := c.db.Exec(createMaps)
	return err
}

// Put records m as living at path, replacing any earlier entry for its id.
func (c *Catalog) Put(m *tilemap.MapScreen, path string) error {
	_, err := c.db.NamedExec(sqlPutMap, NewEntry(m, path))
	if err != nil {
		return fmt.Errorf("catalog: put %s: %w", path, err)
	}
	return nil
}

func (c *Catalog) Get(id string) (Entry, error) {
	var e Entry
	err := c.db.Get(&e, sqlGetMap, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("catalog: get %s: %w", id, err)
	}
	return e, nil
}

// List returns every entry ordered by map name.
func (c *Catalog) List() ([]Entry, error) {
	entries := []Entry{}
	if err := c.db.Select(&entries, sqlListMaps); err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}
	return entries, nil
}

func (c *Catalog) Delete(id string) error {
	_, err := c.db.Exec(sqlDelMap, id)
	if err != nil {
		return fmt.Errorf("catalog: delete %s: %w", id, err)
	}
	return nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}
