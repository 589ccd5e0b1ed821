package source

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/mailmerge/pkg/db"
	"github.com/dmitrymomot/mailmerge/pkg/recipient"
)

type options struct {
	fsys  fs.FS
	query string
	db    db.Config
}

// Option configures Load.
type Option func(*options)

// WithQuery sets the query for a database source.
func WithQuery(query string) Option {
	return func(o *options) {
		o.query = query
	}
}

// WithDatabase sets connection settings for a database source.
// The location passed to Load overrides cfg.ConnectionString.
func WithDatabase(cfg db.Config) Option {
	return func(o *options) {
		o.db = cfg
	}
}

// WithFileSystem reads file sources from fsys instead of the OS.
func WithFileSystem(fsys fs.FS) Option {
	return func(o *options) {
		o.fsys = fsys
	}
}

// IsDatabase reports whether location is a PostgreSQL connection URL.
func IsDatabase(location string) bool {
	return strings.HasPrefix(location, "postgres://") || strings.HasPrefix(location, "postgresql://")
}

// Load reads records from location. A .csv or .yaml/.yml path is read as a file;
// a postgres:// URL is queried with the query given by WithQuery.
func Load(ctx context.Context, location string, opts ...Option) ([]recipient.Fields, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if IsDatabase(location) {
		cfg := o.db
		cfg.ConnectionString = location
		return LoadPostgres(ctx, cfg, o.query)
	}

	var read func(io.Reader) ([]recipient.Fields, error)
	switch strings.ToLower(filepath.Ext(location)) {
	case ".csv":
		read = ReadCSV
	case ".yaml", ".yml":
		read = ReadYAML
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, location)
	}

	f, err := o.open(location)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", location, err)
	}
	defer f.Close()

	records, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	return records, nil
}

func (o *options) open(name string) (io.ReadCloser, error) {
	if o.fsys != nil {
		return o.fsys.Open(filepath.ToSlash(name))
	}
	return os.Open(name)
}
