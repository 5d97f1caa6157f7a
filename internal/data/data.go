// Package data supplies card records from YAML files, one file per category.
package data

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/tatianab/eldritch-pursuit/internal/errors"
	"github.com/tatianab/eldritch-pursuit/internal/models"
)

//go:embed cards
var embedded embed.FS

// FS loads records from a file tree. Category "encounters/general" is read
// from encounters/general.yaml.
type FS struct {
	fsys fs.FS
}

// New returns a source over fsys.
func New(fsys fs.FS) *FS {
	return &FS{fsys: fsys}
}

// Default returns the source over the card data built into the binary.
func Default() *FS {
	sub, err := fs.Sub(embedded, "cards")
	if err != nil {
		panic(err)
	}
	return New(sub)
}

// Dir returns a source over a directory on disk.
func Dir(dir string) *FS {
	return New(os.DirFS(dir))
}

// Open picks the directory when dir is set and the embedded data otherwise.
func Open(dir string) *FS {
	if dir == "" {
		return Default()
	}
	return Dir(dir)
}

// Load implements models.Source. A category without a file yields no records.
func (f *FS) Load(category string) ([]models.Record, error) {
	var (
		raw []byte
		err error
	)
	for _, ext := range []string{".yaml", ".yml"} {
		raw, err = fs.ReadFile(f.fsys, category+ext)
		if err == nil || !errors.Is(err, fs.ErrNotExist) {
			break
		}
	}
	if errors.Is(err, fs.ErrNotExist) {
		return []models.Record{}, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDataSource, fmt.Sprintf("read %s", category), err)
	}

	var docs []map[string]any
	if err := yaml.Unmarshal(raw, &docs); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDataSource, fmt.Sprintf("parse %s", category), err)
	}
	records := make([]models.Record, 0, len(docs))
	for _, d := range docs {
		if d != nil {
			records = append(records, d)
		}
	}
	return records, nil
}

// Categories lists every category present, sorted.
func (f *FS) Categories() ([]string, error) {
	var out []string
	err := fs.WalkDir(f.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		ext := path.Ext(p)
		if d.IsDir() || (ext != ".yaml" && ext != ".yml") {
			return nil
		}
		out = append(out, strings.TrimSuffix(p, ext))
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDataSource, "list categories", err)
	}
	sort.Strings(out)
	return out, nil
}
