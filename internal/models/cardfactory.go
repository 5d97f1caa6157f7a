package models

import (
	"fmt"

	"go.uber.org/zap"

	apperrors "github.com/tatianab/eldritch-pursuit/internal/errors"
	"github.com/tatianab/eldritch-pursuit/internal/logging"
)

// loader holds the records of one card category between Load and the per-game
// instance construction.
type loader struct {
	category string
	src      Source
	builder  *Builder
	logger   *zap.Logger

	records map[string]Record
	order   []string
	loaded  bool
}

func newLoader(category string, src Source, builder *Builder, logger *zap.Logger) loader {
	logger = logging.OrNop(logger)
	if builder == nil {
		builder = NewBuilder(nil, logger)
	}
	return loader{
		category: category,
		src:      src,
		builder:  builder,
		logger:   logger.With(zap.String("category", category)),
		records:  map[string]Record{},
	}
}

// load reads the category and validates every record with check, which is
// usually the card constructor itself. Records failing check are skipped.
func (l *loader) load(check func(Record) error) error {
	l.records = map[string]Record{}
	l.order = nil
	l.loaded = true
	if l.src == nil {
		return nil
	}
	recs, err := l.src.Load(l.category)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeDataSource, fmt.Sprintf("load %s", l.category), err)
	}
	for i, r := range recs {
		id := r.String("id")
		if id == "" {
			l.logger.Warn("skipping record without id", zap.Int("index", i))
			continue
		}
		if _, dup := l.records[id]; dup {
			l.logger.Warn("skipping duplicate record", zap.String("id", id))
			continue
		}
		if err := check(r); err != nil {
			l.logger.Warn("skipping malformed record", zap.String("id", id), zap.Error(err))
			continue
		}
		l.records[id] = r
		l.order = append(l.order, id)
	}
	l.logger.Debug("loaded records", zap.Int("count", len(l.order)), zap.Int("skipped", len(recs)-len(l.order)))
	return nil
}

func (l *loader) record(id string) (Record, error) {
	if !l.loaded {
		return nil, apperrors.New(apperrors.CodeInvariantViolation, l.category+" factory used before Load")
	}
	r, ok := l.records[id]
	if !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeMalformedData,
			fmt.Sprintf("no %s record %q", l.category, id), map[string]string{"id": id})
	}
	return r, nil
}

// IDs returns the loaded record ids in data order.
func (l *loader) IDs() []string { return append([]string(nil), l.order...) }

// Has reports whether a record with id was loaded.
func (l *loader) Has(id string) bool {
	_, ok := l.records[id]
	return ok
}

// header reads the shared card header fields.
func (l *loader) header(r Record, name string, t CardType) Card {
	exp, ok := ParseExpansion(r.String("expansion"))
	if !ok {
		l.logger.Warn("unknown expansion, using core",
			zap.String("id", r.String("id")), zap.String("expansion", r.String("expansion")))
	}
	size := SizeStandard
	if r.String("size") == "mini" {
		size = SizeMini
	}
	return Card{Name: name, Type: t, Size: size, DoubleSided: r.Bool("double_sided", false), Expansion: exp}
}

// copies returns how many physical copies of a record go in a deck.
func copies(r Record) int {
	if n := r.Int("copies", 1); n > 0 {
		return n
	}
	return 1
}
