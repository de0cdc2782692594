// Package source provides catalog sources and their factory.
//
// A source yields pre-validated video records; sources are applied in
// config order and merged into a single catalog. Duplicate IDs across
// sources are a load error.
package source

import (
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/vidbox/vidbox/internal/app/catalog"
	"github.com/vidbox/vidbox/internal/domain/video"
	"github.com/vidbox/vidbox/internal/infra/config"
)

// Source yields video records for catalog construction.
type Source interface {
	// Name returns the source name for logging.
	Name() string
	// Load returns the source's video records.
	Load() ([]video.Video, error)
}

// FromConfig creates sources from configuration entries.
func FromConfig(cfgs []config.SourceConfig) ([]Source, error) {
	if len(cfgs) == 0 {
		return nil, errors.New("no catalog sources configured")
	}

	sources := make([]Source, 0, len(cfgs))
	for i, scfg := range cfgs {
		var (
			src Source
			err error
		)
		switch scfg.Type {
		case "builtin":
			src = NewBuiltinSource()
		case "file":
			src, err = NewFileSource(scfg.Settings)
		default:
			return nil, errors.Newf("unsupported source type: %s (source index %d)", scfg.Type, i)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create source (index %d, type %s)", i, scfg.Type)
		}
		sources = append(sources, src)

		zlog.Info().Msgf("registered catalog source: index=%d type=%s", i+1, scfg.Type)
	}
	return sources, nil
}

// LoadCatalog loads all sources in order and builds the catalog.
func LoadCatalog(sources []Source) (*catalog.Catalog, error) {
	var videos []video.Video
	for _, src := range sources {
		loaded, err := src.Load()
		if err != nil {
			return nil, errors.Wrapf(err, "source %s", src.Name())
		}
		zlog.Debug().Msgf("source %s: loaded %d videos", src.Name(), len(loaded))
		videos = append(videos, loaded...)
	}

	cat, err := catalog.New(videos)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build catalog")
	}
	return cat, nil
}
