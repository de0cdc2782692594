package source

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/vidbox/vidbox/internal/domain/video"
)

// FileSourceConfig holds the file source settings.
type FileSourceConfig struct {
	Path string `yaml:"path" mapstructure:"path" validate:"required"`
}

// FileSource loads videos from a YAML catalog file.
type FileSource struct {
	config *FileSourceConfig
}

// catalogFile is the on-disk catalog format.
type catalogFile struct {
	Videos []videoRecord `yaml:"videos"`
}

type videoRecord struct {
	ID         string   `yaml:"id" validate:"required"`
	Title      string   `yaml:"title" validate:"required"`
	Tags       []string `yaml:"tags"`
	Flagged    bool     `yaml:"flagged"`
	FlagReason string   `yaml:"flag_reason"`
}

// NewFileSource creates a file source from raw settings.
func NewFileSource(settings map[string]any) (*FileSource, error) {
	var cfg FileSourceConfig
	if err := mapstructure.Decode(settings, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode settings")
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "validation failed")
	}
	return &FileSource{config: &cfg}, nil
}

// Name returns the source name.
func (s *FileSource) Name() string {
	return "file"
}

// Load parses the catalog file into video records.
func (s *FileSource) Load() ([]video.Video, error) {
	data, err := os.ReadFile(s.config.Path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read catalog file")
	}
	return ParseCatalog(data)
}

// ParseCatalog parses YAML catalog data into video records.
// Records are validated field by field; a flag_reason without flagged=true
// is rejected so "not flagged" never carries a stray reason.
func ParseCatalog(data []byte) ([]video.Video, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse catalog file")
	}

	validate := validator.New()
	videos := make([]video.Video, 0, len(file.Videos))
	for i, rec := range file.Videos {
		if err := validate.Struct(rec); err != nil {
			return nil, errors.Wrapf(err, "invalid video record (index %d)", i)
		}
		if rec.FlagReason != "" && !rec.Flagged {
			return nil, errors.Newf("video record %q has flag_reason but is not flagged", rec.ID)
		}
		flag := video.Unflagged()
		if rec.Flagged {
			flag = video.FlaggedWith(rec.FlagReason)
		}
		videos = append(videos, video.Video{
			ID:    rec.ID,
			Title: rec.Title,
			Tags:  rec.Tags,
			Flag:  flag,
		})
	}
	return videos, nil
}
