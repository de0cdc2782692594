// Package main provides the catalog inspection tool.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"

	"github.com/vidbox/vidbox/internal/app/catalog"
	"github.com/vidbox/vidbox/internal/infra/logger"
	"github.com/vidbox/vidbox/internal/infra/source"
)

var (
	app     = kingpin.New("vidctl", "vidbox catalog inspection tool")
	verbose = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()

	validateCmd  = app.Command("validate", "Validate a catalog file and exit")
	validatePath = validateCmd.Arg("file", "Catalog file path").Required().String()

	listCmd  = app.Command("list", "List the videos in a catalog file")
	listPath = listCmd.Arg("file", "Catalog file path").Required().String()

	statsCmd  = app.Command("stats", "Print catalog statistics")
	statsPath = statsCmd.Arg("file", "Catalog file path").Required().String()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	level := "warn"
	if *verbose {
		level = "debug"
	}
	if err := logger.Init(logger.Config{Output: "stderr", Level: level}); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	var err error
	switch command {
	case validateCmd.FullCommand():
		err = validate(*validatePath)
	case listCmd.FullCommand():
		err = list(*listPath)
	case statsCmd.FullCommand():
		err = stats(*statsPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// load builds a catalog from a single file source, which also enforces
// id uniqueness and record validation.
func load(path string) (*catalog.Catalog, error) {
	src, err := source.NewFileSource(map[string]any{"path": path})
	if err != nil {
		return nil, err
	}
	return source.LoadCatalog([]source.Source{src})
}

func validate(path string) error {
	cat, err := load(path)
	if err != nil {
		return err
	}
	fmt.Printf("OK: %d videos\n", cat.Len())
	return nil
}

func list(path string) error {
	cat, err := load(path)
	if err != nil {
		return err
	}
	videos := cat.AllVideos()
	sort.Slice(videos, func(i, j int) bool {
		return videos[i].Title < videos[j].Title
	})
	for _, v := range videos {
		flag := ""
		if v.Flag.IsFlagged() {
			reason := v.Flag.Reason()
			if reason == "" {
				reason = "Not supplied"
			}
			flag = fmt.Sprintf(" - FLAGGED (reason: %s)", reason)
		}
		fmt.Printf("%s (%s) [%s]%s\n", v.Title, v.ID, strings.Join(v.Tags, " "), flag)
	}
	return nil
}

func stats(path string) error {
	cat, err := load(path)
	if err != nil {
		return err
	}

	flagged := 0
	tagCounts := make(map[string]int)
	for _, v := range cat.AllVideos() {
		if v.Flag.IsFlagged() {
			flagged++
		}
		for _, tag := range v.Tags {
			tagCounts[strings.ToLower(tag)]++
		}
	}

	fmt.Printf("Videos:  %d\n", cat.Len())
	fmt.Printf("Flagged: %d\n", flagged)

	tags := make([]string, 0, len(tagCounts))
	for tag := range tagCounts {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if tagCounts[tags[i]] != tagCounts[tags[j]] {
			return tagCounts[tags[i]] > tagCounts[tags[j]]
		}
		return tags[i] < tags[j]
	})
	fmt.Printf("Tags:\n")
	for _, tag := range tags {
		fmt.Printf("  %-16s %d\n", tag, tagCounts[tag])
	}
	return nil
}
