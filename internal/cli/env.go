package cli

import (
	"fmt"
	"io"
	"os"

	"bennypowers.dev/sass2ts/internal/config"
	"bennypowers.dev/sass2ts/internal/loader"
	"bennypowers.dev/sass2ts/internal/log"
	"bennypowers.dev/sass2ts/internal/pipeline"
)

// stdinPath reads the source from standard input
const stdinPath = "-"

// Env is what every command runs against
type Env struct {
	Streams
	Config     *config.Config
	ConfigPath string
}

// Pipeline builds the pipeline for the loaded configuration
func (e *Env) Pipeline() *pipeline.Pipeline {
	return pipeline.New(e.Config, log.Named("pipeline"))
}

// Source returns the concatenated Sass text of paths. Directories are
// expanded with the configured include patterns. No paths means the
// working directory.
func (e *Env) Source(paths []string) (string, error) {
	if len(paths) == 1 && paths[0] == stdinPath {
		data, err := io.ReadAll(e.In)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return "", err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		found, err := loader.Discover(p, e.Config.Include)
		if err != nil {
			return "", err
		}
		if len(found) == 0 {
			log.Warn("no Sass files under %s", p)
		}
		files = append(files, found...)
	}

	l := loader.New(
		loader.WithIncludePaths(e.Config.IncludePaths...),
		loader.WithFollowImports(e.Config.FollowImports),
		loader.WithLogger(log.Named("loader")),
	)
	bundle, err := l.Load(files...)
	if err != nil {
		return "", err
	}
	log.Info("loaded %d file(s)", len(bundle.Files))
	return bundle.Text, nil
}
