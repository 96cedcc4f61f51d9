package config

import (
	"bytes"
	"errors"
	iofs "io/fs"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"go.trai.ch/sizemap/internal/adapters/fs"
	"go.trai.ch/sizemap/internal/core/domain"
	"go.trai.ch/zerr"
)

// Environment variables read by LoadEnv.
const (
	EnvSizeKind = "SIZEMAP_SIZE_KIND"
	EnvManifest = "SIZEMAP_MANIFEST"
	EnvLogJSON  = "SIZEMAP_LOG_JSON"
)

// Env holds settings taken from the environment. Empty fields were not set.
type Env struct {
	SizeKind domain.SizeKind
	Manifest string
	LogJSON  bool
}

// LoadEnv reads dir/.env when it exists. Variables reported by lookup, usually
// os.LookupEnv, take precedence over the file.
func LoadEnv(fsys fs.FileSystem, dir string, lookup func(string) (string, bool)) (Env, error) {
	path := filepath.Join(dir, domain.EnvFileName)

	file := map[string]string{}
	data, err := fsys.ReadFile(path)
	switch {
	case err == nil:
		if file, err = godotenv.Parse(bytes.NewReader(data)); err != nil {
			return Env{}, zerr.With(zerr.Wrap(err, domain.ErrEnvParseFailed.Error()), "path", path)
		}
	case !errors.Is(err, iofs.ErrNotExist):
		return Env{}, zerr.With(zerr.Wrap(err, domain.ErrEnvParseFailed.Error()), "path", path)
	}

	get := func(key string) string {
		if v, ok := lookup(key); ok {
			return v
		}
		return file[key]
	}

	var env Env
	if v := get(EnvSizeKind); v != "" {
		kind, err := ParseSizeKind(v)
		if err != nil {
			return Env{}, zerr.With(err, "variable", EnvSizeKind)
		}
		env.SizeKind = kind
	}
	if v := get(EnvManifest); v != "" {
		if !filepath.IsAbs(v) {
			v = filepath.Join(dir, v)
		}
		env.Manifest = filepath.Clean(v)
	}
	if v := get(EnvLogJSON); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Env{}, zerr.With(zerr.Wrap(err, domain.ErrEnvParseFailed.Error()), "variable", EnvLogJSON)
		}
		env.LogJSON = enabled
	}
	return env, nil
}
