package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/hupe1980/vecmath"
	"github.com/hupe1980/vecmath/archive"
	"github.com/hupe1980/vecmath/blobstore"
	"github.com/hupe1980/vecmath/blobstore/minio"
	"github.com/hupe1980/vecmath/blobstore/s3"
	"github.com/hupe1980/vecmath/codec"
	"gopkg.in/yaml.v3"
)

// Config is the vectool configuration file.
type Config struct {
	Store       StoreConfig     `yaml:"store"`
	Codec       string          `yaml:"codec"`
	CacheSize   int             `yaml:"cache_size"`
	Concurrency int             `yaml:"concurrency"`
	ReadLimit   ReadLimitConfig `yaml:"read_limit"`
	LogLevel    string          `yaml:"log_level"`
}

// StoreConfig selects and configures the blob store backend.
type StoreConfig struct {
	// Backend is one of local, memory, s3 or minio.
	Backend string `yaml:"backend"`
	// Path is the root directory of the local backend.
	Path string `yaml:"path"`

	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Secure    bool   `yaml:"secure"`

	// BlockCache is the number of blocks kept by a CachingStore in front of
	// the backend. 0 disables it.
	BlockCache int   `yaml:"block_cache"`
	BlockSize  int64 `yaml:"block_size"`
}

// ReadLimitConfig throttles archive reads.
type ReadLimitConfig struct {
	BytesPerSec float64 `yaml:"bytes_per_sec"`
	Burst       int     `yaml:"burst"`
}

func defaultConfig() Config {
	return Config{
		Store: StoreConfig{
			Backend: "local",
			Path:    ".vectool",
		},
		Codec:       codec.Default.Name(),
		CacheSize:   archive.DefaultCacheSize,
		Concurrency: archive.DefaultConcurrency,
		LogLevel:    "warn",
	}
}

// loadConfig reads path on top of the defaults. A missing file is not an error
// unless required is set. VECTOOL_* environment variables override the file.
func loadConfig(path string, required bool) (Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist) && !required:
		case err != nil:
			return cfg, err
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	applyEnvironment(&cfg)
	return cfg, cfg.validate()
}

func applyEnvironment(cfg *Config) {
	if v := os.Getenv("VECTOOL_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("VECTOOL_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("VECTOOL_BUCKET"); v != "" {
		cfg.Store.Bucket = v
	}
	if v := os.Getenv("VECTOOL_CODEC"); v != "" {
		cfg.Codec = v
	}
	if v := os.Getenv("VECTOOL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func (c Config) validate() error {
	if _, ok := codec.ByName(c.Codec); !ok {
		return fmt.Errorf("unknown codec %q (want one of %s)", c.Codec, strings.Join(codec.Names(), ", "))
	}
	switch c.Store.Backend {
	case "local", "memory":
	case "s3", "minio":
		if c.Store.Bucket == "" {
			return fmt.Errorf("backend %s requires a bucket", c.Store.Backend)
		}
		if c.Store.Backend == "minio" && c.Store.Endpoint == "" {
			return errors.New("backend minio requires an endpoint")
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Store.Backend)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

func (c Config) logger() *vecmath.Logger {
	var level slog.Level
	_ = level.UnmarshalText([]byte(c.LogLevel))
	return vecmath.NewTextLogger(level)
}

func openStore(ctx context.Context, cfg StoreConfig) (blobstore.BlobStore, error) {
	var (
		store blobstore.BlobStore
		err   error
	)

	switch cfg.Backend {
	case "local":
		store = blobstore.NewLocalStore(cfg.Path)
	case "memory":
		store = blobstore.NewMemoryStore()
	case "s3":
		opts := []s3.Option{s3.WithPrefix(cfg.Prefix)}
		if cfg.Region != "" {
			opts = append(opts, s3.WithRegion(cfg.Region))
		}
		if cfg.Endpoint != "" {
			opts = append(opts, s3.WithEndpoint(cfg.Endpoint))
		}
		store, err = s3.New(ctx, cfg.Bucket, opts...)
	case "minio":
		store, err = minio.Connect(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey, cfg.Secure, cfg.Bucket, cfg.Prefix)
	default:
		err = fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	if cfg.BlockCache > 0 {
		return blobstore.NewCachingStore(store, cfg.BlockCache, cfg.BlockSize)
	}
	return store, nil
}

func openArchive(ctx context.Context, cfg Config) (*archive.Archive, error) {
	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	c, _ := codec.ByName(cfg.Codec)
	opts := []archive.Option{
		archive.WithCodec(c),
		archive.WithCacheSize(cfg.CacheSize),
		archive.WithConcurrency(cfg.Concurrency),
		archive.WithLogger(cfg.logger()),
	}
	if cfg.ReadLimit.BytesPerSec > 0 {
		opts = append(opts, archive.WithReadLimit(cfg.ReadLimit.BytesPerSec, cfg.ReadLimit.Burst))
	}
	return archive.New(store, opts...)
}
