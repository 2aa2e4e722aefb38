package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	LogLevel    string             `toml:"log_level"`
	Tools       ToolsConfig        `toml:"tools"`
	Fetch       FetchConfig        `toml:"fetch"`
	Target      TargetConfig       `toml:"target"`
	Subtitles   SubtitlesConfig    `toml:"subtitles"`
	Index       IndexConfig        `toml:"index"`
	Trailers    TrailersConfig     `toml:"trailers"`
	Collections []CollectionConfig `toml:"collections"`
}

// ToolsConfig names the external binaries the pipeline shells out to.
type ToolsConfig struct {
	Fetcher string `toml:"fetcher"`
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// FetchConfig controls the quality cascade and collection-level parallelism.
type FetchConfig struct {
	Profiles          []string `toml:"profiles"`
	RetryIntervalSecs int      `toml:"retry_interval_seconds"`
	CollectionWorkers int      `toml:"collection_workers"`
	FetchesPerMinute  int      `toml:"fetches_per_minute"`
}

// TargetConfig is the compliance profile output files are validated against.
type TargetConfig struct {
	VideoCodec string `toml:"video_codec"`
	AudioCodec string `toml:"audio_codec"`
	MaxHeight  int    `toml:"max_height"`
}

// SubtitlesConfig holds the ordered subtitle language preferences.
type SubtitlesConfig struct {
	Languages []string `toml:"languages"`
}

// IndexConfig contains media index database settings.
type IndexConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// TrailersConfig configures the batch trailer fetcher.
type TrailersConfig struct {
	MoviesDir string `toml:"movies_dir"`
	Workers   int    `toml:"workers"`
}

// CollectionConfig maps one remote playlist to one local season directory.
type CollectionConfig struct {
	URL          string `toml:"url"`
	Name         string `toml:"name"`
	Season       string `toml:"season"`
	Directory    string `toml:"directory"`
	LogDirectory string `toml:"log_directory"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the configuration for fields the pipeline cannot run without.
func (c *Config) Validate() error {
	if len(c.Fetch.Profiles) == 0 {
		return fmt.Errorf("%w: fetch.profiles must list at least one quality profile", ErrInvalidConfig)
	}
	if c.Target.VideoCodec == "" || c.Target.AudioCodec == "" || c.Target.MaxHeight <= 0 {
		return fmt.Errorf("%w: target profile requires video_codec, audio_codec and max_height", ErrInvalidConfig)
	}
	for i, coll := range c.Collections {
		if coll.URL == "" || coll.Name == "" || coll.Season == "" || coll.Directory == "" {
			return fmt.Errorf("%w: collections[%d] requires url, name, season and directory", ErrInvalidConfig, i)
		}
	}
	return nil
}

// Collection returns the collection whose name matches, or an error when absent.
func (c *Config) Collection(name string) (*CollectionConfig, error) {
	for i := range c.Collections {
		if c.Collections[i].Name == name {
			return &c.Collections[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
}
