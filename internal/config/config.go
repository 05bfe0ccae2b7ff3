package config

// Config represents the full application configuration.
type Config struct {
	Git           GitConfig           `yaml:"git"`
	Log           LogConfig           `yaml:"log"`
	Filter        FilterConfig        `yaml:"filter"`
	Store         StoreConfig         `yaml:"store"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// GitConfig locates the repository whose staging area is inspected.
type GitConfig struct {
	RepositoryDir string `yaml:"repositoryDir"`
}

// LogConfig locates the captured pre-commit output.
type LogConfig struct {
	Path string `yaml:"path"`
}

// FilterConfig tunes log-line attribution.
type FilterConfig struct {
	// SourceRoot is the path marker used to normalise tool-reported paths
	// back to repository-relative keys (e.g. "src/"). Structured log lines
	// whose path lacks the marker cannot be attributed and are skipped.
	SourceRoot string `yaml:"sourceRoot"`
}

// StoreConfig configures the run-history persistence layer.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ObservabilityConfig configures pipeline event logging.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the structured event logger.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`  // debug, info, error
	Format  string `yaml:"format"` // json, human
}

// Merge combines multiple configuration instances, prioritising the latter ones.
func Merge(configs ...Config) Config {
	result := Config{}
	for _, cfg := range configs {
		result = merge(result, cfg)
	}
	return result
}

func merge(base, overlay Config) Config {
	result := base
	result.Git = chooseGit(base.Git, overlay.Git)
	result.Log = chooseLog(base.Log, overlay.Log)
	result.Filter = chooseFilter(base.Filter, overlay.Filter)
	result.Store = chooseStore(base.Store, overlay.Store)
	result.Observability = chooseObservability(base.Observability, overlay.Observability)
	return result
}

func chooseGit(base, overlay GitConfig) GitConfig {
	if overlay.RepositoryDir != "" {
		return overlay
	}
	return base
}

func chooseLog(base, overlay LogConfig) LogConfig {
	if overlay.Path != "" {
		return overlay
	}
	return base
}

func chooseFilter(base, overlay FilterConfig) FilterConfig {
	if overlay.SourceRoot != "" {
		return overlay
	}
	return base
}

func chooseStore(base, overlay StoreConfig) StoreConfig {
	if overlay.Enabled || overlay.Path != "" {
		return overlay
	}
	return base
}

func chooseObservability(base, overlay ObservabilityConfig) ObservabilityConfig {
	result := base
	if overlay.Logging.Enabled || overlay.Logging.Level != "" || overlay.Logging.Format != "" {
		result.Logging = overlay.Logging
	}
	return result
}
