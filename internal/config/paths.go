package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// resolvePaths makes every configured path absolute, anchored at
// Paths.BaseDir (or the working directory when unset).
func (c *Config) resolvePaths() error {
	base := c.Paths.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		base = wd
	}
	base, err := filepath.Abs(base)
	if err != nil {
		return fmt.Errorf("failed to resolve base directory: %w", err)
	}

	c.Paths.BaseDir = base
	c.Source.DataDir = ResolvePath(base, c.Source.DataDir)
	c.Paths.FrontendFile = ResolvePath(base, c.Paths.FrontendFile)
	if c.Logging.FilePath != "" {
		c.Logging.FilePath = ResolvePath(base, c.Logging.FilePath)
	}
	return nil
}

// ResolvePath returns p unchanged when absolute, otherwise joined to base.
func ResolvePath(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// LogPathResolution logs the resolved paths and flags the ones that do not
// exist yet. Missing paths are not an error at startup: the data directory
// and front-end file may appear later.
func (c *Config) LogPathResolution(logger *slog.Logger) {
	logger.Info("Resolved application paths",
		slog.String("base_dir", c.Paths.BaseDir),
		slog.String("data_dir", c.Source.DataDir),
		slog.String("source_mode", c.Source.Mode),
		slog.String("frontend_file", c.Paths.FrontendFile))

	if !DirExists(c.Source.DataDir) {
		logger.Warn("Data directory does not exist yet",
			slog.String("path", c.Source.DataDir))
	}
	if !FileExists(c.Paths.FrontendFile) {
		logger.Warn("Front-end file not found; GET / will fail until it exists",
			slog.String("path", c.Paths.FrontendFile))
	}
}
