package files

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
)

// Source selection modes.
const (
	// ModeFixed always reads <data dir>/<file name>.
	ModeFixed = "fixed"
	// ModeLatest reads the most recently modified .csv in the data dir.
	ModeLatest = "latest"
)

// ErrNoSourceFile is returned in latest mode when the data directory holds
// no CSV file. It matches fs.ErrNotExist.
var ErrNoSourceFile = fmt.Errorf("no csv file in data directory: %w", fs.ErrNotExist)

// SourceResolver decides which file a pipeline run reads. It is consulted on
// every request, so a newly dropped file is picked up without a restart.
type SourceResolver struct {
	dataDir   string
	mode      string
	fileName  string
	discovery *Discovery
	logger    *slog.Logger
}

// NewSourceResolver creates a resolver. Unknown modes are rejected.
func NewSourceResolver(dataDir, mode, fileName string, logger *slog.Logger) (*SourceResolver, error) {
	if mode != ModeFixed && mode != ModeLatest {
		return nil, fmt.Errorf("unknown source mode %q", mode)
	}
	if mode == ModeFixed && fileName == "" {
		return nil, errors.New("fixed source mode requires a file name")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SourceResolver{
		dataDir:   dataDir,
		mode:      mode,
		fileName:  fileName,
		discovery: NewDiscovery(""),
		logger:    logger.With(slog.String("component", "source_resolver")),
	}, nil
}

// Mode returns the configured selection mode.
func (r *SourceResolver) Mode() string { return r.mode }

// Resolve returns the absolute path of the current source file. Every
// not-found condition matches fs.ErrNotExist.
func (r *SourceResolver) Resolve() (string, error) {
	var (
		path string
		err  error
	)
	switch r.mode {
	case ModeFixed:
		path, err = r.resolveFixed()
	default:
		path, err = r.resolveLatest()
	}
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve source path %s: %w", path, err)
	}

	r.logger.Debug("source resolved",
		slog.String("mode", r.mode),
		slog.String("path", abs))
	return abs, nil
}

func (r *SourceResolver) resolveFixed() (string, error) {
	path := filepath.Join(r.dataDir, r.fileName)

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("source file %s: %w", path, notExist(err))
	}
	if info.IsDir() {
		return "", fmt.Errorf("source file %s is a directory: %w", path, fs.ErrNotExist)
	}
	return path, nil
}

func (r *SourceResolver) resolveLatest() (string, error) {
	candidates, err := r.discovery.FindCSVFiles(r.dataDir)
	if err != nil {
		return "", notExist(err)
	}

	latest, ok := GetLatestFile(candidates)
	if !ok {
		return "", fmt.Errorf("%s: %w", r.dataDir, ErrNoSourceFile)
	}
	return latest.Path, nil
}

// notExist folds ENOTDIR, returned when the data dir is a regular file, into
// fs.ErrNotExist so it reads as a missing source.
func notExist(err error) error {
	if errors.Is(err, syscall.ENOTDIR) && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", fs.ErrNotExist, err)
	}
	return err
}
