// Package files locates the source file the dashboard reads.
//
// Discovery lists candidate files in a directory and GetLatestFile picks
// the newest one. SourceResolver combines them with the configured mode:
//
//	resolver, err := files.NewSourceResolver("output", files.ModeLatest, "", logger)
//	path, err := resolver.Resolve()
//	if errors.Is(err, fs.ErrNotExist) {
//	    // nothing to serve yet
//	}
package files
