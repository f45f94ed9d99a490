package loader

import "log/slog"

// VisitFunc receives the outcome for one program: its status when it parsed,
// otherwise the error that stopped it from loading.
type VisitFunc func(path string, fs *FileStatus, err error) error

// LoadFilesAndValidate loads and checks each path in order, handing every
// outcome to visit. It returns how many programs failed to load or carry
// diagnostics. An error from visit stops the run and is returned as is.
func (l *Loader) LoadFilesAndValidate(visit VisitFunc, paths ...string) (failed int, err error) {
	logger := l.logger()
	for _, path := range paths {
		fs, loadErr := l.LoadAndValidate(path)
		switch {
		case loadErr != nil:
			failed++
			logger.Debug("program not loaded", "file", path, "error", loadErr)
		case fs.HasErrors():
			failed++
			logger.Debug("program has semantic errors", "file", path, "errors", len(fs.Errors()), "dropped", fs.Dropped())
		default:
			logger.Debug("program validated", "file", path, "symbols", len(fs.Symbols), "at", fs.LastValidated)
		}
		if visit == nil {
			continue
		}
		if err := visit(path, fs, loadErr); err != nil {
			return failed, err
		}
	}
	return failed, nil
}

func (l *Loader) logger() *slog.Logger {
	if l.opts.Logger != nil {
		return l.opts.Logger
	}
	return slog.Default()
}
