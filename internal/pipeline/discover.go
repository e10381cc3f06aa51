package pipeline

import (
	"github.com/backmassage/seqpath/internal/config"
	"github.com/backmassage/seqpath/internal/logging"
	"github.com/backmassage/seqpath/internal/scan"
)

// ScanOptions maps the scanner settings of cfg onto scan.Options.
func ScanOptions(cfg *config.Config) scan.Options {
	return scan.Options{
		Pattern:        cfg.Pattern,
		MaxDepth:       cfg.MaxDepth,
		ExcludeNames:   cfg.ExcludeNames,
		ExcludePattern: cfg.ExcludePattern,
		ExcludeGlobs:   cfg.ExcludeGlobs,
	}
}

// Discover walks cfg.Root and returns the matching file paths in walk order.
// Unreadable directories are logged and skipped; only a bad root or bad
// filter settings fail.
func Discover(cfg *config.Config, log *logging.Logger) ([]string, error) {
	seq, err := scan.Scan(cfg.Root, ScanOptions(cfg))
	if err != nil {
		return nil, err
	}
	var files []string
	for e, err := range seq {
		if err != nil {
			log.Warn("Skipping unreadable directory: %v", err)
			continue
		}
		files = append(files, e.Path())
	}
	return files, nil
}
