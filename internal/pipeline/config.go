package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	huffman "github.com/chronos-tachyon/texthuff"
)

// Config holds the directory layout and text encoding for a batch run.
type Config struct {
	// SourceDir is scanned recursively for files ending in SourceExt.
	SourceDir string

	// CompressedDir receives one packed stream per source file, at the
	// same relative path with SourceExt replaced by CompressedExt.
	CompressedDir string

	// RecoveredDir receives one text file per packed stream.
	RecoveredDir string

	// TreePath is where the Huffman tree is saved and loaded.
	TreePath string

	// Encoding names the text encoding of every source and recovered
	// file, e.g. "utf-8" or "utf-16le".
	Encoding string

	SourceExt     string
	CompressedExt string

	// KeepGoing makes a failed file get logged and skipped instead of
	// aborting the batch.
	KeepGoing bool
}

// DefaultConfig returns the default Config.
func DefaultConfig() Config {
	return Config{
		SourceDir:     ".",
		CompressedDir: "compressed",
		RecoveredDir:  "recovered",
		TreePath:      "huffman_tree.bin",
		Encoding:      huffman.DefaultEncoding,
		SourceExt:     ".txt",
		CompressedExt: ".bin",
	}
}

// Validate checks that the Config is usable.
func (cfg Config) Validate() error {
	var errs []string
	if cfg.SourceDir == "" {
		errs = append(errs, "source directory is empty")
	}
	if cfg.CompressedDir == "" {
		errs = append(errs, "compressed directory is empty")
	}
	if cfg.RecoveredDir == "" {
		errs = append(errs, "recovered directory is empty")
	}
	if cfg.TreePath == "" {
		errs = append(errs, "tree path is empty")
	}
	if !strings.HasPrefix(cfg.SourceExt, ".") {
		errs = append(errs, fmt.Sprintf("source extension %q must start with '.'", cfg.SourceExt))
	}
	if !strings.HasPrefix(cfg.CompressedExt, ".") {
		errs = append(errs, fmt.Sprintf("compressed extension %q must start with '.'", cfg.CompressedExt))
	}
	if cfg.SourceExt == cfg.CompressedExt {
		errs = append(errs, "source and compressed extensions must differ")
	}
	if _, err := huffman.LookupEncoding(cfg.Encoding); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) != 0 {
		return errors.New("invalid config: " + strings.Join(errs, "; "))
	}
	return nil
}

func swapExt(path, from, to string) string {
	return strings.TrimSuffix(path, from) + to
}

func relTarget(root, path, dir, from, to string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, swapExt(rel, from, to)), nil
}
