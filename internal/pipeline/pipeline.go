// Package pipeline drives a batch run: count a corpus, build the tree,
// compress every text file, persist the tree, and later recover the text
// from the packed streams.
package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"

	huffman "github.com/chronos-tachyon/texthuff"
	"github.com/chronos-tachyon/texthuff/internal/logger"
)

// Pipeline runs batch compression and recovery for one Config.
type Pipeline struct {
	cfg    Config
	enc    encoding.Encoding
	logger logger.Logger
}

// FileStats describes one file processed by Compress or Decompress.
type FileStats struct {
	Source   string
	Target   string
	InBytes  int64
	OutBytes int64
}

// Failure records a file that could not be processed.
type Failure struct {
	Path string
	Err  error
}

// Report summarizes a batch.
type Report struct {
	Files  []FileStats
	Failed []Failure
}

// InBytes returns the total input size of all successful files.
func (r Report) InBytes() int64 {
	var sum int64
	for _, stats := range r.Files {
		sum += stats.InBytes
	}
	return sum
}

// OutBytes returns the total output size of all successful files.
func (r Report) OutBytes() int64 {
	var sum int64
	for _, stats := range r.Files {
		sum += stats.OutBytes
	}
	return sum
}

// New validates cfg and returns a Pipeline.
func New(cfg Config, l logger.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	enc, err := huffman.LookupEncoding(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	if l == nil {
		l = logger.Discard()
	}
	return &Pipeline{cfg: cfg, enc: enc, logger: l}, nil
}

// SourceFiles lists every source file under SourceDir in lexical order.
// The compressed and recovered directories are skipped if they live inside
// SourceDir.
func (p *Pipeline) SourceFiles() ([]string, error) {
	return p.walk(p.cfg.SourceDir, p.cfg.SourceExt, p.cfg.CompressedDir, p.cfg.RecoveredDir)
}

// CompressedFiles lists every packed stream under CompressedDir in lexical
// order.
func (p *Pipeline) CompressedFiles() ([]string, error) {
	return p.walk(p.cfg.CompressedDir, p.cfg.CompressedExt)
}

func (p *Pipeline) walk(root, ext string, skipDirs ...string) ([]string, error) {
	skip := make(map[string]struct{}, len(skipDirs))
	for _, dir := range skipDirs {
		if abs, err := filepath.Abs(dir); err == nil {
			skip[abs] = struct{}{}
		}
	}

	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			if abs, err := filepath.Abs(path); err == nil {
				if _, found := skip[abs]; found {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if d.Type().IsRegular() && strings.HasSuffix(path, ext) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, &huffman.IOError{Op: "walk", Path: root, Err: err}
	}
	return out, nil
}

// Count aggregates the frequencies of paths.  A file that fails to read or
// decode contributes nothing; with KeepGoing it is reported and skipped,
// otherwise the error is returned.
func (p *Pipeline) Count(paths []string) (huffman.FrequencyTable, []Failure, error) {
	c := huffman.NewCounter()
	var failed []Failure
	for _, path := range paths {
		if err := c.CountFile(path, p.enc); err != nil {
			if !p.cfg.KeepGoing {
				return nil, nil, err
			}
			p.logger.Errorf("skipping %s: %v", path, err)
			failed = append(failed, Failure{Path: path, Err: err})
			continue
		}
		p.logger.Debugf("counted %s", path)
	}
	p.logger.Infof("counted %d files, %d lines, %d distinct symbols", c.Files(), c.Lines(), len(c.Table()))
	return c.Table(), failed, nil
}

// buildTree counts paths and builds their tree.  It also returns the
// paths that were counted successfully, which are the only ones the tree
// is guaranteed to cover.
func (p *Pipeline) buildTree(paths []string) (*huffman.Tree, []string, []Failure, error) {
	freq, failed, err := p.Count(paths)
	if err != nil {
		return nil, nil, nil, err
	}
	tree, err := huffman.Build(freq)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("building tree from %s: %w", p.cfg.SourceDir, err)
	}

	skip := make(map[string]struct{}, len(failed))
	for _, f := range failed {
		skip[f.Path] = struct{}{}
	}
	counted := make([]string, 0, len(paths)-len(failed))
	for _, path := range paths {
		if _, found := skip[path]; !found {
			counted = append(counted, path)
		}
	}
	return tree, counted, failed, nil
}

// CompressFile encodes the text file src with tree and writes the packed
// stream to dst.
func (p *Pipeline) CompressFile(tree *huffman.Tree, src, dst string) (FileStats, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return FileStats{}, &huffman.IOError{Op: "read", Path: src, Err: err}
	}
	text, err := huffman.DecodeText(data, p.enc)
	if err != nil {
		return FileStats{}, &huffman.IOError{Op: "decode", Path: src, Err: err}
	}
	bits, err := tree.EncodeText(text)
	if err != nil {
		return FileStats{}, fmt.Errorf("encoding %s: %w", src, err)
	}
	packed := huffman.Pack(bits)
	if err := writeFile(dst, packed); err != nil {
		return FileStats{}, err
	}
	return FileStats{Source: src, Target: dst, InBytes: int64(len(data)), OutBytes: int64(len(packed))}, nil
}

// DecompressFile unpacks and decodes src with tree and writes the
// recovered text to dst.
func (p *Pipeline) DecompressFile(tree *huffman.Tree, src, dst string) (FileStats, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return FileStats{}, &huffman.IOError{Op: "read", Path: src, Err: err}
	}
	bits, err := huffman.Unpack(data)
	if err != nil {
		return FileStats{}, fmt.Errorf("unpacking %s: %w", src, err)
	}
	text, err := tree.DecodeText(bits)
	if err != nil {
		return FileStats{}, fmt.Errorf("decoding %s: %w", src, err)
	}
	raw, err := huffman.EncodeText(text, p.enc)
	if err != nil {
		return FileStats{}, &huffman.IOError{Op: "encode", Path: dst, Err: err}
	}
	if err := writeFile(dst, raw); err != nil {
		return FileStats{}, err
	}
	return FileStats{Source: src, Target: dst, InBytes: int64(len(data)), OutBytes: int64(len(raw))}, nil
}

// Compress compresses every path into CompressedDir, mirroring its
// location relative to SourceDir.
func (p *Pipeline) Compress(tree *huffman.Tree, paths []string) (Report, error) {
	return p.batch(paths, p.cfg.SourceDir, p.cfg.CompressedDir, p.cfg.SourceExt, p.cfg.CompressedExt, tree, p.CompressFile)
}

// Decompress recovers every packed stream under CompressedDir into
// RecoveredDir.
func (p *Pipeline) Decompress(tree *huffman.Tree) (Report, error) {
	paths, err := p.CompressedFiles()
	if err != nil {
		return Report{}, err
	}
	return p.batch(paths, p.cfg.CompressedDir, p.cfg.RecoveredDir, p.cfg.CompressedExt, p.cfg.SourceExt, tree, p.DecompressFile)
}

type fileFunc func(tree *huffman.Tree, src, dst string) (FileStats, error)

func (p *Pipeline) batch(paths []string, root, dir, from, to string, tree *huffman.Tree, fn fileFunc) (Report, error) {
	var report Report
	for _, src := range paths {
		dst, err := relTarget(root, src, dir, from, to)
		if err == nil {
			var stats FileStats
			stats, err = fn(tree, src, dst)
			if err == nil {
				p.logger.Debugf("%s -> %s (%d -> %d bytes)", src, dst, stats.InBytes, stats.OutBytes)
				report.Files = append(report.Files, stats)
				continue
			}
		}
		if !p.cfg.KeepGoing {
			return report, err
		}
		p.logger.Errorf("skipping %s: %v", src, err)
		report.Failed = append(report.Failed, Failure{Path: src, Err: err})
	}
	p.logger.Infof("processed %d files (%d bytes -> %d bytes), %d failed",
		len(report.Files), report.InBytes(), report.OutBytes(), len(report.Failed))
	return report, nil
}

// SaveTree persists tree to TreePath.
func (p *Pipeline) SaveTree(tree *huffman.Tree) error {
	data, err := tree.MarshalBinary()
	if err != nil {
		return err
	}
	if err := writeFile(p.cfg.TreePath, data); err != nil {
		return err
	}
	p.logger.Infof("saved tree with %d symbols to %s", tree.NumSymbols(), p.cfg.TreePath)
	return nil
}

// LoadTree reads the tree persisted at TreePath.
func (p *Pipeline) LoadTree() (*huffman.Tree, error) {
	f, err := os.Open(p.cfg.TreePath)
	if err != nil {
		return nil, &huffman.IOError{Op: "open", Path: p.cfg.TreePath, Err: err}
	}
	defer f.Close()

	tree, err := huffman.ReadTree(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", p.cfg.TreePath, err)
	}
	p.logger.Infof("loaded tree with %d symbols from %s", tree.NumSymbols(), p.cfg.TreePath)
	return tree, nil
}

// RunCompress performs a whole compression run: count, build, compress,
// and save the tree.  The tree is saved even when some files failed under
// KeepGoing, since the successful outputs depend on it.
func (p *Pipeline) RunCompress() (*huffman.Tree, Report, error) {
	paths, err := p.SourceFiles()
	if err != nil {
		return nil, Report{}, err
	}
	tree, counted, failed, err := p.buildTree(paths)
	if err != nil {
		return nil, Report{}, err
	}

	report, err := p.Compress(tree, counted)
	report.Failed = append(failed, report.Failed...)
	if err != nil {
		return tree, report, err
	}
	if err := p.SaveTree(tree); err != nil {
		return tree, report, err
	}
	return tree, report, nil
}

// RunDecompress loads the saved tree and recovers every packed stream.
func (p *Pipeline) RunDecompress() (Report, error) {
	tree, err := p.LoadTree()
	if err != nil {
		return Report{}, err
	}
	return p.Decompress(tree)
}

// writeFile writes data to a temporary file beside path and renames it into
// place, so a failure never leaves a partial output behind.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &huffman.IOError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return &huffman.IOError{Op: "create", Path: path, Err: err}
	}
	tmpName := tmp.Name()
	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmpName, 0o644)
	}
	if err == nil {
		err = os.Rename(tmpName, path)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return &huffman.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
