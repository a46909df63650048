// Command texthuff compresses a directory of text files with one shared
// static Huffman code, and recovers them again.
//
// Usage:
//
//     texthuff [flags] compress     count, build tree, compress, save tree
//     texthuff [flags] decompress   load tree, recover text
//     texthuff [flags] dump         load tree, print its code table
//
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chronos-tachyon/texthuff/internal/logger"
	"github.com/chronos-tachyon/texthuff/internal/pipeline"
)

func main() {
	cfg := pipeline.DefaultConfig()
	var verbose bool

	flag.StringVar(&cfg.SourceDir, "src", cfg.SourceDir, "directory scanned recursively for text files")
	flag.StringVar(&cfg.CompressedDir, "compressed", cfg.CompressedDir, "directory for compressed files")
	flag.StringVar(&cfg.RecoveredDir, "recovered", cfg.RecoveredDir, "directory for recovered text files")
	flag.StringVar(&cfg.TreePath, "tree", cfg.TreePath, "path of the persisted Huffman tree")
	flag.StringVar(&cfg.Encoding, "encoding", cfg.Encoding, "text encoding of source and recovered files")
	flag.StringVar(&cfg.SourceExt, "src-ext", cfg.SourceExt, "extension of text files")
	flag.StringVar(&cfg.CompressedExt, "compressed-ext", cfg.CompressedExt, "extension of compressed files")
	flag.BoolVar(&cfg.KeepGoing, "keep-going", cfg.KeepGoing, "skip files that fail instead of aborting")
	flag.BoolVar(&verbose, "v", false, "log every file")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	logg := logger.New(verbose)
	p, err := pipeline.New(cfg, logg)
	if err != nil {
		logg.Errorf("%v", err)
		os.Exit(2)
	}

	if err := run(p, flag.Arg(0)); err != nil {
		logg.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(p *pipeline.Pipeline, action string) error {
	switch action {
	case "compress":
		_, report, err := p.RunCompress()
		if err != nil {
			return err
		}
		return failedError(report)

	case "decompress":
		report, err := p.RunDecompress()
		if err != nil {
			return err
		}
		return failedError(report)

	case "dump":
		tree, err := p.LoadTree()
		if err != nil {
			return err
		}
		_, err = tree.Dump(os.Stdout)
		return err

	default:
		return fmt.Errorf("unknown action %q, expected \"compress\", \"decompress\" or \"dump\"", action)
	}
}

func failedError(report pipeline.Report) error {
	if n := len(report.Failed); n != 0 {
		return fmt.Errorf("%d files failed", n)
	}
	return nil
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] compress|decompress|dump\n", os.Args[0])
	flag.PrintDefaults()
}
