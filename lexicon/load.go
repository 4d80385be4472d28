package lexicon

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/reoring/lexgen/internal/ctxlog"
)

// IsLexiconFile reports whether path has a lexicon file extension.
func IsLexiconFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// ParseFile reads and parses one lexicon file, choosing the decoder by
// extension.
func ParseFile(path string, opts ParseOptions) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}
	var doc *Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		doc, err = ParseYAML(data, opts)
	default:
		doc, err = ParseJSON(data, opts)
	}
	if err != nil {
		if iss, ok := AsIssues(err); ok {
			return nil, iss.withDocument(path)
		}
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// Expand resolves paths into the sorted list of lexicon files they name.
// Directories are walked recursively; explicit files are kept regardless of
// extension.
func Expand(paths ...string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !IsLexiconFile(path) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// LoadFiles expands paths and parses every lexicon file concurrently. The
// first failure cancels the remaining work and is returned. Documents come
// back in the sorted file order.
func LoadFiles(ctx context.Context, opts ParseOptions, paths ...string) ([]*Document, error) {
	log := ctxlog.FromContext(ctx)

	files, err := Expand(paths...)
	if err != nil {
		return nil, err
	}
	log.Debug("expanded lexicon paths", "inputs", len(paths), "files", len(files))

	docs := make([]*Document, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := ParseFile(file, opts)
			if err != nil {
				return err
			}
			for _, w := range doc.Warnings {
				log.Warn("lexicon warning", "file", file, "code", w.Code, "path", w.Path, "message", w.Text())
			}
			log.Debug("parsed lexicon", "file", file, "id", doc.ID.String(), "defs", len(doc.Defs))
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// LoadDir is LoadFiles for a single directory.
func LoadDir(ctx context.Context, dir string, opts ParseOptions) ([]*Document, error) {
	return LoadFiles(ctx, opts, dir)
}
