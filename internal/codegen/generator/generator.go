package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/Alia5/umlconf/internal/codegen/configtree"
	"github.com/Alia5/umlconf/internal/codegen/loader"
	"github.com/Alia5/umlconf/internal/codegen/metadata"
	"github.com/Alia5/umlconf/internal/codegen/model"
	"github.com/Alia5/umlconf/internal/configpaths"
)

// Options locates the input model and the two artifacts. Nothing here is
// process-global; every run gets its own paths.
type Options struct {
	Input             string
	OutputDir         string
	ConfigFile        string
	MetaFile          string
	ConfigFormat      string
	MetaFormat        string
	Indent            string
	MetaIndent        string
	AggregationBounds bool
}

// Result describes a successful run.
type Result struct {
	ConfigPath    string
	MetaPath      string
	Entities      int
	Relationships int
	Unresolved    int
}

type Generator struct {
	opts   Options
	logger *slog.Logger
}

func New(opts Options, logger *slog.Logger) *Generator {
	return &Generator{
		opts:   opts,
		logger: logger,
	}
}

// Run loads the model, renders both artifacts in memory and only then writes
// them. A failure at any step leaves the output directory untouched.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	g.logger.Info("Loading model", "input", g.opts.Input)
	m, stats, err := loader.LoadFile(g.opts.Input)
	if err != nil {
		return nil, err
	}
	for _, tag := range stats.Ignored {
		g.logger.Debug("Ignored top-level element", "tag", tag)
	}
	g.logger.Info("Loaded model", "classes", stats.Classes, "aggregations", stats.Aggregations)

	unresolved := m.UnresolvedReferences()
	for _, ref := range unresolved {
		g.logger.Warn("Unresolved aggregation reference",
			"role", ref.Role, "name", ref.Name, "source", ref.Source, "target", ref.Target)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	configData, metaData, err := g.Render(ctx, m)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		ConfigPath:    filepath.Join(g.opts.OutputDir, g.opts.ConfigFile),
		MetaPath:      filepath.Join(g.opts.OutputDir, g.opts.MetaFile),
		Entities:      m.Len(),
		Relationships: len(m.Relationships()),
		Unresolved:    len(unresolved),
	}
	if filepath.Clean(res.ConfigPath) == filepath.Clean(res.MetaPath) {
		return nil, fmt.Errorf("config and metadata artifacts share the path %s", res.ConfigPath)
	}
	if err := writeAll([]artifact{
		{path: res.ConfigPath, data: configData},
		{path: res.MetaPath, data: metaData},
	}); err != nil {
		return nil, err
	}

	g.logger.Info("Generated config", "path", res.ConfigPath, "format", g.opts.ConfigFormat)
	g.logger.Info("Generated metadata", "path", res.MetaPath, "format", g.opts.MetaFormat, "records", res.Entities)
	return res, nil
}

// Render builds and encodes both artifacts concurrently. The model is only
// read, so the two builders share it without coordination.
func (g *Generator) Render(ctx context.Context, m *model.Model) (configData, metaData []byte, err error) {
	eg, _ := errgroup.WithContext(ctx)

	eg.Go(func() error {
		g.logger.Debug("Building config tree")
		tree, err := configtree.Build(m)
		if err != nil {
			return fmt.Errorf("build config tree: %w", err)
		}
		var buf bytes.Buffer
		if err := configtree.Encode(&buf, g.opts.ConfigFormat, tree, g.opts.Indent); err != nil {
			return err
		}
		configData = buf.Bytes()
		return nil
	})

	eg.Go(func() error {
		g.logger.Debug("Flattening metadata")
		records := metadata.Flatten(m, metadata.Options{AggregationBounds: g.opts.AggregationBounds})
		var buf bytes.Buffer
		if err := metadata.Encode(&buf, g.opts.MetaFormat, records, g.opts.MetaIndent); err != nil {
			return err
		}
		metaData = buf.Bytes()
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return configData, metaData, nil
}

// artifact is one file to write; writeAll commits artifacts in slice order.
type artifact struct {
	path string
	data []byte
}

// writeAll stages every artifact next to its destination and renames them into
// place once all of them were written. Destinations that already exist are
// moved aside first and put back if a later rename fails, so either every
// artifact is replaced or none is.
func writeAll(files []artifact) (err error) {
	for _, f := range files {
		if info, err := os.Stat(f.path); err == nil && info.IsDir() {
			return fmt.Errorf("write %s: destination is a directory", f.path)
		}
	}

	staged := make([]string, len(files))
	defer func() {
		if err == nil {
			return
		}
		for _, tmp := range staged {
			if tmp != "" {
				_ = os.Remove(tmp)
			}
		}
	}()

	for i, f := range files {
		if err := configpaths.EnsureDir(f.path); err != nil {
			return fmt.Errorf("create output directory for %s: %w", f.path, err)
		}
		tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+".*.tmp")
		if err != nil {
			return fmt.Errorf("stage %s: %w", f.path, err)
		}
		staged[i] = tmp.Name()
		_, werr := tmp.Write(f.data)
		cerr := tmp.Close()
		if werr = errors.Join(werr, cerr); werr != nil {
			return fmt.Errorf("write %s: %w", f.path, werr)
		}
	}

	return commit(files, staged)
}

type replaced struct {
	dest   string
	backup string // empty when dest did not exist before
}

// commit renames staged[i] onto files[i].path in order. On failure every
// destination already replaced is restored from its backup, or removed if it
// is new. staged entries are cleared once they no longer exist.
func commit(files []artifact, staged []string) (err error) {
	done := make([]replaced, 0, len(files))
	defer func() {
		if err == nil {
			for _, r := range done {
				if r.backup != "" {
					_ = os.Remove(r.backup)
				}
			}
			return
		}
		for i := len(done) - 1; i >= 0; i-- {
			r := done[i]
			if r.backup == "" {
				_ = os.Remove(r.dest)
				continue
			}
			_ = os.Rename(r.backup, r.dest)
		}
	}()

	for i, f := range files {
		r := replaced{dest: f.path}
		if _, statErr := os.Lstat(f.path); statErr == nil {
			r.backup = staged[i] + ".bak"
			if err := os.Rename(f.path, r.backup); err != nil {
				return fmt.Errorf("back up %s: %w", f.path, err)
			}
		}
		if err := os.Rename(staged[i], f.path); err != nil {
			if r.backup != "" {
				_ = os.Rename(r.backup, f.path)
			}
			return fmt.Errorf("write %s: %w", f.path, err)
		}
		staged[i] = ""
		done = append(done, r)
	}
	return nil
}
