package core

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"

	units "github.com/docker/go-units"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/oneconcern/l10nsync/pkg/core/status"
	"github.com/oneconcern/l10nsync/pkg/errors"
	"github.com/oneconcern/l10nsync/pkg/model"
	"github.com/oneconcern/l10nsync/pkg/storage"
	"github.com/oneconcern/l10nsync/pkg/storage/localfs"
)

var errEntryOutsideRoot = errors.New("entry path escapes the root directory")

// BundleProcessor fetches a bundle archive and extracts its entries under the root directory.
//
// Entries are all decoded before any of them is written: when an entry is malformed,
// no file is written at all.
type BundleProcessor struct {
	cfg    model.Config
	opener ArchiveOpener
	dest   storage.Store
	l      *zap.Logger
}

// NewBundleProcessor builds a processor writing to the root directory of cfg on fs.
//
// A relative root is resolved against the current working directory.
func NewBundleProcessor(cfg model.Config, opener ArchiveOpener, fs afero.Fs, l *zap.Logger) (*BundleProcessor, error) {
	if l == nil {
		l = zap.NewNop()
	}
	root, err := filepath.Abs(cfg.RootPath)
	if err != nil {
		return nil, status.ErrConfiguration.Wrap(err).WithContext("resolving root directory %s", cfg.RootPath)
	}
	return &BundleProcessor{
		cfg:    cfg,
		opener: opener,
		dest:   localfs.New(afero.NewBasePathFs(fs, root)),
		l:      l,
	}, nil
}

// Process the bundle: fetch, extract, decode and write all accepted entries.
//
// It returns true once all entries are written. Entries which are directories
// or do not have an accepted extension are skipped.
func (p *BundleProcessor) Process(ctx context.Context, bundle model.BundleDescriptor) (bool, error) {
	archive, err := p.fetch(ctx, bundle.BundleURL)
	if err != nil {
		return false, err
	}

	entries, err := p.extract(archive)
	if err != nil {
		return false, err
	}

	for _, entry := range entries {
		if err := p.dest.Put(ctx, entry.Name, bytes.NewReader(entry.Content), storage.OverWrite); err != nil {
			return false, status.ErrEntryProcessing.Wrap(err).WithContext("writing %s", entry.Name)
		}
		p.l.Debug("wrote file",
			zap.String("file", entry.Name),
			zap.String("size", units.HumanSize(float64(len(entry.Content)))),
		)
	}
	p.l.Info("bundle extracted",
		zap.String("root", p.cfg.RootPath),
		zap.Int("files", len(entries)),
	)
	return true, nil
}

func (p *BundleProcessor) fetch(ctx context.Context, location string) ([]byte, error) {
	store, key, err := p.opener.Open(ctx, location)
	if err != nil {
		return nil, status.ErrTransfer.Wrap(err).WithContext("fetching bundle %s", location)
	}
	archive, err := storage.ReadAll(ctx, store, key)
	if err != nil {
		return nil, status.ErrTransfer.Wrap(err).WithContext("fetching bundle %s", location)
	}
	p.l.Info("bundle fetched",
		zap.String("location", location),
		zap.String("size", units.HumanSize(float64(len(archive)))),
	)
	return archive, nil
}

// extract decodes all accepted entries of the archive
func (p *BundleProcessor) extract(archive []byte) ([]model.ArchiveEntry, error) {
	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, status.ErrBundleFormat.Wrap(err)
	}

	entries := make([]model.ArchiveEntry, 0, len(reader.File))
	for _, f := range reader.File {
		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			continue
		}
		if !p.cfg.AcceptsExtension(f.Name) {
			p.l.Debug("skipping bundle entry", zap.String("entry", f.Name))
			continue
		}
		name, err := entryName(f.Name)
		if err != nil {
			return nil, status.ErrEntryProcessing.Wrap(err).WithContext("%s", f.Name)
		}
		content, err := readEntry(f)
		if err != nil {
			return nil, status.ErrEntryProcessing.Wrap(err).WithContext("%s", f.Name)
		}
		decoded, err := decodeEntry(name, content)
		if err != nil {
			return nil, status.ErrEntryProcessing.Wrap(err).WithContext("%s", f.Name)
		}
		entries = append(entries, model.ArchiveEntry{Name: name, Content: decoded})
	}
	return entries, nil
}

// entryName cleans up the path of an entry, refusing paths which escape the root directory
func entryName(name string) (string, error) {
	cleaned := path.Clean(strings.ReplaceAll(name, `\`, "/"))
	if path.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, "../") || cleaned == "." {
		return "", errEntryOutsideRoot
	}
	return cleaned, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}
