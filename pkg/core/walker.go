package core

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/oneconcern/l10nsync/pkg/core/status"
	"github.com/oneconcern/l10nsync/pkg/errors"
	"github.com/oneconcern/l10nsync/pkg/model"
)

type walkedPath struct {
	path string
	mode os.FileMode
}

// FileIterator yields the files selected for export, in a deterministic order.
//
// Filters are applied lazily, as Next is called. A FileIterator is consumed once.
type FileIterator struct {
	cfg   model.Config
	paths []walkedPath
	i     int
}

// WalkFiles lists all files under the configured root directory, recursively.
//
// Directories and other non-regular files are never yielded, nor are files
// with an unaccepted extension or excluded by the configured skipper.
// A root directory which does not exist yields no file.
func WalkFiles(fs afero.Fs, cfg model.Config) (*FileIterator, error) {
	paths := make([]walkedPath, 0, 100)
	err := afero.Walk(fs, cfg.RootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		paths = append(paths, walkedPath{path: path, mode: info.Mode()})
		return nil
	})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &FileIterator{cfg: cfg}, nil
		}
		return nil, status.ErrFileRead.Wrap(err).WithContext("walking %s", cfg.RootPath)
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i].path < paths[j].path })

	return &FileIterator{cfg: cfg, paths: paths}, nil
}

// Next candidate file. It returns false when all files have been iterated.
func (it *FileIterator) Next() (model.CandidateFile, bool) {
	for it.i < len(it.paths) {
		walked := it.paths[it.i]
		it.i++

		if !walked.mode.IsRegular() {
			continue
		}
		if !it.cfg.AcceptsExtension(walked.path) || it.cfg.ShouldSkip(walked.path) {
			continue
		}
		rel, err := filepath.Rel(it.cfg.RootPath, walked.path)
		if err != nil {
			// walked paths are always under the root
			rel = filepath.Base(walked.path)
		}
		return model.CandidateFile{
			Path:         walked.path,
			RelativePath: filepath.ToSlash(rel),
		}, true
	}
	return model.CandidateFile{}, false
}

// Collect the remaining candidate files
func (it *FileIterator) Collect() []model.CandidateFile {
	files := make([]model.CandidateFile, 0, len(it.paths)-it.i)
	for {
		file, ok := it.Next()
		if !ok {
			return files
		}
		files = append(files, file)
	}
}
