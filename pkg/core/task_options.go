package core

import (
	"context"
	"io"
	"os"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/oneconcern/l10nsync/pkg/model"
	"github.com/oneconcern/l10nsync/pkg/storage"
	"github.com/oneconcern/l10nsync/pkg/storage/locator"
)

// Client knows how to talk to the remote localization service.
//
// Implementations report rate limiting with status.ErrRateLimited, so that calls get retried.
type Client interface {
	// Upload a single file, described by its upload options, to a project
	Upload(ctx context.Context, projectID string, opts model.UploadOptions) (model.Process, error)

	// Download asks the service to build a bundle of all translation files of a project
	Download(ctx context.Context, projectID string, opts map[string]interface{}) (model.BundleDescriptor, error)
}

// ArchiveOpener resolves a bundle location to the store holding it
type ArchiveOpener interface {
	Open(ctx context.Context, location string) (storage.Store, string, error)
}

var _ ArchiveOpener = &locator.Locator{}

// TaskOption is a functor to configure export and import tasks
type TaskOption func(*taskSettings)

type taskSettings struct {
	l         *zap.Logger
	fs        afero.Fs
	sleeper   Sleeper
	confirmer Confirmer
	out       io.Writer
	opener    ArchiveOpener
}

func defaultTaskSettings() taskSettings {
	return taskSettings{
		l:       zap.NewNop(),
		fs:      afero.NewOsFs(),
		sleeper: WallClock,
		out:     os.Stdout,
	}
}

func newTaskSettings(opts []TaskOption) taskSettings {
	s := defaultTaskSettings()
	for _, apply := range opts {
		apply(&s)
	}
	if s.confirmer == nil {
		s.confirmer = NewTerminalConfirmer(os.Stdin, s.out)
	}
	if s.opener == nil {
		s.opener = locator.New(locator.Fs(s.fs), locator.Logger(s.l))
	}
	return s
}

// Logger injects a logging facility into tasks
func Logger(l *zap.Logger) TaskOption {
	return func(s *taskSettings) {
		if l != nil {
			s.l = l
		}
	}
}

// Fs sets the file system holding the translation files. It defaults to the OS file system.
func Fs(fs afero.Fs) TaskOption {
	return func(s *taskSettings) {
		if fs != nil {
			s.fs = fs
		}
	}
}

// BackoffSleeper sets how tasks wait between retries. It defaults to the wall clock.
func BackoffSleeper(sleeper Sleeper) TaskOption {
	return func(s *taskSettings) {
		if sleeper != nil {
			s.sleeper = sleeper
		}
	}
}

// Confirmation sets how the user is asked before overwriting local files.
// It defaults to a prompt on the terminal.
func Confirmation(c Confirmer) TaskOption {
	return func(s *taskSettings) {
		s.confirmer = c
	}
}

// Output sets where user-facing messages are printed. It defaults to stdout.
func Output(w io.Writer) TaskOption {
	return func(s *taskSettings) {
		if w != nil {
			s.out = w
		}
	}
}

// Archives sets how bundle locations are resolved. It defaults to a locator with all backends.
func Archives(opener ArchiveOpener) TaskOption {
	return func(s *taskSettings) {
		s.opener = opener
	}
}
