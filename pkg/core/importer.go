package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/oneconcern/l10nsync/pkg/model"
)

// Importer downloads the translation files of a project and writes them under the root directory
type Importer struct {
	cfg    model.Config
	client Client
	taskSettings
}

// NewImporter builds an import task
func NewImporter(cfg model.Config, client Client, opts ...TaskOption) *Importer {
	return &Importer{
		cfg:          cfg,
		client:       client,
		taskSettings: newTaskSettings(opts),
	}
}

// Import requests a bundle, then extracts it.
//
// In safe mode, the user is asked for confirmation before anything happens when the root
// directory holds some files. When the user declines, Import returns false and no error.
func (i *Importer) Import(ctx context.Context) (bool, error) {
	if err := i.cfg.Validate(); err != nil {
		return false, err
	}

	if i.cfg.ImportSafeMode {
		gate := NewSafeModeGate(i.fs, i.confirmer, i.out)
		proceed, err := gate.Confirm(i.cfg.RootPath)
		if err != nil {
			return false, err
		}
		if !proceed {
			notify(i.out, i.cfg.Silent, MessageCancelled)
			return false, nil
		}
	}

	retrier := NewRetrier(i.sleeper, i.l)
	project := i.cfg.ProjectIdentifier()
	opts := make(map[string]interface{}, len(i.cfg.ImportOptions))
	for k, v := range i.cfg.ImportOptions {
		opts[k] = v
	}

	var bundle model.BundleDescriptor
	err := retrier.Execute(ctx, fmt.Sprintf("downloading files of project %s", project), i.cfg.MaxRetriesImport,
		func(ctx context.Context) error {
			b, err := i.client.Download(ctx, project, opts)
			if err != nil {
				return err
			}
			bundle = b
			return nil
		})
	if err != nil {
		return false, err
	}
	i.l.Info("bundle ready", zap.String("project", project), zap.String("location", bundle.BundleURL))

	processor, err := NewBundleProcessor(i.cfg, i.opener, i.fs, i.l)
	if err != nil {
		return false, err
	}
	done, err := processor.Process(ctx, bundle)
	if err != nil {
		return false, err
	}

	notify(i.out, i.cfg.Silent, MessageComplete)
	return done, nil
}
