package core

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/oneconcern/l10nsync/pkg/model"
)

// Messages printed to the user when a task ends
const (
	MessageComplete  = "Task complete!"
	MessageCancelled = "Task cancelled!"
)

// Exporter uploads all translation files found under the root directory
type Exporter struct {
	cfg    model.Config
	client Client
	taskSettings
}

// NewExporter builds an export task
func NewExporter(cfg model.Config, client Client, opts ...TaskOption) *Exporter {
	return &Exporter{
		cfg:          cfg,
		client:       client,
		taskSettings: newTaskSettings(opts),
	}
}

// Export uploads each candidate file in turn, retrying rate limited uploads.
//
// It returns the processes acknowledged by the remote service, in upload order.
// Upon failure, the processes of the files uploaded so far are returned along with the error:
// the export is not transactional.
func (e *Exporter) Export(ctx context.Context) ([]model.Process, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	files, err := WalkFiles(e.fs, e.cfg)
	if err != nil {
		return nil, err
	}

	retrier := NewRetrier(e.sleeper, e.l)
	project := e.cfg.ProjectIdentifier()
	processes := make([]model.Process, 0, 10)

	for {
		file, ok := files.Next()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return processes, err
		}

		opts, err := BuildUploadOptions(e.fs, e.cfg, file)
		if err != nil {
			return processes, err
		}

		var process model.Process
		err = retrier.Execute(ctx, fmt.Sprintf("uploading %s", file.RelativePath), e.cfg.MaxRetriesExport,
			func(ctx context.Context) error {
				p, err := e.client.Upload(ctx, project, opts)
				if err != nil {
					return err
				}
				process = p
				return nil
			})
		if err != nil {
			return processes, err
		}

		e.l.Info("uploaded file",
			zap.String("file", file.RelativePath),
			zap.String("lang", opts.LangISO()),
			zap.String("process", process.ID),
		)
		processes = append(processes, process)
	}

	notify(e.out, e.cfg.Silent, MessageComplete)
	return processes, nil
}

func notify(out io.Writer, silent bool, msg string) {
	if silent {
		return
	}
	_, _ = fmt.Fprintln(out, msg)
}
