package cmd

import (
	"context"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/oneconcern/l10nsync/pkg/api"
	"github.com/oneconcern/l10nsync/pkg/core"
	"github.com/oneconcern/l10nsync/pkg/dlogger"
	"github.com/oneconcern/l10nsync/pkg/storage/locator"
)

var (
	// used to patch over the remote service during test
	newClient = func(params syncFlagsT, l *zap.Logger) core.Client {
		return api.New(params.token,
			api.BaseURL(params.apiURL),
			api.Timeout(params.timeout),
			api.Logger(l),
		)
	}

	// used to patch over the task environment (file system, prompts) during test
	taskOptions = defaultTaskOptions
)

func defaultTaskOptions(l *zap.Logger) []core.TaskOption {
	var credential string
	if config != nil {
		credential = config.Credential
	}
	return []core.TaskOption{
		core.Archives(locator.New(
			locator.GCSCredential(credential),
			locator.Logger(l),
		)),
	}
}

func taskLogger(task string) (*zap.Logger, error) {
	return dlogger.GetLogger(syncFlags.logLevel,
		dlogger.Console(),
		dlogger.Fields(map[string]interface{}{"task": task}),
	)
}

// commandContext is cancelled on SIGINT, so that tasks stop between two files
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
