package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/getmockd/soapmock/pkg/lifecycle"
	"github.com/getmockd/soapmock/pkg/project"
	"github.com/getmockd/soapmock/pkg/runtime"
)

func newProjectManager(cmd *cobra.Command) *project.Manager {
	return project.NewManager(cfg.Layout(),
		project.WithLogger(logger),
		project.WithReporter(reporter(cmd)),
	)
}

// newLifecycle opens the configured runtime. The returned func releases it.
func newLifecycle(cmd *cobra.Command, opts ...lifecycle.Option) (*lifecycle.Manager, func(), error) {
	rtOpts := cfg.RuntimeOptions()
	rtOpts.Logger = logger
	rt, err := runtime.New(rtOpts)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if c, ok := rt.(io.Closer); ok {
			_ = c.Close()
		}
	}

	all := append(cfg.LifecycleOptions(),
		lifecycle.WithLogger(logger),
		lifecycle.WithReporter(reporter(cmd)),
	)
	all = append(all, opts...)
	return lifecycle.NewManager(cfg.Layout(), rt, all...), closeFn, nil
}

// projectArg returns the project name from the first argument or --project.
func projectArg(args []string, flag string) (string, error) {
	switch {
	case len(args) > 0 && flag != "" && args[0] != flag:
		return "", errProjectTwice
	case len(args) > 0:
		return args[0], nil
	case flag != "":
		return flag, nil
	default:
		return "", errProjectRequired
	}
}
