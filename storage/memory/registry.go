package memory

import (
	"github.com/spf13/pflag"

	"github.com/willief/AntTP-tutorial/storage"
	"github.com/willief/AntTP-tutorial/storage/registry"
)

func init() {
	registry.MustRegister(registry.Backend{
		Name:          "memory",
		Description:   "In-process map (lost on exit)",
		Usage:         registry.UsageEngine | registry.UsageDaemon,
		RegisterFlags: func(fs *pflag.FlagSet) {},
		Open: func() (storage.Backend, func() error, error) {
			return New(), nil, nil
		},
		OpenConfig: func(map[string]string) (storage.Backend, func() error, error) {
			return New(), nil, nil
		},
	})
}
