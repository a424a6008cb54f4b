package localfs

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/willief/AntTP-tutorial/storage"
	"github.com/willief/AntTP-tutorial/storage/registry"
)

var (
	flagDir         string
	flagCompression string
)

func init() {
	registry.MustRegister(registry.Backend{
		Name:        "localfs",
		Description: "Local filesystem store (directory)",
		Usage:       registry.UsageEngine | registry.UsageDaemon,
		RegisterFlags: func(fs *pflag.FlagSet) {
			fs.StringVar(&flagDir, "localfs-dir", "", "localfs data directory (for --backend=localfs)")
			fs.StringVar(&flagCompression, "localfs-compression", "lz4", "value compression: none, lz4 or zstd")
		},
		Open: func() (storage.Backend, func() error, error) {
			return open(flagDir, flagCompression)
		},
		OpenConfig: func(cfg map[string]string) (storage.Backend, func() error, error) {
			return open(cfg["localfs-dir"], cfg["localfs-compression"])
		},
	})
}

func open(dir, compression string) (storage.Backend, func() error, error) {
	if dir == "" {
		return nil, nil, fmt.Errorf("missing --localfs-dir")
	}
	c, err := ParseCompression(compression)
	if err != nil {
		return nil, nil, err
	}
	s, err := New(dir, Options{Compression: c})
	if err != nil {
		return nil, nil, err
	}
	return s, nil, nil
}
