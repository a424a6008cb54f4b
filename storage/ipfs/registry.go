package ipfs

import (
	"os"

	"github.com/spf13/pflag"

	"github.com/willief/AntTP-tutorial/storage"
	"github.com/willief/AntTP-tutorial/storage/registry"
)

var (
	flagBin  string
	flagRepo string
	flagRoot string
)

func init() {
	registry.MustRegister(registry.Backend{
		Name:        "ipfs",
		Description: "Local Kubo node MFS via the ipfs CLI",
		Usage:       registry.UsageEngine | registry.UsageDaemon,
		RegisterFlags: func(fs *pflag.FlagSet) {
			fs.StringVar(&flagBin, "ipfs-bin", "ipfs", "ipfs binary (for --backend=ipfs)")
			fs.StringVar(&flagRepo, "ipfs-path", "", "IPFS_PATH for the ipfs binary (default: inherit)")
			fs.StringVar(&flagRoot, "ipfs-root", "/anttp", "MFS directory holding values")
		},
		Open: func() (storage.Backend, func() error, error) {
			return open(flagBin, flagRepo, flagRoot), nil, nil
		},
		OpenConfig: func(cfg map[string]string) (storage.Backend, func() error, error) {
			return open(cfg["ipfs-bin"], cfg["ipfs-path"], cfg["ipfs-root"]), nil, nil
		},
	})
}

func open(bin, repo, root string) storage.Backend {
	var env []string
	if repo != "" {
		env = append(os.Environ(), "IPFS_PATH="+repo)
	}
	return New(Options{Bin: bin, Env: env, Root: root})
}
