package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/willief/AntTP-tutorial/config"
	"github.com/willief/AntTP-tutorial/engine"
	"github.com/willief/AntTP-tutorial/model"
	"github.com/willief/AntTP-tutorial/storage/registry"

	_ "github.com/willief/AntTP-tutorial/storage/grpcstore"
	_ "github.com/willief/AntTP-tutorial/storage/ipfs"
	_ "github.com/willief/AntTP-tutorial/storage/localfs"
	_ "github.com/willief/AntTP-tutorial/storage/memory"
)

type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath     string
	intentName     string
	strict         bool
	logLevel       string
	logFormat      string
	identityDir    string
	diskBackend    string
	networkBackend string
	backendFlags   *pflag.FlagSet

	intent  model.Intent
	eng     *engine.Engine
	closeFn func() error
}

// Run executes the command line and returns the process exit code.
func Run(args []string, in io.Reader, out, errOut io.Writer) int {
	a := &app{in: in, out: out, errOut: errOut}
	root := a.root()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.Execute()
	if a.closeFn != nil {
		if cerr := a.closeFn(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err == nil {
		return 0
	}
	var ce *model.CodedError
	if errors.As(err, &ce) {
		_ = json.NewEncoder(errOut).Encode(map[string]any{"error": ce})
		return 1
	}
	fmt.Fprintln(errOut, "error:", err)
	return 2
}

func (a *app) root() *cobra.Command {
	root := &cobra.Command{
		Use:           "anttp",
		Short:         "Store and fetch primitives in memory, on disk or over the network",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file")
	pf.StringVarP(&a.intentName, "intent", "i", "memory", "storage intent: memory, disk or network")
	pf.BoolVar(&a.strict, "strict", false, "fail instead of falling back to memory")
	pf.StringVar(&a.logLevel, "log-level", "warn", "debug, info, warn or error")
	pf.StringVar(&a.logFormat, "log-format", "auto", "json, text or auto (text on a terminal)")
	pf.StringVar(&a.identityDir, "identity-dir", "", "directory holding the node signing key")
	pf.StringVar(&a.diskBackend, "disk-backend", "", "backend serving the disk intent (overrides config)")
	pf.StringVar(&a.networkBackend, "network-backend", "", "backend serving the network intent (overrides config)")

	a.backendFlags = pflag.NewFlagSet("backends", pflag.ContinueOnError)
	registry.RegisterFlags(a.backendFlags, registry.UsageEngine)
	pf.AddFlagSet(a.backendFlags)

	root.AddCommand(
		chunkCmd(a),
		publicCmd(a),
		registerCmd(a),
		pointerCmd(a),
		scratchpadCmd(a),
		archiveCmd(a),
		tarchiveCmd(a),
		graphCmd(a),
		pnrCmd(a),
		kvCmd(a),
		commandsCmd(a),
		backendsCmd(a),
	)
	return root
}

// open builds the engine for one invocation. Flags that were set explicitly
// win over the config file.
func (a *app) open(cmd *cobra.Command) error {
	intent, err := model.ParseIntent(a.intentName)
	if err != nil {
		return err
	}
	a.intent = intent

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if a.configPath == "" || flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if a.configPath == "" || flags.Changed("log-format") {
		cfg.LogFormat = a.resolveLogFormat()
	}
	if flags.Changed("strict") {
		cfg.Strict = a.strict
	}
	if flags.Changed("identity-dir") {
		cfg.IdentityDir = a.identityDir
	}
	if a.diskBackend != "" {
		cfg.Intents.Disk = config.IntentConfig{Backends: []config.BackendConfig{a.backendFromFlags(a.diskBackend)}}
	}
	if a.networkBackend != "" {
		cfg.Intents.Network = config.IntentConfig{Backends: []config.BackendConfig{a.backendFromFlags(a.networkBackend)}}
	}

	log, err := cfg.Logger(a.errOut)
	if err != nil {
		return err
	}
	signer, err := cfg.Signer()
	if err != nil {
		return err
	}
	sel, closeFn, err := cfg.Open(log)
	if err != nil {
		return err
	}
	a.closeFn = closeFn
	a.eng = engine.New(engine.Options{Selector: sel, Signer: signer, Logger: log})
	return nil
}

func (a *app) resolveLogFormat() string {
	if a.logFormat != "auto" {
		return a.logFormat
	}
	if f, ok := a.errOut.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "text"
	}
	return "json"
}

func (a *app) backendFromFlags(name string) config.BackendConfig {
	values := map[string]string{}
	a.backendFlags.Visit(func(f *pflag.Flag) {
		values[f.Name] = f.Value.String()
	})
	return config.BackendConfig{Name: name, Config: values}
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func commandsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List available intents and primitive operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.print(a.eng.Commands())
		},
	}
}

func backendsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List storage backends linked into this binary",
		Args:  cobra.NoArgs,
		// No engine needed.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, b := range registry.List(registry.UsageEngine) {
				fmt.Fprintf(a.out, "%s\t%s\n", b.Name, b.Description)
			}
			return nil
		},
	}
}

func (a *app) printReceipt(r model.Receipt, err error) error {
	if err != nil {
		return err
	}
	return a.print(r)
}
