package commands

import (
	"encoding/base64"

	"github.com/spf13/cobra"

	"github.com/willief/AntTP-tutorial/engine"
	"github.com/willief/AntTP-tutorial/model"
)

func chunkCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "chunk", Short: "Immutable content-addressed chunks"}

	var file string
	put := &cobra.Command{
		Use:   "put [base64]",
		Short: "Store a chunk from base64 text or --file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				r   model.Receipt
				err error
			)
			switch {
			case file != "":
				var b []byte
				if b, err = a.readInput(file); err != nil {
					return err
				}
				r, err = a.eng.PutChunkBinary(a.intent, b)
			case len(args) == 1:
				r, err = a.eng.PutChunk(a.intent, args[0])
			default:
				return model.NewError(model.ErrCodeInvalidRequest, "content or --file is required")
			}
			if err != nil {
				return err
			}
			return a.print(r)
		},
	}
	put.Flags().StringVarP(&file, "file", "f", "", "read raw bytes from a file (- for stdin)")

	var raw bool
	get := &cobra.Command{
		Use:   "get <address>",
		Short: "Fetch a chunk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if raw {
				b, err := a.eng.GetChunkBinary(a.intent, model.Address(args[0]))
				if err != nil {
					return err
				}
				_, err = a.out.Write(b)
				return err
			}
			content, err := a.eng.GetChunk(a.intent, model.Address(args[0]))
			if err != nil {
				return err
			}
			return a.print(map[string]string{"content": content})
		},
	}
	get.Flags().BoolVar(&raw, "raw", false, "write raw bytes instead of JSON")

	cmd.AddCommand(put, get)
	return cmd
}

func publicCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "public", Short: "Immutable public data"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "put <file>",
			Short: "Store a file (- for stdin)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				b, err := a.readInput(args[0])
				if err != nil {
					return err
				}
				r, err := a.eng.PutPublicData(a.intent, b)
				if err != nil {
					return err
				}
				return a.print(r)
			},
		},
		&cobra.Command{
			Use:   "get <address>",
			Short: "Write stored bytes to stdout",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				b, err := a.eng.GetPublicData(a.intent, model.Address(args[0]))
				if err != nil {
					return err
				}
				_, err = a.out.Write(b)
				return err
			},
		},
	)
	return cmd
}

func registerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "register", Short: "Mutable registers with history (hex content)"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "create <name> <hex>",
			Short: "Create a register",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.printReceipt(a.eng.CreateRegister(a.intent, args[0], args[1]))
			},
		},
		&cobra.Command{
			Use:   "update <address> <name> <hex>",
			Short: "Append a new value",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.printReceipt(a.eng.UpdateRegister(a.intent, model.Address(args[0]), args[1], args[2]))
			},
		},
		&cobra.Command{
			Use:   "get <address>",
			Short: "Print the current value",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				content, err := a.eng.GetRegister(a.intent, model.Address(args[0]))
				if err != nil {
					return err
				}
				return a.print(map[string]string{"content": content})
			},
		},
		&cobra.Command{
			Use:   "history <address>",
			Short: "Print every value in order",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				h, err := a.eng.RegisterHistory(a.intent, model.Address(args[0]))
				if err != nil {
					return err
				}
				return a.print(h)
			},
		},
	)
	return cmd
}

func pointerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "pointer", Short: "Signed mutable pointers"}

	var owner string
	create := &cobra.Command{
		Use:   "create <name> <target>",
		Short: "Create a pointer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printReceipt(a.eng.CreatePointer(a.intent, args[0], args[1], owner))
		},
	}
	create.Flags().StringVar(&owner, "owner", "", "owner annotation (default: node key)")

	cmd.AddCommand(
		create,
		&cobra.Command{
			Use:   "update <address> <name> <target>",
			Short: "Retarget a pointer",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.printReceipt(a.eng.UpdatePointer(a.intent, model.Address(args[0]), args[1], args[2]))
			},
		},
		&cobra.Command{
			Use:   "get <address>",
			Short: "Print a pointer",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := a.eng.GetPointer(a.intent, model.Address(args[0]))
				if err != nil {
					return err
				}
				return a.print(p)
			},
		},
	)
	return cmd
}

func scratchpadCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "scratchpad", Short: "Mutable scratchpads (base64 content)"}

	var private bool
	var name string
	create := &cobra.Command{
		Use:   "create <name> <base64>",
		Short: "Create a scratchpad",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if private {
				return a.printReceipt(a.eng.CreatePrivateScratchpad(a.intent, args[0], args[1]))
			}
			return a.printReceipt(a.eng.CreatePublicScratchpad(a.intent, args[0], args[1]))
		},
	}
	update := &cobra.Command{
		Use:   "update <address> <name> <base64>",
		Short: "Replace scratchpad content",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := model.Address(args[0])
			if private {
				return a.printReceipt(a.eng.UpdatePrivateScratchpad(a.intent, addr, args[1], args[2]))
			}
			return a.printReceipt(a.eng.UpdatePublicScratchpad(a.intent, addr, args[1], args[2]))
		},
	}
	get := &cobra.Command{
		Use:   "get <address>",
		Short: "Print scratchpad content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				content string
				err     error
			)
			if private {
				content, err = a.eng.GetPrivateScratchpad(a.intent, model.Address(args[0]), name)
			} else {
				content, err = a.eng.GetPublicScratchpad(a.intent, model.Address(args[0]))
			}
			if err != nil {
				return err
			}
			return a.print(map[string]string{"content": content})
		},
	}
	for _, c := range []*cobra.Command{create, update, get} {
		c.Flags().BoolVar(&private, "private", false, "use the private (address+name) namespace")
	}
	get.Flags().StringVar(&name, "name", "", "private scratchpad name")

	cmd.AddCommand(create, update, get)
	return cmd
}

func archiveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "archive", Short: "Immutable multi-file archives"}

	var files []string
	var meta map[string]string
	create := &cobra.Command{
		Use:   "create --file path[=local] ...",
		Short: "Store files as one archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := a.readArchiveFiles(files)
			if err != nil {
				return err
			}
			return a.printReceipt(a.eng.CreateArchive(a.intent, fs, meta))
		},
	}
	create.Flags().StringArrayVarP(&files, "file", "f", nil, "file to add; stored/path=local/path or local/path")
	create.Flags().StringToStringVar(&meta, "meta", nil, "metadata key=value pairs")

	var raw bool
	file := &cobra.Command{
		Use:   "file <address> <path>",
		Short: "Print one file from an archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.eng.GetArchiveFile(a.intent, model.Address(args[0]), args[1])
			if err != nil {
				return err
			}
			if raw {
				_, err = a.out.Write(f.Content)
				return err
			}
			return a.print(f)
		},
	}
	file.Flags().BoolVar(&raw, "raw", false, "write raw bytes instead of JSON")

	cmd.AddCommand(
		create,
		&cobra.Command{
			Use:   "get <address>",
			Short: "Print an archive",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ar, err := a.eng.GetArchive(a.intent, model.Address(args[0]))
				if err != nil {
					return err
				}
				return a.print(ar)
			},
		},
		file,
	)
	return cmd
}

func tarchiveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "tarchive", Short: "Immutable archives stored as tar"}

	var files []string
	create := &cobra.Command{
		Use:   "create --file path[=local] ...",
		Short: "Store files as one tar stream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := a.readArchiveFiles(files)
			if err != nil {
				return err
			}
			return a.printReceipt(a.eng.CreateTarchive(a.intent, fs))
		},
	}
	create.Flags().StringArrayVarP(&files, "file", "f", nil, "file to add; stored/path=local/path or local/path")

	cmd.AddCommand(
		create,
		&cobra.Command{
			Use:   "import <file.tar>",
			Short: "Store the regular files of a tar (- for stdin)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				raw, err := a.readInput(args[0])
				if err != nil {
					return err
				}
				return a.printReceipt(a.eng.ImportTarchive(a.intent, raw))
			},
		},
		&cobra.Command{
			Use:   "get <address>",
			Short: "Print the files of a tarchive",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				fs, err := a.eng.GetTarchive(a.intent, model.Address(args[0]))
				if err != nil {
					return err
				}
				return a.print(fs)
			},
		},
	)
	return cmd
}

func graphCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "graph", Short: "Immutable graph entries (hex content)"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "create <name> <hex>",
			Short: "Create a graph entry",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.printReceipt(a.eng.CreateGraphEntry(a.intent, args[0], args[1]))
			},
		},
		&cobra.Command{
			Use:   "get <address>",
			Short: "Print a graph entry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				g, err := a.eng.GetGraphEntry(a.intent, model.Address(args[0]))
				if err != nil {
					return err
				}
				return a.print(g)
			},
		},
	)
	return cmd
}

func pnrCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "pnr", Short: "Name registry entries"}

	write := func(use, short string, op func(*engine.Engine, model.Intent, string, model.PNRRecords) (model.Receipt, error)) *cobra.Command {
		var specs []string
		c := &cobra.Command{
			Use:   use + " <name> --record key=address,type,ttl ...",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				records, err := parseRecords(specs)
				if err != nil {
					return err
				}
				return a.printReceipt(op(a.eng, a.intent, args[0], records))
			},
		}
		c.Flags().StringArrayVarP(&specs, "record", "r", nil, "record as key=address,type,ttl")
		return c
	}

	cmd.AddCommand(
		write("create", "Create or replace an entry", (*engine.Engine).CreatePNR),
		write("update", "Replace the records of an existing entry", (*engine.Engine).UpdatePNR),
		write("append", "Merge records into an entry", (*engine.Engine).AppendPNR),
		&cobra.Command{
			Use:   "get <name>",
			Short: "Print an entry's records",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				records, err := a.eng.GetPNR(a.intent, args[0])
				if err != nil {
					return err
				}
				return a.print(records)
			},
		},
	)
	return cmd
}

func kvCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "kv", Short: "Bucketed key-value objects (base64 content)"}

	var file string
	put := &cobra.Command{
		Use:   "put <bucket> <object> [base64]",
		Short: "Store an object from base64 text or --file",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var content string
			switch {
			case file != "":
				b, err := a.readInput(file)
				if err != nil {
					return err
				}
				content = base64.StdEncoding.EncodeToString(b)
			case len(args) == 3:
				content = args[2]
			default:
				return model.NewError(model.ErrCodeInvalidRequest, "content or --file is required")
			}
			return a.printReceipt(a.eng.PutKeyValue(a.intent, args[0], args[1], content))
		},
	}
	put.Flags().StringVarP(&file, "file", "f", "", "read raw bytes from a file (- for stdin)")

	cmd.AddCommand(
		put,
		&cobra.Command{
			Use:   "get <bucket> <object>",
			Short: "Print an object",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				content, err := a.eng.GetKeyValue(a.intent, args[0], args[1])
				if err != nil {
					return err
				}
				return a.print(map[string]string{"content": content})
			},
		},
	)
	return cmd
}
