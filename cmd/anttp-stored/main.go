// Command anttp-stored serves a local storage backend over gRPC so that
// anttp nodes can use it for the network intent.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"google.golang.org/grpc"

	"github.com/willief/AntTP-tutorial/internal/logging"
	"github.com/willief/AntTP-tutorial/storage/grpcstore"
	"github.com/willief/AntTP-tutorial/storage/registry"

	_ "github.com/willief/AntTP-tutorial/storage/ipfs"
	_ "github.com/willief/AntTP-tutorial/storage/localfs"
	_ "github.com/willief/AntTP-tutorial/storage/memory"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := pflag.NewFlagSet("anttp-stored", pflag.ContinueOnError)
	listen := fs.String("listen", "127.0.0.1:7777", "listen address")
	backend := fs.String("backend", "localfs", "storage backend name")
	listBackends := fs.Bool("list-backends", false, "list supported backends and exit")
	maxMsg := fs.Int("max-msg-bytes", 0, "max gRPC message size (0 uses the gRPC default)")
	logLevel := fs.String("log-level", "info", "debug, info, warn or error")
	logFormat := fs.String("log-format", "json", "json or text")

	registry.RegisterFlags(fs, registry.UsageDaemon)

	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}
	if *listBackends {
		for _, b := range registry.List(registry.UsageDaemon) {
			if b.Description == "" {
				_, _ = fmt.Fprintf(os.Stdout, "%s\n", b.Name)
				continue
			}
			_, _ = fmt.Fprintf(os.Stdout, "%s\t%s\n", b.Name, b.Description)
		}
		return 0
	}

	log, err := logging.New(*logLevel, *logFormat, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	store, closeFn, err := registry.Open(*backend, registry.UsageDaemon)
	if err != nil {
		log.Error("open backend", "backend", *backend, "error", err)
		return 2
	}
	if closeFn != nil {
		defer closeFn()
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		log.Error("listen", "addr", *listen, "error", err)
		return 1
	}

	var opts []grpc.ServerOption
	if *maxMsg > 0 {
		opts = append(opts, grpc.MaxRecvMsgSize(*maxMsg), grpc.MaxSendMsgSize(*maxMsg))
	}
	s := grpc.NewServer(opts...)
	grpcstore.RegisterKeyedStoreServer(s, &grpcstore.Server{Backend: store})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		s.GracefulStop()
	}()

	log.Info("listening", "addr", lis.Addr().String(), "backend", *backend)
	if err := s.Serve(lis); err != nil {
		log.Error("serve", "error", err)
		return 1
	}
	return 0
}
