// Package grpcstore carries storage.Backend over gRPC. It backs the network
// intent: the engine talks to a remote anttp-stored daemon through Client.
package grpcstore

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/willief/AntTP-tutorial/storage"
)

// Client implements storage.Backend over the KeyedStore gRPC service.
type Client struct {
	cc     *grpc.ClientConn
	client KeyedStoreClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

var (
	_ storage.Backend = (*Client)(nil)
	_ storage.Deleter = (*Client)(nil)
)

type DialOptions struct {
	// Timeout bounds how long Dial waits for the connection to become ready.
	// Zero returns immediately and connects lazily on the first RPC.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int

	// Extra is appended to the dial options (custom dialers, TLS).
	Extra []grpc.DialOption
}

func (o DialOptions) grpcOptions() []grpc.DialOption {
	opts := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	if o.MaxMsgBytes > 0 {
		opts = append(opts, grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(o.MaxMsgBytes),
			grpc.MaxCallSendMsgSize(o.MaxMsgBytes),
		))
	}
	return append(opts, o.Extra...)
}

// Dial connects to an anttp-stored daemon at target.
func Dial(target string, opts DialOptions) (*Client, error) {
	cc, err := grpc.NewClient(target, opts.grpcOptions()...)
	if err != nil {
		return nil, fmt.Errorf("grpcstore: dial %s: %w", target, err)
	}
	if opts.Timeout > 0 {
		if err := waitReady(cc, opts.Timeout); err != nil {
			_ = cc.Close()
			return nil, fmt.Errorf("grpcstore: dial %s: %w", target, err)
		}
	}
	return NewClient(cc), nil
}

func waitReady(cc *grpc.ClientConn, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cc.Connect()
	for {
		state := cc.GetState()
		if state == connectivity.Ready {
			return nil
		}
		if !cc.WaitForStateChange(ctx, state) {
			return fmt.Errorf("not ready after %s (last state %s)", timeout, state)
		}
	}
}

// NewClient wraps an existing connection. Close closes cc.
func NewClient(cc *grpc.ClientConn) *Client {
	return &Client{cc: cc, client: NewKeyedStoreClient(cc)}
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

func (c *Client) Put(key string, value []byte) error {
	if key == "" {
		return storage.ErrInvalidKey
	}
	ctx, cancel := c.ctx()
	defer cancel()

	ctx = metadata.AppendToOutgoingContext(ctx, keyMetadata, key)
	if _, err := c.client.Put(ctx, wrapperspb.Bytes(value)); err != nil {
		return mapRPC(err)
	}
	return nil
}

func (c *Client) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, storage.ErrInvalidKey
	}
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Get(ctx, wrapperspb.String(key))
	if err != nil {
		return nil, mapRPC(err)
	}
	b := reply.GetValue()
	if b == nil {
		b = []byte{}
	}
	return b, nil
}

func (c *Client) Has(key string) bool {
	if key == "" {
		return false
	}
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Has(ctx, wrapperspb.String(key))
	if err != nil {
		return false
	}
	return reply.GetValue()
}

func (c *Client) Delete(key string) error {
	if key == "" {
		return storage.ErrInvalidKey
	}
	ctx, cancel := c.ctx()
	defer cancel()

	if _, err := c.client.Delete(ctx, wrapperspb.String(key)); err != nil {
		return mapRPC(err)
	}
	return nil
}

func (c *Client) ctx() (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.Timeout)
}
