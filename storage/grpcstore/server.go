package grpcstore

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/willief/AntTP-tutorial/storage"
)

// Server exposes a storage.Backend over the KeyedStore gRPC service.
type Server struct {
	UnimplementedKeyedStoreServer
	Backend storage.Backend
}

func (s *Server) Put(ctx context.Context, in *wrapperspb.BytesValue) (*emptypb.Empty, error) {
	if s == nil || s.Backend == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing backend")
	}
	md, _ := metadata.FromIncomingContext(ctx)
	keys := md.Get(keyMetadata)
	if len(keys) != 1 || keys[0] == "" {
		return nil, status.Error(codes.InvalidArgument, storage.ErrInvalidKey.Error())
	}
	if err := s.Backend.Put(keys[0], in.GetValue()); err != nil {
		return nil, mapErr(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *Server) Get(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	if s == nil || s.Backend == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing backend")
	}
	key := in.GetValue()
	if key == "" {
		return nil, status.Error(codes.InvalidArgument, storage.ErrInvalidKey.Error())
	}
	b, err := s.Backend.Get(key)
	if err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.Bytes(b), nil
}

func (s *Server) Has(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	if s == nil || s.Backend == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing backend")
	}
	key := in.GetValue()
	if key == "" {
		return nil, status.Error(codes.InvalidArgument, storage.ErrInvalidKey.Error())
	}
	return wrapperspb.Bool(s.Backend.Has(key)), nil
}

// Delete removes a key when the wrapped backend is a storage.Deleter and
// answers Unimplemented otherwise.
func (s *Server) Delete(ctx context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if s == nil || s.Backend == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing backend")
	}
	key := in.GetValue()
	if key == "" {
		return nil, status.Error(codes.InvalidArgument, storage.ErrInvalidKey.Error())
	}
	d, ok := s.Backend.(storage.Deleter)
	if !ok {
		return nil, status.Error(codes.Unimplemented, "backend cannot delete")
	}
	if err := d.Delete(key); err != nil {
		return nil, mapErr(err)
	}
	return &emptypb.Empty{}, nil
}
