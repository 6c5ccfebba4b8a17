// Package grpcapi implements accounts.v1.AccountsService on top of the account
// service. Handlers only convert between wire and domain types and map errors
// to status codes.
package grpcapi

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/tinoosan/accounts/internal/api/grpc/accountsv1"
	"github.com/tinoosan/accounts/internal/registry"
	"github.com/tinoosan/accounts/internal/service/account"
)

// Gateway exposes accounts.v1 gRPC operations.
type Gateway struct {
	accountsv1.UnimplementedAccountsServiceServer
	svc account.Service
}

// New creates a gateway backed by svc.
func New(svc account.Service) *Gateway {
	return &Gateway{svc: svc}
}

// CreateAccount appends one account record.
func (g *Gateway) CreateAccount(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "account is required")
	}
	acc, err := registry.FromMap(in.AsMap())
	if err != nil {
		return nil, statusFromError(err)
	}
	created, err := g.svc.Create(ctx, acc)
	if err != nil {
		return nil, statusFromError(err)
	}
	return accountToProto(created)
}

// ListAccounts returns all account records in insertion order.
func (g *Gateway) ListAccounts(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	list, err := g.svc.List(ctx)
	if err != nil {
		return nil, statusFromError(err)
	}
	out := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(list))}
	for _, a := range list {
		s, err := accountToProto(a)
		if err != nil {
			return nil, err
		}
		out.Values = append(out.Values, structpb.NewStructValue(s))
	}
	return out, nil
}

// GetAccount returns one account record by id.
func (g *Gateway) GetAccount(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	id, err := registry.NormalizeID(in.GetValue())
	if err != nil {
		return nil, statusFromError(err)
	}
	acc, err := g.svc.Get(ctx, id)
	if err != nil {
		return nil, statusFromError(err)
	}
	return accountToProto(acc)
}

// UpdateAccount replaces the record for the request's id with its account field.
func (g *Gateway) UpdateAccount(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	fields := in.GetFields()
	rawID, ok := fields[accountsv1.UpdateFieldID]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	id, err := registry.NormalizeID(rawID.AsInterface())
	if err != nil {
		return nil, statusFromError(err)
	}
	replacement := fields[accountsv1.UpdateFieldAccount].GetStructValue()
	if replacement == nil {
		return nil, status.Error(codes.InvalidArgument, "account is required")
	}
	m := replacement.AsMap()
	if _, ok := m[registry.IDField]; !ok {
		m[registry.IDField] = id
	}
	acc, err := registry.FromMap(m)
	if err != nil {
		return nil, statusFromError(err)
	}
	updated, err := g.svc.Update(ctx, id, acc)
	if err != nil {
		return nil, statusFromError(err)
	}
	return accountToProto(updated)
}

// DeleteAccount removes one account record by id.
func (g *Gateway) DeleteAccount(ctx context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error) {
	id, err := registry.NormalizeID(in.GetValue())
	if err != nil {
		return nil, statusFromError(err)
	}
	if err := g.svc.Delete(ctx, id); err != nil {
		return nil, statusFromError(err)
	}
	return &emptypb.Empty{}, nil
}

func accountToProto(a registry.Account) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(a.ToMap())
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode account %q: %v", a.ID, err)
	}
	return s, nil
}
