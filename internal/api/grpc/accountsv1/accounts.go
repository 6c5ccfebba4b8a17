// Package accountsv1 holds the client, server interface and service
// descriptor of accounts.v1.AccountsService (api/proto/accounts/v1/accounts.proto).
// Messages are protobuf well-known types, so no generated message code is needed.
package accountsv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "accounts.v1.AccountsService"

const (
	AccountsService_CreateAccount_FullMethodName = "/accounts.v1.AccountsService/CreateAccount"
	AccountsService_ListAccounts_FullMethodName  = "/accounts.v1.AccountsService/ListAccounts"
	AccountsService_GetAccount_FullMethodName    = "/accounts.v1.AccountsService/GetAccount"
	AccountsService_UpdateAccount_FullMethodName = "/accounts.v1.AccountsService/UpdateAccount"
	AccountsService_DeleteAccount_FullMethodName = "/accounts.v1.AccountsService/DeleteAccount"
)

// Field names of the UpdateAccount request struct.
const (
	UpdateFieldID      = "id"
	UpdateFieldAccount = "account"
)

// NewUpdateRequest builds the UpdateAccount request for target id.
func NewUpdateRequest(id string, account *structpb.Struct) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		UpdateFieldID:      structpb.NewStringValue(id),
		UpdateFieldAccount: structpb.NewStructValue(account),
	}}
}

// AccountsServiceClient is the client API for AccountsService.
type AccountsServiceClient interface {
	CreateAccount(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListAccounts(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error)
	GetAccount(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	UpdateAccount(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	DeleteAccount(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type accountsServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewAccountsServiceClient returns a client bound to cc.
func NewAccountsServiceClient(cc grpc.ClientConnInterface) AccountsServiceClient {
	return &accountsServiceClient{cc: cc}
}

func (c *accountsServiceClient) CreateAccount(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, AccountsService_CreateAccount_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *accountsServiceClient) ListAccounts(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, AccountsService_ListAccounts_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *accountsServiceClient) GetAccount(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, AccountsService_GetAccount_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *accountsServiceClient) UpdateAccount(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, AccountsService_UpdateAccount_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *accountsServiceClient) DeleteAccount(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, AccountsService_DeleteAccount_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// AccountsServiceServer is the server API for AccountsService.
type AccountsServiceServer interface {
	CreateAccount(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListAccounts(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GetAccount(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	UpdateAccount(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteAccount(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
}

// UnimplementedAccountsServiceServer can be embedded to satisfy the interface
// with Unimplemented errors for methods a server does not provide.
type UnimplementedAccountsServiceServer struct{}

func (UnimplementedAccountsServiceServer) CreateAccount(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateAccount not implemented")
}
func (UnimplementedAccountsServiceServer) ListAccounts(context.Context, *emptypb.Empty) (*structpb.ListValue, error) {
	return nil, status.Error(codes.Unimplemented, "method ListAccounts not implemented")
}
func (UnimplementedAccountsServiceServer) GetAccount(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetAccount not implemented")
}
func (UnimplementedAccountsServiceServer) UpdateAccount(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateAccount not implemented")
}
func (UnimplementedAccountsServiceServer) DeleteAccount(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteAccount not implemented")
}

// RegisterAccountsServiceServer registers srv on s.
func RegisterAccountsServiceServer(s grpc.ServiceRegistrar, srv AccountsServiceServer) {
	s.RegisterService(&AccountsService_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req, Resp any](fullMethod string, call func(AccountsServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AccountsServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AccountsServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// AccountsService_ServiceDesc is the grpc.ServiceDesc for AccountsService.
var AccountsService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateAccount",
			Handler:    unaryHandler(AccountsService_CreateAccount_FullMethodName, AccountsServiceServer.CreateAccount),
		},
		{
			MethodName: "ListAccounts",
			Handler:    unaryHandler(AccountsService_ListAccounts_FullMethodName, AccountsServiceServer.ListAccounts),
		},
		{
			MethodName: "GetAccount",
			Handler:    unaryHandler(AccountsService_GetAccount_FullMethodName, AccountsServiceServer.GetAccount),
		},
		{
			MethodName: "UpdateAccount",
			Handler:    unaryHandler(AccountsService_UpdateAccount_FullMethodName, AccountsServiceServer.UpdateAccount),
		},
		{
			MethodName: "DeleteAccount",
			Handler:    unaryHandler(AccountsService_DeleteAccount_FullMethodName, AccountsServiceServer.DeleteAccount),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "accounts/v1/accounts.proto",
}
