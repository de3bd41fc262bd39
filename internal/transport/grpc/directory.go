package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified name of the directory service.
const ServiceName = "personnel.v1.EmployeeDirectory"

const (
	methodSearchEmployees    = "SearchEmployees"
	methodGetEmployee        = "GetEmployee"
	methodCreateEmployee     = "CreateEmployee"
	methodUpdateEmployee     = "UpdateEmployee"
	methodDeleteEmployee     = "DeleteEmployee"
	methodLogin              = "Login"
	methodListDepartments    = "ListDepartments"
	methodListCertifications = "ListCertifications"
)

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// DirectoryServer is the server API for the directory service.
type DirectoryServer interface {
	SearchEmployees(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListDepartments(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListCertifications(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(DirectoryServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func methodDesc(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(DirectoryServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod(name),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(DirectoryServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// DirectoryServiceDesc describes the directory service for registration.
var DirectoryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DirectoryServer)(nil),
	Methods: []grpc.MethodDesc{
		methodDesc(methodSearchEmployees, DirectoryServer.SearchEmployees),
		methodDesc(methodGetEmployee, DirectoryServer.GetEmployee),
		methodDesc(methodCreateEmployee, DirectoryServer.CreateEmployee),
		methodDesc(methodUpdateEmployee, DirectoryServer.UpdateEmployee),
		methodDesc(methodDeleteEmployee, DirectoryServer.DeleteEmployee),
		methodDesc(methodLogin, DirectoryServer.Login),
		methodDesc(methodListDepartments, DirectoryServer.ListDepartments),
		methodDesc(methodListCertifications, DirectoryServer.ListCertifications),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "personnel/v1/directory.proto",
}

func RegisterDirectoryServer(s grpc.ServiceRegistrar, srv DirectoryServer) {
	s.RegisterService(&DirectoryServiceDesc, srv)
}

// DirectoryClient calls the directory service.
type DirectoryClient struct {
	cc grpc.ClientConnInterface
}

func NewDirectoryClient(cc grpc.ClientConnInterface) *DirectoryClient {
	return &DirectoryClient{cc: cc}
}

func (c *DirectoryClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DirectoryClient) SearchEmployees(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodSearchEmployees, in, opts...)
}

func (c *DirectoryClient) GetEmployee(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodGetEmployee, in, opts...)
}

func (c *DirectoryClient) CreateEmployee(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodCreateEmployee, in, opts...)
}

func (c *DirectoryClient) UpdateEmployee(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodUpdateEmployee, in, opts...)
}

func (c *DirectoryClient) DeleteEmployee(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodDeleteEmployee, in, opts...)
}

func (c *DirectoryClient) Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodLogin, in, opts...)
}

func (c *DirectoryClient) ListDepartments(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodListDepartments, in, opts...)
}

func (c *DirectoryClient) ListCertifications(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodListCertifications, in, opts...)
}
