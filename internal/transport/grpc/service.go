package grpc_server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const catalogServiceName = "coursehub.catalog.v1.CatalogService"

// CatalogServiceServer is the read-only catalog API. Requests and responses
// use well-known types so no generated code is needed.
type CatalogServiceServer interface {
	GetCourse(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	ListCourses(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListCourseDetails(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListModules(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListLessons(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&catalogServiceDesc, srv)
}

func getCourseHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).GetCourse(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + catalogServiceName + "/GetCourse",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CatalogServiceServer).GetCourse(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// structHandler builds the method handler for a Struct-in/Struct-out call.
func structHandler(method string, call func(CatalogServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(CatalogServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + catalogServiceName + "/" + method,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(CatalogServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var catalogServiceDesc = grpc.ServiceDesc{
	ServiceName: catalogServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetCourse", Handler: getCourseHandler},
		structHandler("ListCourses", CatalogServiceServer.ListCourses),
		structHandler("ListCourseDetails", CatalogServiceServer.ListCourseDetails),
		structHandler("ListModules", CatalogServiceServer.ListModules),
		structHandler("ListLessons", CatalogServiceServer.ListLessons),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "coursehub/catalog/v1/catalog.proto",
}

type CatalogServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogServiceClient(cc grpc.ClientConnInterface) *CatalogServiceClient {
	return &CatalogServiceClient{cc: cc}
}

func (c *CatalogServiceClient) GetCourse(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+catalogServiceName+"/GetCourse", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CatalogServiceClient) invokeStruct(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+catalogServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CatalogServiceClient) ListCourses(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invokeStruct(ctx, "ListCourses", in, opts...)
}

func (c *CatalogServiceClient) ListCourseDetails(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invokeStruct(ctx, "ListCourseDetails", in, opts...)
}

func (c *CatalogServiceClient) ListModules(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invokeStruct(ctx, "ListModules", in, opts...)
}

func (c *CatalogServiceClient) ListLessons(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invokeStruct(ctx, "ListLessons", in, opts...)
}
