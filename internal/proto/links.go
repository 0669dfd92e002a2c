package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

type ShortenRequest struct {
	Url             string `json:"url"`
	ExpirationHours int32  `json:"expirationHours,omitempty"`
}

type LinkStatsRequest struct {
	ShortCode string `json:"shortCode"`
}

type LinkReply struct {
	ShortCode   string `json:"shortCode"`
	ShortUrl    string `json:"shortUrl"`
	OriginalUrl string `json:"originalUrl"`
	ClickCount  int64  `json:"clickCount"`
	CreatedAt   string `json:"createdAt"`
	ExpiresAt   string `json:"expiresAt"`
	Active      bool   `json:"active"`
}

type SystemStatsReply struct {
	TotalLinks  int64 `json:"totalLinks"`
	TotalClicks int64 `json:"totalClicks"`
	ActiveLinks int64 `json:"activeLinks"`
}

// LinkServiceServer is the server API for the links.LinkService service.
type LinkServiceServer interface {
	Shorten(context.Context, *ShortenRequest) (*LinkReply, error)
	GetLinkStats(context.Context, *LinkStatsRequest) (*LinkReply, error)
	GetSystemStats(context.Context, *emptypb.Empty) (*SystemStatsReply, error)
}

func RegisterLinkServiceServer(s grpc.ServiceRegistrar, srv LinkServiceServer) {
	s.RegisterService(&_LinkService_serviceDesc, srv)
}

func _LinkService_Shorten_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ShortenRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LinkServiceServer).Shorten(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/links.LinkService/Shorten",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LinkServiceServer).Shorten(ctx, req.(*ShortenRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _LinkService_GetLinkStats_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(LinkStatsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LinkServiceServer).GetLinkStats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/links.LinkService/GetLinkStats",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LinkServiceServer).GetLinkStats(ctx, req.(*LinkStatsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _LinkService_GetSystemStats_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LinkServiceServer).GetSystemStats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/links.LinkService/GetSystemStats",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LinkServiceServer).GetSystemStats(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

var _LinkService_serviceDesc = grpc.ServiceDesc{
	ServiceName: "links.LinkService",
	HandlerType: (*LinkServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Shorten",
			Handler:    _LinkService_Shorten_Handler,
		},
		{
			MethodName: "GetLinkStats",
			Handler:    _LinkService_GetLinkStats_Handler,
		},
		{
			MethodName: "GetSystemStats",
			Handler:    _LinkService_GetSystemStats_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "links.proto",
}

// LinkServiceClient calls links.LinkService using the JSON codec.
type LinkServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewLinkServiceClient(cc grpc.ClientConnInterface) *LinkServiceClient {
	return &LinkServiceClient{cc: cc}
}

func (c *LinkServiceClient) Shorten(ctx context.Context, in *ShortenRequest, opts ...grpc.CallOption) (*LinkReply, error) {
	out := new(LinkReply)
	if err := c.invoke(ctx, "/links.LinkService/Shorten", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *LinkServiceClient) GetLinkStats(ctx context.Context, in *LinkStatsRequest, opts ...grpc.CallOption) (*LinkReply, error) {
	out := new(LinkReply)
	if err := c.invoke(ctx, "/links.LinkService/GetLinkStats", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *LinkServiceClient) GetSystemStats(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*SystemStatsReply, error) {
	out := new(SystemStatsReply)
	if err := c.invoke(ctx, "/links.LinkService/GetSystemStats", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *LinkServiceClient) invoke(ctx context.Context, method string, in, out interface{}, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}
