package handler

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MikhailRaia/link-shortener/internal/model"
	"github.com/MikhailRaia/link-shortener/internal/proto"
	"github.com/MikhailRaia/link-shortener/internal/storage"
	"github.com/MikhailRaia/link-shortener/internal/validator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// LinkGRPCServer exposes LinkService over gRPC.
type LinkGRPCServer struct {
	linkService LinkService
}

func NewLinkGRPCServer(linkService LinkService) *LinkGRPCServer {
	return &LinkGRPCServer{
		linkService: linkService,
	}
}

func (s *LinkGRPCServer) Shorten(ctx context.Context, req *proto.ShortenRequest) (*proto.LinkReply, error) {
	if strings.TrimSpace(req.Url) == "" {
		return nil, status.Error(codes.InvalidArgument, "URL is required")
	}

	createReq := model.CreateLinkRequest{URL: req.Url}
	if req.ExpirationHours != 0 {
		hours := int(req.ExpirationHours)
		createReq.ExpirationHours = &hours
	}

	resp, err := s.linkService.CreateShortLink(ctx, createReq)
	if err != nil {
		var vErr *validator.ValidationError
		if errors.As(err, &vErr) {
			return nil, status.Error(codes.InvalidArgument, vErr.Message)
		}
		return nil, status.Errorf(codes.Internal, "failed to shorten URL: %v", err)
	}

	return toLinkReply(resp), nil
}

func (s *LinkGRPCServer) GetLinkStats(ctx context.Context, req *proto.LinkStatsRequest) (*proto.LinkReply, error) {
	if req.ShortCode == "" {
		return nil, status.Error(codes.InvalidArgument, "shortCode is required")
	}

	resp, err := s.linkService.GetLinkStats(ctx, req.ShortCode)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, status.Error(codes.NotFound, "Link not found")
		}
		return nil, status.Errorf(codes.Internal, "failed to get link stats: %v", err)
	}

	return toLinkReply(resp), nil
}

func (s *LinkGRPCServer) GetSystemStats(ctx context.Context, _ *emptypb.Empty) (*proto.SystemStatsReply, error) {
	stats, err := s.linkService.GetSystemStats(ctx)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to get system stats: %v", err)
	}

	return &proto.SystemStatsReply{
		TotalLinks:  stats.TotalLinks,
		TotalClicks: stats.TotalClicks,
		ActiveLinks: stats.ActiveLinks,
	}, nil
}

func toLinkReply(resp model.LinkResponse) *proto.LinkReply {
	return &proto.LinkReply{
		ShortCode:   resp.ShortCode,
		ShortUrl:    resp.ShortURL,
		OriginalUrl: resp.OriginalURL,
		ClickCount:  resp.ClickCount,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		ExpiresAt:   resp.ExpiresAt.Format(time.RFC3339),
		Active:      resp.Active,
	}
}
