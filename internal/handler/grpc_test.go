package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/MikhailRaia/link-shortener/internal/model"
	"github.com/MikhailRaia/link-shortener/internal/proto"
	"github.com/MikhailRaia/link-shortener/internal/storage"
	"github.com/MikhailRaia/link-shortener/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

func TestLinkGRPCServer_Shorten(t *testing.T) {
	tests := []struct {
		name       string
		req        *proto.ShortenRequest
		serviceErr error
		wantCode   codes.Code
		wantHours  *int
	}{
		{
			name:     "Default expiration",
			req:      &proto.ShortenRequest{Url: "https://example.com"},
			wantCode: codes.OK,
		},
		{
			name:      "Explicit expiration",
			req:       &proto.ShortenRequest{Url: "https://example.com", ExpirationHours: 6},
			wantCode:  codes.OK,
			wantHours: intPtr(6),
		},
		{
			name:     "Empty URL",
			req:      &proto.ShortenRequest{Url: "  "},
			wantCode: codes.InvalidArgument,
		},
		{
			name:       "Rejected URL",
			req:        &proto.ShortenRequest{Url: "http://localhost"},
			serviceErr: &validator.ValidationError{Message: "Domain is blocked: localhost"},
			wantCode:   codes.InvalidArgument,
		},
		{
			name:       "Storage failure",
			req:        &proto.ShortenRequest{Url: "https://example.com"},
			serviceErr: errors.New("db down"),
			wantCode:   codes.Internal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotReq model.CreateLinkRequest
			svc := &mockLinkService{
				createShortLinkFunc: func(ctx context.Context, req model.CreateLinkRequest) (model.LinkResponse, error) {
					gotReq = req
					return sampleLink, tt.serviceErr
				},
			}

			reply, err := NewLinkGRPCServer(svc).Shorten(context.Background(), tt.req)

			assert.Equal(t, tt.wantCode, status.Code(err))
			if tt.wantCode != codes.OK {
				assert.Nil(t, reply)
				return
			}

			require.NotNil(t, reply)
			assert.Equal(t, sampleLink.ShortURL, reply.ShortUrl)
			assert.Equal(t, "2025-01-02T00:00:00Z", reply.ExpiresAt)
			assert.Equal(t, tt.wantHours, gotReq.ExpirationHours)
		})
	}
}

func TestLinkGRPCServer_GetLinkStats(t *testing.T) {
	svc := &mockLinkService{
		getLinkStatsFunc: func(ctx context.Context, code string) (model.LinkResponse, error) {
			if code == "abc123" {
				return sampleLink, nil
			}
			return model.LinkResponse{}, storage.ErrNotFound
		},
	}
	server := NewLinkGRPCServer(svc)

	reply, err := server.GetLinkStats(context.Background(), &proto.LinkStatsRequest{ShortCode: "abc123"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), reply.ClickCount)
	assert.True(t, reply.Active)

	_, err = server.GetLinkStats(context.Background(), &proto.LinkStatsRequest{ShortCode: "missing"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = server.GetLinkStats(context.Background(), &proto.LinkStatsRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestLinkGRPCServer_GetSystemStats(t *testing.T) {
	svc := &mockLinkService{
		getSystemStatsFunc: func(ctx context.Context) (model.SystemStats, error) {
			return model.SystemStats{TotalLinks: 5, TotalClicks: 9, ActiveLinks: 4}, nil
		},
	}

	reply, err := NewLinkGRPCServer(svc).GetSystemStats(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, &proto.SystemStatsReply{TotalLinks: 5, TotalClicks: 9, ActiveLinks: 4}, reply)
}
