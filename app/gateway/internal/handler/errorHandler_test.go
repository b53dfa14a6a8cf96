package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/cnirrad/snowflake/app/gateway/internal/middleware"
	"github.com/cnirrad/snowflake/app/gateway/internal/types"
	"github.com/cnirrad/snowflake/app/pkg/xerr"
	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/logx"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorHandler(t *testing.T) {
	logx.Disable()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   uint32
	}{
		{
			name:       "param error",
			err:        xerr.NewErrCodeMsg(xerr.REQUEST_PARAM_ERROR, "count"),
			wantStatus: http.StatusBadRequest,
			wantCode:   xerr.REQUEST_PARAM_ERROR,
		},
		{
			name:       "rpc clock rollback",
			err:        errors.Wrap(status.Error(codes.Code(xerr.CLOCK_ROLLBACK_ERROR), "clock"), "NextId"),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   xerr.CLOCK_ROLLBACK_ERROR,
		},
		{
			name:       "rpc unavailable",
			err:        status.Error(codes.Unavailable, "connection refused"),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   xerr.SERVER_COMMON_ERROR,
		},
		{
			name:       "unknown",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   xerr.SERVER_COMMON_ERROR,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := ErrorHandler(context.Background(), tt.err)
			if code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, code)
			}
			resp, ok := body.(*types.ErrorResp)
			if !ok {
				t.Fatalf("Expected *types.ErrorResp, got %T", body)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("Expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestErrorHandler_MiddlewareErrors(t *testing.T) {
	code, body := ErrorHandler(context.Background(), middleware.NewRateLimitError())
	if code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", code)
	}
	if _, ok := body.(*middleware.RateLimitError); !ok {
		t.Errorf("Expected *middleware.RateLimitError body, got %T", body)
	}

	code, _ = ErrorHandler(context.Background(), middleware.NewCircuitBreakerError())
	if code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", code)
	}
}
