package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/zeromicro/go-zero/core/limit"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"
)

// RateLimitMiddleware 按申请的ID数量扣减令牌，批量接口 count=N 消耗 N 个令牌
type RateLimitMiddleware struct {
	limiter *limit.TokenLimiter
}

func NewRateLimitMiddleware(limiter *limit.TokenLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

func (m *RateLimitMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.limiter == nil {
			next(w, r)
			return
		}

		tokens := requestedTokens(r)
		if m.limiter.AllowN(time.Now(), tokens) {
			next(w, r)
		} else {
			logx.WithContext(r.Context()).Slowf("rate limit exceeded for %s %s, tokens=%d", r.Method, r.URL.Path, tokens)
			httpx.ErrorCtx(r.Context(), w, NewRateLimitError())
		}
	}
}

// requestedTokens 参数非法时按 1 计，由后续参数校验拒绝
func requestedTokens(r *http.Request) int {
	count, err := strconv.Atoi(r.URL.Query().Get("count"))
	if err != nil || count < 1 {
		return 1
	}
	return count
}

// RateLimitError 限流错误
type RateLimitError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewRateLimitError() *RateLimitError {
	return &RateLimitError{
		Code:    429,
		Message: "Too many requests, please try again later",
	}
}

func (e *RateLimitError) Error() string {
	return e.Message
}
