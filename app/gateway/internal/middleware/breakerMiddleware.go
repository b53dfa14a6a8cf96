package middleware

import (
	"net/http"
	"strconv"

	"github.com/zeromicro/go-zero/core/breaker"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"
)

// BreakerMiddleware 熔断中间件，idgen 连续返回 5xx 时快速失败
type BreakerMiddleware struct {
	brk breaker.Breaker
}

func NewBreakerMiddleware(brk breaker.Breaker) *BreakerMiddleware {
	return &BreakerMiddleware{
		brk: brk,
	}
}

func (m *BreakerMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.brk == nil {
			next(w, r)
			return
		}

		promise, err := m.brk.Allow()
		if err != nil {
			logx.WithContext(r.Context()).Slowf("circuit breaker %s open for %s %s", m.brk.Name(), r.Method, r.URL.Path)
			httpx.ErrorCtx(r.Context(), w, NewCircuitBreakerError())
			return
		}

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		// 4xx 为调用方问题，不计入失败
		if rw.statusCode >= http.StatusInternalServerError {
			promise.Reject("status " + strconv.Itoa(rw.statusCode))
		} else {
			promise.Accept()
		}
	}
}

// responseWriter 记录状态码，熔断和指标中间件共用
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// CircuitBreakerError 熔断错误
type CircuitBreakerError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewCircuitBreakerError() *CircuitBreakerError {
	return &CircuitBreakerError{
		Code:    503,
		Message: "Id service temporarily unavailable, please try again later",
	}
}

func (e *CircuitBreakerError) Error() string {
	return e.Message
}
