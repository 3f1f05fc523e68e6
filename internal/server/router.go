// internal/server/router.go
//
// 本檔負責 HTTP 路由註冊與中介層。
//   - handler.go 定義「如何處理請求」
//   - router.go 定義「請求如何被導向」
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router 建立並回傳整個 HTTP 處理鏈。
// 所有端點同時掛在根路徑與 /api/v1 下。
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", s.health)
	r.Group(s.routes)
	r.Route("/api/v1", s.routes)

	return r
}

// routes 定義 API v1 的端點：
//
//	POST /clients
//	GET  /clients/{nationalID}
//	POST /clients/{nationalID}/accounts
//	GET  /accounts
//	GET  /accounts/{id}
//	POST /accounts/{id}/deposit
//	POST /accounts/{id}/withdraw
//	GET  /accounts/{id}/statement
func (s *Server) routes(r chi.Router) {
	r.Route("/clients", func(r chi.Router) {
		r.Post("/", s.createClient)
		r.Get("/{nationalID}", s.getClient)
		r.Post("/{nationalID}/accounts", s.openAccount)
	})
	r.Route("/accounts", func(r chi.Router) {
		r.Get("/", s.listAccounts)
		r.Get("/{id}", s.getAccount)
		r.Post("/{id}/deposit", s.deposit)
		r.Post("/{id}/withdraw", s.withdraw)
		r.Get("/{id}/statement", s.statement)
	})
}

// requestLogger 以 slog 紀錄每個請求的方法、路徑、狀態碼與耗時。
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
