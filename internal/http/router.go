package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) HandleHandler(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterHealthRoutes 健康检查
func (r *Router) RegisterHealthRoutes() {
	r.Handle("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, Ok("ok"))
	})
}

// RegisterDigestAdminRoutes: 管理页面（仅管理员）
func (r *Router) RegisterDigestAdminRoutes(h *DigestAdminHandler) {
	r.HandleHandler(DigestAdminPath, RequireAdmin(http.HandlerFunc(h.ServeForm), r.logger))
	r.HandleHandler(DigestAdminPath+"/staged.xlsx", RequireAdmin(http.HandlerFunc(h.ExportStaged), r.logger))
}

// RegisterMetatagRoutes: 元数据标签目录
func (r *Router) RegisterMetatagRoutes(h *MetatagHandler) {
	r.HandleHandler("/admin/api/v1/metatags", RequireAdmin(h, r.logger))
	r.HandleHandler("/admin/api/v1/metatags/", RequireAdmin(h, r.logger))
}
