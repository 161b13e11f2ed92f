package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"message-digest-admin/internal/metatag"

	"go.uber.org/zap"
)

const metatagsPrefix = "/admin/api/v1/metatags"

// MetatagHandler 元数据标签目录 Handler
type MetatagHandler struct {
	registry *metatag.Registry
	logger   *zap.Logger
}

func NewMetatagHandler(registry *metatag.Registry, logger *zap.Logger) *MetatagHandler {
	return &MetatagHandler{registry: registry, logger: logger}
}

func (h *MetatagHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")
	switch {
	case path == metatagsPrefix && r.Method == http.MethodGet:
		h.List(w, r)
	case path == metatagsPrefix+"/validate" && r.Method == http.MethodGet:
		h.Validate(w, r)
	case path == metatagsPrefix+"/jsonld" && r.Method == http.MethodPost:
		h.JSONLD(w, r)
	case strings.HasPrefix(path, metatagsPrefix+"/") && strings.HasSuffix(path, "/values") && r.Method == http.MethodGet:
		id := strings.TrimSuffix(strings.TrimPrefix(path, metatagsPrefix+"/"), "/values")
		h.Values(w, r, id)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// List 查询所有标签（按 weight、id 排序）
func (h *MetatagHandler) List(w http.ResponseWriter, r *http.Request) {
	group := strings.TrimSpace(r.URL.Query().Get("group"))
	var descs []metatag.Descriptor
	if group != "" {
		descs = h.registry.Group(group)
	} else {
		descs = h.registry.Descriptors()
	}
	items := make([]metatag.Info, 0, len(descs))
	for _, d := range descs {
		items = append(items, d.Info())
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"items": items, "total": len(items)}))
}

// Values 查询标签允许值
func (h *MetatagHandler) Values(w http.ResponseWriter, r *http.Request, id string) {
	values, err := h.registry.AllowedValues(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"id": id, "allowed_values": values}))
}

// Validate 校验标签值
func (h *MetatagHandler) Validate(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	value := r.URL.Query().Get("value")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, Fail("id is required"))
		return
	}
	err := h.registry.Check(id, value)
	if errors.Is(err, metatag.ErrUnknownTag) {
		writeJSON(w, http.StatusNotFound, Fail(err.Error()))
		return
	}
	resp := map[string]any{"id": id, "value": value, "valid": err == nil}
	if err != nil {
		resp["reason"] = err.Error()
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

// JSONLD 生成 Schema.org JSON-LD；非法值拒绝输出
func (h *MetatagHandler) JSONLD(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Group  string            `json:"group"`
		Values map[string]string `json:"values"`
	}
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	raw, err := h.registry.EmitJSONLD(payload.Group, payload.Values)
	if err != nil {
		h.logger.Warn("Refused to emit metatag JSON-LD", zap.String("group", payload.Group), zap.Error(err))
		status := http.StatusBadRequest
		if errors.Is(err, metatag.ErrUnknownTag) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, Fail(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "application/ld+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
