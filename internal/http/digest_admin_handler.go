package httpapi

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"message-digest-admin/internal/form"
	"message-digest-admin/internal/service"
	"message-digest-admin/internal/settings"

	"go.uber.org/zap"
)

// DigestAdminPath is the admin page of the staged content form.
const DigestAdminPath = "/admin/config/message-digest"

const maxFormBytes = 1 << 20

// DigestAdminHandler 摘要管理页面 Handler
type DigestAdminHandler struct {
	form     *service.StagedContentForm
	tokens   *form.Tokens
	renderer *form.Renderer
	t        form.Translator
	logger   *zap.Logger
}

func NewDigestAdminHandler(f *service.StagedContentForm, tokens *form.Tokens, t form.Translator, logger *zap.Logger) *DigestAdminHandler {
	if t == nil {
		t = form.Identity{}
	}
	return &DigestAdminHandler{
		form:     f,
		tokens:   tokens,
		renderer: form.NewRenderer(),
		t:        t,
		logger:   logger,
	}
}

// ServeForm handles GET (render) and POST (submit) on DigestAdminPath.
func (h *DigestAdminHandler) ServeForm(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != DigestAdminPath {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.render(w, r, http.StatusOK, nil)
	case http.MethodPost:
		h.submit(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// render builds the form; adjust, when set, is applied before rendering
// (used to keep submitted values and attach errors).
func (h *DigestAdminHandler) render(w http.ResponseWriter, r *http.Request, status int, adjust func(*form.Form)) {
	built, err := h.form.Build(r.Context())
	if err != nil {
		h.logger.Error("Failed to build digest admin form", zap.Error(err))
		http.Error(w, h.t.T("The staged content could not be loaded. Please try again later."), http.StatusInternalServerError)
		return
	}
	if r.Method == http.MethodGet && r.URL.Query().Get("saved") == "1" {
		built.Messages = append(built.Messages, h.t.T("The configuration options have been saved."))
	}
	if adjust != nil {
		adjust(built)
	}
	built.BuildID, built.Token = h.tokens.Issue(built.ID)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := h.renderer.Render(w, built); err != nil {
		h.logger.Error("Failed to render digest admin form", zap.Error(err))
	}
}

func (h *DigestAdminHandler) submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, h.t.T("Invalid form submission."), http.StatusBadRequest)
		return
	}

	values := form.Values{}
	for key := range r.PostForm {
		values[key] = r.PostForm.Get(key)
	}
	keepSubmitted := func(f *form.Form) {
		for i := range f.Fields {
			if v, ok := values.Get(f.Fields[i].Name); ok {
				f.Fields[i].Value = v
			}
		}
	}

	formID, _ := values.Get("form_id")
	buildID, _ := values.Get("form_build_id")
	token, _ := values.Get("form_token")
	if formID != h.form.FormID() || h.tokens.Verify(formID, buildID, token) != nil {
		h.logger.Warn("Rejected digest admin submission with invalid token", zap.String("form_id", formID))
		h.render(w, r, http.StatusBadRequest, func(f *form.Form) {
			keepSubmitted(f)
			f.Errors = append(f.Errors, h.t.T("The form has become outdated. Please review your changes and submit again."))
		})
		return
	}

	if err := h.form.Submit(r.Context(), values); err != nil {
		status := http.StatusInternalServerError
		msg := h.t.T("The configuration options could not be saved. Your changes are shown below; please submit again.")
		if !errors.Is(err, settings.ErrPersistence) {
			msg = h.t.T("The configuration options could not be saved.")
		}
		h.render(w, r, status, func(f *form.Form) {
			keepSubmitted(f)
			f.Errors = append(f.Errors, msg)
		})
		return
	}

	http.Redirect(w, r, DigestAdminPath+"?"+url.Values{"saved": {"1"}}.Encode(), http.StatusSeeOther)
}

// ExportStaged 导出待发送内容 Excel 文件
func (h *DigestAdminHandler) ExportStaged(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	data, err := h.form.ExportStaged(r.Context())
	if err != nil {
		h.logger.Error("Failed to export staged content", zap.Error(err))
		http.Error(w, h.t.T("The staged content could not be loaded. Please try again later."), http.StatusInternalServerError)
		return
	}
	filename := "staged_content_" + time.Now().Format("20060102_150405") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
