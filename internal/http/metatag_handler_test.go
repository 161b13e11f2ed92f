package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"message-digest-admin/internal/metatag"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMetatagRouter() *Router {
	logger := zap.NewNop()
	r := NewRouter(logger)
	r.RegisterMetatagRoutes(NewMetatagHandler(metatag.Default(), logger))
	r.RegisterHealthRoutes()
	return r
}

func doAdmin(r *Router, req *http.Request) *httptest.ResponseRecorder {
	req.Header.Set("X-User-Role", "Admin")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMetatag_List(t *testing.T) {
	w := doAdmin(newMetatagRouter(), httptest.NewRequest(http.MethodGet, "/admin/api/v1/metatags", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var res Result[struct {
		Items []metatag.Info `json:"items"`
		Total int            `json:"total"`
	}]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, ResultSuccess, res.Code)
	require.Equal(t, 1, res.Result.Total)
	assert.Equal(t, "schema_qa_page_type", res.Result.Items[0].ID)
	assert.Equal(t, []string{"QAPage", "FAQPage"}, res.Result.Items[0].AllowedValues)
}

func TestMetatag_ListByGroup(t *testing.T) {
	w := doAdmin(newMetatagRouter(), httptest.NewRequest(http.MethodGet, "/admin/api/v1/metatags?group=schema_article", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":0`)
}

func TestMetatag_Values(t *testing.T) {
	r := newMetatagRouter()

	w := doAdmin(r, httptest.NewRequest(http.MethodGet, "/admin/api/v1/metatags/schema_qa_page_type/values", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"allowed_values":["QAPage","FAQPage"]`)

	w = doAdmin(r, httptest.NewRequest(http.MethodGet, "/admin/api/v1/metatags/nope/values", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":-1`)
}

func TestMetatag_Validate(t *testing.T) {
	r := newMetatagRouter()
	cases := []struct {
		value string
		valid bool
	}{
		{"QAPage", true},
		{"FAQPage", true},
		{"Article", false},
	}
	for _, tc := range cases {
		w := doAdmin(r, httptest.NewRequest(http.MethodGet,
			"/admin/api/v1/metatags/validate?id=schema_qa_page_type&value="+tc.value, nil))
		require.Equal(t, http.StatusOK, w.Code, tc.value)
		var res Result[map[string]any]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, tc.valid, res.Result["valid"], tc.value)
	}

	w := doAdmin(r, httptest.NewRequest(http.MethodGet, "/admin/api/v1/metatags/validate?id=nope&value=x", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doAdmin(r, httptest.NewRequest(http.MethodGet, "/admin/api/v1/metatags/validate", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetatag_JSONLD(t *testing.T) {
	r := newMetatagRouter()

	w := doAdmin(r, httptest.NewRequest(http.MethodPost, "/admin/api/v1/metatags/jsonld",
		strings.NewReader(`{"group":"schema_qa_page","values":{"schema_qa_page_type":"QAPage"}}`)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/ld+json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"@context":"https://schema.org","@type":"QAPage"}`, w.Body.String())

	w = doAdmin(r, httptest.NewRequest(http.MethodPost, "/admin/api/v1/metatags/jsonld",
		strings.NewReader(`{"group":"schema_qa_page","values":{"schema_qa_page_type":"Article"}}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doAdmin(r, httptest.NewRequest(http.MethodPost, "/admin/api/v1/metatags/jsonld", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetatag_Forbidden(t *testing.T) {
	w := httptest.NewRecorder()
	newMetatagRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/api/v1/metatags", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHealthz(t *testing.T) {
	w := httptest.NewRecorder()
	newMetatagRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":2000`)
}
