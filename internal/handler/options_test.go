package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamjokbo/jokbo/internal/refdata"
)

func serveOptions(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/options/{kind}", NewOptionsHandler().List)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeOptions(t *testing.T, rec *httptest.ResponseRecorder) []refdata.Option {
	t.Helper()
	var body struct {
		Options []refdata.Option `json:"options"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Options
}

func TestOptions_Categories(t *testing.T) {
	rec := serveOptions(t, "/api/options/categories")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeOptions(t, rec), 40)
}

func TestOptions_MembersFiltered(t *testing.T) {
	rec := serveOptions(t, "/api/options/members?q=이길재")

	require.Equal(t, http.StatusOK, rec.Code)
	options := decodeOptions(t, rec)
	require.Len(t, options, 1)
	assert.Equal(t, "건축외주팀", options[0].Department)
	assert.Equal(t, "gilee05@gsenc.com", options[0].Email)
}

func TestOptions_UnknownKind(t *testing.T) {
	rec := serveOptions(t, "/api/options/colors")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
