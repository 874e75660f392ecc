package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsphweid/patternmetrics/db"
	"github.com/jsphweid/patternmetrics/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const evaluateBody = `{
	"piece": [[0, 62], [1, 64], [20, 62], [21, 64], [30, 50]],
	"patterns": [[[[0, 62], [1, 64]], [[20, 62], [21, 64]]]]
}`

func withStore(t *testing.T) db.Store {
	t.Helper()
	store, err := db.NewSQLiteStore(filepath.Join(t.TempDir(), "reports.sqlite3"))
	require.NoError(t, err)
	reportStore = store
	t.Cleanup(func() {
		reportStore = nil
		store.Close()
	})
	return store
}

func do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)
	return w
}

func TestHandleEvaluate(t *testing.T) {
	withStore(t)

	w := do(t, http.MethodPost, "/evaluate", evaluateBody)
	require.Equal(t, http.StatusOK, w.Code)

	var res model.EvaluateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, 0.8, res.Report.Coverage)
	assert.Equal(t, 1.25, res.Report.LosslessCompression)

	w = do(t, http.MethodGet, "/reports/"+res.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var rec model.StoredReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, res.Report, rec.Report)

	w = do(t, http.MethodGet, "/reports", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []model.StoredReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestHandleEvaluateWithoutStore(t *testing.T) {
	w := do(t, http.MethodPost, "/evaluate", evaluateBody)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, http.MethodGet, "/reports", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHandleEvaluateBadInput(t *testing.T) {
	cases := map[string]string{
		"not json":      `{`,
		"empty piece":   `{"piece": [], "patterns": []}`,
		"no occurrence": `{"piece": [[0, 60]], "patterns": [[]]}`,
		"strict ragged": `{"piece": [[0, 60]], "patterns": [[[[0, 60]], [[4, 60], [5, 62]]]], "strict": true}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := do(t, http.MethodPost, "/evaluate", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var res model.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			assert.NotEmpty(t, res.Error)
		})
	}
}

func TestHandleGetReportMissing(t *testing.T) {
	withStore(t)
	w := do(t, http.MethodGet, "/reports/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEvaluateRequiresPost(t *testing.T) {
	w := do(t, http.MethodGet, "/evaluate", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
