package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/services"
	"portfolio/store"
)

type likesFixture struct {
	engine *gin.Engine
	fs     afero.Fs
	store  *store.FileStore
}

func newLikesFixture(t *testing.T, seed store.Counts) *likesFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fsys := afero.NewMemMapFs()
	fileStore := store.NewFileStore(fsys, "", nil)
	if seed != nil {
		require.NoError(t, fileStore.SaveAll(context.Background(), seed))
	}
	catalog, err := services.NewCatalog()
	require.NoError(t, err)

	ctl := NewLikeController(services.NewLikeService(fileStore, services.LikeOptions{}), catalog, nil)
	r := gin.New()
	r.GET("/api/likes", ctl.GetLikes)
	r.POST("/api/likes", ctl.PostLike)
	r.GET("/api/likes/top", ctl.GetTopLikes)

	return &likesFixture{engine: r, fs: fsys, store: fileStore}
}

func (f *likesFixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *likesFixture) fileContents(t *testing.T) string {
	t.Helper()
	data, err := afero.ReadFile(f.fs, f.store.Path())
	if errors.Is(err, afero.ErrFileNotFound) {
		return ""
	}
	require.NoError(t, err)
	return string(data)
}

func TestLikes_EmptyStoreLikeThenGet(t *testing.T) {
	f := newLikesFixture(t, nil)

	w := f.do(http.MethodPost, "/api/likes", `{"itemId":"a"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"itemId":"a","count":1}`, w.Body.String())

	w = f.do(http.MethodGet, "/api/likes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"a":1}`, w.Body.String())
}

func TestLikes_GetEmptyStore(t *testing.T) {
	f := newLikesFixture(t, nil)

	w := f.do(http.MethodGet, "/api/likes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestLikes_Unlike(t *testing.T) {
	tests := []struct {
		name string
		seed store.Counts
		want string
	}{
		{name: "decrements", seed: store.Counts{"a": 1}, want: `{"itemId":"a","count":0}`},
		{name: "clamps at zero", seed: store.Counts{"a": 0}, want: `{"itemId":"a","count":0}`},
		{name: "unknown item", seed: store.Counts{}, want: `{"itemId":"a","count":0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLikesFixture(t, tt.seed)

			w := f.do(http.MethodPost, "/api/likes", `{"itemId":"a","action":"unlike"}`)
			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestLikes_ExplicitLikeAndNullAction(t *testing.T) {
	f := newLikesFixture(t, store.Counts{"a": 4})

	w := f.do(http.MethodPost, "/api/likes", `{"itemId":"a","action":"like"}`)
	assert.JSONEq(t, `{"itemId":"a","count":5}`, w.Body.String())

	w = f.do(http.MethodPost, "/api/likes", `{"itemId":"a","action":null}`)
	assert.JSONEq(t, `{"itemId":"a","count":6}`, w.Body.String())
}

func TestLikes_InvalidPayloadsDoNotMutate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "missing itemId", body: `{"action":"like"}`, wantErr: "Invalid itemId"},
		{name: "numeric itemId", body: `{"itemId":42}`, wantErr: "Invalid itemId"},
		{name: "empty itemId", body: `{"itemId":""}`, wantErr: "Invalid itemId"},
		{name: "bogus action", body: `{"itemId":"x","action":"bogus"}`, wantErr: "Invalid action"},
		{name: "foo action", body: `{"itemId":"a","action":"foo"}`, wantErr: "Invalid action"},
		{name: "numeric action", body: `{"itemId":"a","action":1}`, wantErr: "Invalid action"},
		{name: "empty action", body: `{"itemId":"a","action":""}`, wantErr: "Invalid action"},
		{name: "not json", body: `itemId=a`, wantErr: "Invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLikesFixture(t, store.Counts{"a": 3})
			before := f.fileContents(t)

			w := f.do(http.MethodPost, "/api/likes", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantErr, resp["error"])
			assert.Equal(t, before, f.fileContents(t))
		})
	}
}

func TestLikes_ActionAgreesWithParseAction(t *testing.T) {
	for _, action := range []string{"like", "unlike", "", "Like", "bogus"} {
		t.Run("action="+action, func(t *testing.T) {
			f := newLikesFixture(t, store.Counts{"a": 3})
			w := f.do(http.MethodPost, "/api/likes", `{"itemId":"a","action":"`+action+`"}`)

			if _, err := services.ParseAction(action); err != nil {
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.JSONEq(t, `{"error":"Invalid action"}`, w.Body.String())
				return
			}
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestLikes_SequenceReflectedByGet(t *testing.T) {
	f := newLikesFixture(t, nil)

	for _, body := range []string{
		`{"itemId":"titanic"}`,
		`{"itemId":"titanic"}`,
		`{"itemId":"echo-effect"}`,
		`{"itemId":"titanic","action":"unlike"}`,
		`{"itemId":"voicebridge","action":"unlike"}`,
	} {
		require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/api/likes", body).Code)
	}

	w := f.do(http.MethodGet, "/api/likes", "")
	assert.JSONEq(t, `{"titanic":1,"echo-effect":1,"voicebridge":0}`, w.Body.String())
}

func TestLikes_SaveFailureIs500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ro := store.NewFileStore(afero.NewReadOnlyFs(afero.NewMemMapFs()), "", nil)
	ctl := NewLikeController(services.NewLikeService(ro, services.LikeOptions{}), nil, nil)
	r := gin.New()
	r.POST("/api/likes", ctl.PostLike)
	r.GET("/api/likes", ctl.GetLikes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/likes", bytes.NewBufferString(`{"itemId":"a"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to update likes"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/likes", nil))
	assert.Equal(t, http.StatusOK, w.Code, "reads fail open")
	assert.JSONEq(t, `{}`, w.Body.String())
}

type brokenStore struct{}

func (brokenStore) LoadAll(context.Context) (store.Counts, error) {
	return nil, errors.New("connection refused")
}

func (brokenStore) SaveAll(context.Context, store.Counts) error {
	return errors.New("connection refused")
}

func TestLikes_GetStoreFailureIs500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctl := NewLikeController(services.NewLikeService(brokenStore{}, services.LikeOptions{}), nil, nil)
	r := gin.New()
	r.GET("/api/likes", ctl.GetLikes)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/likes", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to read likes"}`, w.Body.String())
}

func TestLikes_Top(t *testing.T) {
	f := newLikesFixture(t, store.Counts{"titanic-survival": 4, "echo-effect": 9, "unknown": 1})

	w := f.do(http.MethodGet, "/api/likes/top?top=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"list":[
		{"itemId":"echo-effect","count":9,"rank":1,"title":"The Echo Effect: WTO Accession Impact Analysis"},
		{"itemId":"titanic-survival","count":4,"rank":2,"title":"Would You Have Survived the Titanic?"}
	]}`, w.Body.String())

	w = f.do(http.MethodGet, "/api/likes/top?top=abc", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		List []map[string]any `json:"list"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.List, 3)
	assert.NotContains(t, resp.List[2], "title")
}
