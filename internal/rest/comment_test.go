package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RealTimeMap/RealTimeMap-backend/domain"
	"github.com/RealTimeMap/RealTimeMap-backend/internal/rest"
)

func init() {
	gin.SetMode(gin.TestMode)
	rest.RegisterValidations()
}

type fakeCommentUsecase struct {
	createdContent string
	createdParent  int64
	createdMark    int64
	createdOwner   int64
	createErr      error

	page    domain.PaginationResponse[*domain.Comment]
	listErr error

	toggleRes domain.ToggleResult
	toggleErr error
}

func (f *fakeCommentUsecase) Create(ctx context.Context, content string, parentID, markID, ownerID int64) (*domain.Comment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createdContent = content
	f.createdParent = parentID
	f.createdMark = markID
	f.createdOwner = ownerID
	return &domain.Comment{
		ID:        42,
		Content:   content,
		OwnerID:   ownerID,
		MarkID:    markID,
		ParentID:  parentID,
		CreatedAt: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC),
	}, nil
}

func (f *fakeCommentUsecase) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeCommentUsecase) ListForMark(ctx context.Context, markID int64, params domain.PaginationParams) (domain.PaginationResponse[*domain.Comment], error) {
	return f.page, f.listErr
}

func (f *fakeCommentUsecase) ListReplies(ctx context.Context, commentID int64, params domain.PaginationParams) (domain.PaginationResponse[*domain.Comment], error) {
	return f.page, f.listErr
}

func (f *fakeCommentUsecase) ToggleReaction(ctx context.Context, commentID, userID int64, t domain.ReactionType) (domain.ToggleResult, error) {
	return f.toggleRes, f.toggleErr
}

func newCommentRouter(f *fakeCommentUsecase) *gin.Engine {
	h := rest.NewCommentHandler(f)
	r := gin.New()
	authed := func(c *gin.Context) { c.Set("user_id", int64(3)) }
	r.POST("/marks/:id/comments", authed, h.CreateComment)
	r.GET("/marks/:id/comments", h.ListForMark)
	r.GET("/comments/:id/replies", h.ListReplies)
	r.POST("/comments/:id/reactions", authed, h.ToggleReaction)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateCommentHandler(t *testing.T) {
	f := &fakeCommentUsecase{}
	r := newCommentRouter(f)

	w := doJSON(t, r, http.MethodPost, "/marks/5/comments", gin.H{"content": "hello", "parent_id": 10})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "hello", f.createdContent)
	assert.Equal(t, int64(10), f.createdParent)
	assert.Equal(t, int64(5), f.createdMark)
	assert.Equal(t, int64(3), f.createdOwner)

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Contains(t, out, "comment")
}

func TestCreateCommentRejectsEmptyBody(t *testing.T) {
	f := &fakeCommentUsecase{}
	r := newCommentRouter(f)

	w := doJSON(t, r, http.MethodPost, "/marks/5/comments", gin.H{"content": ""})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCommentNestingError(t *testing.T) {
	f := &fakeCommentUsecase{createErr: domain.ErrNestingLevelExceeded}
	r := newCommentRouter(f)

	w := doJSON(t, r, http.MethodPost, "/marks/5/comments", gin.H{"content": "hi", "parent_id": 11})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), domain.ErrNestingLevelExceeded.Error())
}

func TestCreateCommentBadMarkID(t *testing.T) {
	f := &fakeCommentUsecase{}
	r := newCommentRouter(f)

	w := doJSON(t, r, http.MethodPost, "/marks/abc/comments", gin.H{"content": "hi"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListForMarkHandler(t *testing.T) {
	f := &fakeCommentUsecase{
		page: domain.NewPaginationResponse([]*domain.Comment{
			{ID: 1, Content: "root"},
		}, 95, domain.PaginationParams{Page: 2, PageSize: 30}),
	}
	r := newCommentRouter(f)

	w := doJSON(t, r, http.MethodGet, "/marks/5/comments?page=2&page_size=30", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Total      int64 `json:"total"`
		TotalPages int64 `json:"total_pages"`
		HasNext    bool  `json:"has_next"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, int64(95), out.Total)
	assert.Equal(t, int64(4), out.TotalPages)
	assert.True(t, out.HasNext)
}

func TestToggleReactionRemoved(t *testing.T) {
	f := &fakeCommentUsecase{toggleRes: domain.ToggleResult{Removed: true}}
	r := newCommentRouter(f)

	w := doJSON(t, r, http.MethodPost, "/comments/7/reactions", gin.H{"reaction_type": "like"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"removed": true}`, w.Body.String())
}

func TestToggleReactionRejectsUnknownTypeAtBinding(t *testing.T) {
	f := &fakeCommentUsecase{}
	r := newCommentRouter(f)

	w := doJSON(t, r, http.MethodPost, "/comments/7/reactions", gin.H{"reaction_type": "heart"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrConflict, http.StatusConflict},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrNestingLevelExceeded, http.StatusBadRequest},
		{domain.ErrBadParamInput, http.StatusBadRequest},
		{&domain.ValidationError{Field: "content", Value: ""}, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		f := &fakeCommentUsecase{listErr: tc.err}
		r := newCommentRouter(f)

		w := doJSON(t, r, http.MethodGet, "/marks/5/comments", nil)

		assert.Equal(t, tc.want, w.Code, tc.err.Error())
	}
}
