package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/znurfzh/ethic-sub000/internal/pkg/apperrors"
)

func newContext(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestParseLimitOffset(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "/x", 10, 0},
		{"explicit", "/x?limit=5&offset=20", 5, 20},
		{"invalid falls back", "/x?limit=abc&offset=-3", 10, 0},
		{"capped", "/x?limit=1000", MaxLimit, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := ParseLimitOffset(newContext(tt.target))
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{1, 2}, Page(items, 2, 0))
	assert.Equal(t, []int{4, 5}, Page(items, 10, 3))
	assert.Empty(t, Page(items, 2, 9))
}

func TestParseIDParam(t *testing.T) {
	c := newContext("/posts/7")
	c.Params = gin.Params{{Key: "postId", Value: "7"}}
	id, err := ParseIDParam(c, "postId")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	c.Params = gin.Params{{Key: "postId", Value: "seven"}}
	_, err = ParseIDParam(c, "postId")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestParseOptionalIDQuery(t *testing.T) {
	id, err := ParseOptionalIDQuery(newContext("/posts"), "topicId")
	require.NoError(t, err)
	assert.Nil(t, id)

	id, err = ParseOptionalIDQuery(newContext("/posts?topicId=3"), "topicId")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(3), *id)

	_, err = ParseOptionalIDQuery(newContext("/posts?topicId=x"), "topicId")
	assert.Error(t, err)
}
