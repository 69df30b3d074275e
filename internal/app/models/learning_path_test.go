package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStepContent(t *testing.T) {
	rid := int64(3)
	pid := int64(4)
	url := "https://example.com"

	c, err := NewStepContent(nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, StepContentNone, c.Kind())

	c, err = NewStepContent(&rid, nil, nil)
	require.NoError(t, err)
	got, ok := c.ResourceID()
	assert.True(t, ok)
	assert.Equal(t, rid, got)
	_, ok = c.PostID()
	assert.False(t, ok)

	c, err = NewStepContent(nil, nil, &url)
	require.NoError(t, err)
	assert.Equal(t, StepContentExternal, c.Kind())

	_, err = NewStepContent(&rid, &pid, nil)
	assert.ErrorIs(t, err, ErrMultipleStepContent)
}

func TestLearningPathStep_JSONShape(t *testing.T) {
	step := LearningPathStep{ID: 1, LearningPathID: 2, Title: "Intro", Order: 1, Content: PostContent(9)}

	raw, err := json.Marshal(step)
	require.NoError(t, err)

	var flat map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.Equal(t, float64(9), flat["postId"])
	assert.Nil(t, flat["resourceId"])
	assert.Nil(t, flat["externalUrl"])
	assert.Equal(t, "post", flat["contentType"])

	var back LearningPathStep
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, step, back)
}

func TestUserApply_PartialMerge(t *testing.T) {
	bio := "hello"
	name := "New Name"
	u := User{ID: 1, Username: "alice", DisplayName: "Alice", Email: "a@x.io", UserType: UserTypeStudent}

	u.Apply(UserUpdate{DisplayName: &name, Bio: &bio})

	assert.Equal(t, "New Name", u.DisplayName)
	assert.Equal(t, "a@x.io", u.Email)
	require.NotNil(t, u.Bio)
	assert.Equal(t, "hello", *u.Bio)
}
