package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/znurfzh/ethic-sub000/internal/app/models"
)

type sample struct {
	Name     string           `validate:"required,username"`
	UserType *models.UserType `validate:"omitempty,usertype"`
	PostType models.PostType  `validate:"required,posttype"`
}

func TestRegister_CustomTags(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	pro := models.UserTypeProfessional
	assert.NoError(t, v.Struct(sample{Name: "alice_1", UserType: &pro, PostType: models.PostTypeQuestion}))
	assert.NoError(t, v.Struct(sample{Name: "alice", PostType: models.PostTypeArticle}))

	bad := models.UserType("admin")
	assert.Error(t, v.Struct(sample{Name: "alice", UserType: &bad, PostType: models.PostTypeArticle}))
	assert.Error(t, v.Struct(sample{Name: "a b", PostType: models.PostTypeArticle}))
	assert.Error(t, v.Struct(sample{Name: "alice", PostType: "blog"}))
}

func TestStringValidation(t *testing.T) {
	assert.False(t, NewStringValidation("").Validate())
	assert.True(t, NewStringValidation("edtech").WithMaxLength(10).Validate())
	assert.False(t, NewStringValidation("edtech").WithMinLength(7).Validate())
	assert.False(t, NewStringValidation("x y").WithPattern(CompiledPatterns.Username).Validate())
}

func TestRegister_ReportsJSONFieldNames(t *testing.T) {
	type body struct {
		DisplayName string `json:"displayName,omitempty" validate:"required"`
	}
	v := validator.New()
	require.NoError(t, Register(v))

	err := v.Struct(body{})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "displayName", verrs[0].Field())
}
