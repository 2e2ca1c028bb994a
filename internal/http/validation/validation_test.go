package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleForm struct {
	Email  string `json:"email" binding:"required,email" validate:"required,email"`
	Amount int64  `json:"amount" validate:"required,gt=0"`
	Note   string `json:"note,omitempty" validate:"max=5"`
}

func TestFromBindError(t *testing.T) {
	v := validator.New()

	err := v.Struct(sampleForm{Email: "not-an-email", Amount: 0, Note: "too long note"})
	require.Error(t, err)

	fields := FromBindError(err, &sampleForm{})
	assert.Equal(t, "Email không hợp lệ.", fields["email"])
	assert.Contains(t, fields["amount"], "bắt buộc")
	assert.Equal(t, "Tối đa 5 ký tự.", fields["note"])
}

func TestFromBindErrorNonValidation(t *testing.T) {
	fields := FromBindError(assert.AnError, &sampleForm{})
	assert.Equal(t, "Dữ liệu gửi lên không hợp lệ.", fields["_"])
}
