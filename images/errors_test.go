package images

import (
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	err := NewError(KindWrite, "write", "out/a_80.jpg", os.ErrPermission)

	assert.ErrorIs(t, err, ErrWrite)
	assert.NotErrorIs(t, err, ErrDecode)
	assert.ErrorIs(t, err, os.ErrPermission, "cause stays reachable")
	assert.Equal(t, `write: write error "out/a_80.jpg": permission denied`, err.Error())

	wrapped := errors.Wrap(err, "batch")
	assert.ErrorIs(t, wrapped, ErrWrite)
	assert.Equal(t, KindWrite, KindOf(wrapped))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindSizeMismatch, KindOf(checkLength("compress", 1, 1, 1)))
}

func TestKindString(t *testing.T) {
	for k := KindUnknown; k <= KindWrite; k++ {
		assert.NotEmpty(t, k.String())
	}
	assert.Equal(t, "decode error", KindDecode.String())
	assert.Equal(t, "unknown error", Kind(99).String())
}
