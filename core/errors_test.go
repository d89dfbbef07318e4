package core

import (
	"bytes"
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, EINTERNAL, Code(errors.New("plain")))
	err := Error(EMISSING, "font %s not found", "Antic")
	assert.Equal(t, EMISSING, Code(err))
	assert.Equal(t, "font Antic not found", UserMessage(err))
	assert.Equal(t, "[122] font Antic not found: not found", err.Error())
	assert.Equal(t, "undefined error", errorText(999))
}

func TestWrapError(t *testing.T) {
	err := WrapError(fs.ErrNotExist, EMISSING, "cannot open %s", "x.ttf")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, EMISSING, Code(err))
	err = WrapError(nil, ECLOSED, "")
	assert.Equal(t, "[124] closed", err.Error())
	assert.Equal(t, "internal error", UserMessage(errors.New("plain")))
	assert.Equal(t, "", UserMessage(nil))
}

func TestUserError(t *testing.T) {
	var buf bytes.Buffer
	code := UserError(&buf, Error(EINVALID, "broken font"))
	assert.Equal(t, EINVALID, code)
	assert.Equal(t, "[123] broken font\n", buf.String())
	buf.Reset()
	assert.Equal(t, EINTERNAL, UserError(&buf, errors.New("boom")))
	assert.Equal(t, "Error: boom\n", buf.String())
	assert.Equal(t, NOERROR, UserError(&buf, nil))
}
