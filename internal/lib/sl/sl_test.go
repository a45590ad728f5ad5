package sl_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/pandda-console/internal/lib/result"
	"github.com/magabrotheeeer/pandda-console/internal/lib/sl"
)

func TestErr_ReturnsCorrectAttr(t *testing.T) {
	err := errors.New("something went wrong")
	attr := sl.Err(err)

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.StringValue("something went wrong"), attr.Value)
}

func TestErr_NilError(t *testing.T) {
	assert.Panics(t, func() {
		_ = sl.Err(nil)
	})
}

func TestFail_GroupsCodeAndMessage(t *testing.T) {
	attr := sl.Fail(&result.Error{Code: result.CodeNotFound, Message: "record not found"})

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.KindGroup, attr.Value.Kind())
	group := attr.Value.Group()
	assert.Equal(t, "NOT_FOUND", group[0].Value.String())
	assert.Equal(t, "record not found", group[1].Value.String())
}

func TestFail_Nil(t *testing.T) {
	attr := sl.Fail(nil)
	assert.Equal(t, "unknown", attr.Value.String())
}
