package result

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_JSONShape(t *testing.T) {
	ok, err := json.Marshal(OK(map[string]any{"id": "c-1"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{"id":"c-1"}}`, string(ok))

	fail, err := json.Marshal(Fail[map[string]any](CodeNotFound, "record not found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":{"message":"record not found","code":"NOT_FOUND"}}`, string(fail))
}

func TestResult_IsAndErr(t *testing.T) {
	r := Fail[int](CodeValidation, "name is required")
	assert.True(t, r.Is(CodeValidation))
	assert.False(t, r.Is(CodeNotFound))
	assert.EqualError(t, r.Err(), "VALIDATION: name is required")

	assert.NoError(t, OK(1).Err())
	assert.False(t, OK(1).Is(CodeValidation))
}

func TestMap(t *testing.T) {
	double := func(v int) (int, error) { return v * 2, nil }
	broken := func(int) (int, error) { return 0, errors.New("boom") }

	assert.Equal(t, OK(4), Map(OK(2), double, CodeGet, "failed"))

	mapped := Map(Fail[int](CodeNotFound, "missing"), double, CodeGet, "failed")
	assert.True(t, mapped.Is(CodeNotFound))

	mapped = Map(OK(2), broken, CodeGet, "failed")
	assert.True(t, mapped.Is(CodeGet))
	assert.Equal(t, "failed", mapped.Error.Message)
}

func TestForward_CopiesError(t *testing.T) {
	src := Fail[int](CodeFKViolation, "in use")
	dst := Forward[string](src)
	dst.Error.Message = "changed"
	assert.Equal(t, "in use", src.Error.Message)
	assert.True(t, dst.Is(CodeFKViolation))
}
