package protected

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDunderPredicates(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.True(IsDunderPrefix("__init__"))
	assert.False(IsDunderPrefix("_init"))
	assert.True(IsDunderSuffix("__init__"))
	assert.False(IsDunderSuffix("init_"))

	assert.True(IsDunderAttr("__init__"))
	assert.False(IsDunderAttr("__init"))
	assert.False(IsDunderAttr("init__"))
	assert.False(IsDunderAttr("count"))
}

func TestMakeProtectedName(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.Equal("_count", MakeProtectedName("count"))
	assert.Equal("__count", MakeProtectedName("_count"))

	// The unguarded maker stacks prefixes without complaint.
	assert.Equal("___secret__", MakeProtectedName("__secret__"))
}

func TestMakeProtectedNameGuarded(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	name, err := MakeProtectedNameGuarded("count")
	assert.NoError(err)
	assert.Equal("_count", name)

	_, err = MakeProtectedNameGuarded("__secret__")
	assert.ErrorIs(err, DunderAttrErr)

	_, err = MakeProtectedNameGuarded("__x")
	assert.ErrorIs(err, DunderAttrErr)

	// Too short to trip the guard.
	name, err = MakeProtectedNameGuarded("__")
	assert.NoError(err)
	assert.Equal("___", name)
}

func TestUndoProtectedName(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.Equal("count", UndoProtectedName("_count"))
	assert.Equal("_count", UndoProtectedName("__count"))
	assert.Equal("count", UndoProtectedName("count"))
}

func TestIsProtectedName(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.True(IsProtectedName("_count"))
	assert.True(IsProtectedName("__count"))
	assert.False(IsProtectedName("count"))
}

func TestStripName(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.Equal("count", StripName("_count"))
	assert.Equal("count", StripName("__count__"))
	assert.Equal("count", StripName("count"))
	assert.Equal("", StripName("____"))
}
