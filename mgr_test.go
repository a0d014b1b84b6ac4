package protected

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jager/protected/consts"
	"github.com/jager/protected/evq"
)

func TestGetAttrMgr(t *testing.T) {
	assert := assert.New(t)

	m := NewAttrMgr("actor", 1, map[string]interface{}{"name": "jager"})

	found, err := GetAttrMgr("actor", 1)
	assert.NoError(err)
	assert.Same(m, found)

	_, err = GetAttrMgr("actor", 2)
	assert.ErrorIs(err, NotExistsErr)
}

func TestAttrMgrFlushPostsChangeEvent(t *testing.T) {
	require := require.New(t)

	events := make(chan []interface{}, 4)
	hid := evq.HandleEvent(consts.ATTR_CHANGED_EVENT, func(ev evq.IEvent) {
		events <- ev.(*evq.CommonEvent).GetData()
	})
	defer evq.DelHandler(hid)

	m := NewAttrMgr("backup", 42, nil)
	m.SetStr("state", "running")
	require.True(m.Dirty())

	m.Flush()
	require.False(m.Dirty())

	select {
	case data := <-events:
		require.Equal("backup", data[0])
		require.Equal(42, data[1])
	case <-time.After(2 * time.Second):
		require.FailNow("no change event received")
	}

	// A clean manager flushes to nothing.
	m.Flush()
	select {
	case <-events:
		require.FailNow("unexpected event from clean manager")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestAttrMgrSeededProtected(t *testing.T) {
	assert := assert.New(t)

	m := NewAttrMgr("seeded", 7, map[string]interface{}{"type": "full"}, "hello")
	assert.True(m.Has("_type"))
	assert.True(m.Has("_hello"))
	assert.Equal(7, m.GetAttrID())
}
