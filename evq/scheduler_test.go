package evq

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jager/protected/consts"
)

func TestPostAndHandleEvent(t *testing.T) {
	require := require.New(t)

	got := make(chan []interface{}, 1)
	hid := HandleEvent(consts.ATTR_PROTECT_EVENT, func(ev IEvent) {
		got <- ev.(*CommonEvent).GetData()
	})
	defer DelHandler(hid)

	PostEvent(NewCommonEvent(consts.ATTR_PROTECT_EVENT, "type", "_type"))

	select {
	case data := <-got:
		require.Equal("type", data[0])
		require.Equal("_type", data[1])
	case <-time.After(2 * time.Second):
		require.FailNow("event not dispatched")
	}
}

func TestCallLater(t *testing.T) {
	require := require.New(t)

	done := make(chan struct{})
	CallLater(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		require.FailNow("deferred call not run")
	}
}

func TestDelHandler(t *testing.T) {
	require := require.New(t)

	got := make(chan struct{}, 4)
	hid := HandleEvent(consts.ATTR_UNPROTECT_EVENT, func(ev IEvent) {
		got <- struct{}{}
	})
	DelHandler(hid)

	PostEvent(NewCommonEvent(consts.ATTR_UNPROTECT_EVENT))

	// Drain with a sentinel so we know the queue has been processed.
	done := make(chan struct{})
	CallLater(func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		require.FailNow("queue not drained")
	}

	select {
	case <-got:
		require.FailNow("deleted handler still invoked")
	default:
	}
}

func TestHandlerPanicIsContained(t *testing.T) {
	require := require.New(t)

	hid := HandleEvent(consts.ATTR_DEL_DENIED_EVENT, func(ev IEvent) {
		panic("boom")
	})
	defer DelHandler(hid)

	PostEvent(NewCommonEvent(consts.ATTR_DEL_DENIED_EVENT))

	done := make(chan struct{})
	CallLater(func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		require.FailNow("scheduler died after handler panic")
	}
}
