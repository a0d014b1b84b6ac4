package timer

import (
	"container/heap"
	"sync"
	"time"

	"github.com/jager/protected/consts"
	"github.com/jager/protected/evq"
)

var (
	nextAddSeq uint64 = 1
	tHeap      timerHeap
	startOnce  sync.Once
	tLock      sync.Mutex
)

type CallbackFunc func()

type Timer struct {
	fireTime time.Time
	interval time.Duration
	callback CallbackFunc
	repeat   bool
	addseq   uint64
}

func (t *Timer) GetRemainTime() time.Duration {
	now := time.Now()
	if now.Before(t.fireTime) {
		return t.fireTime.Sub(now)
	}
	return 0
}

func (t *Timer) Cancel() {
	t.callback = nil
}

func (t *Timer) IsActive() bool {
	return t.callback != nil
}

type timerHeap struct {
	timers []*Timer
}

func (h *timerHeap) Len() int {
	return len(h.timers)
}

func (h *timerHeap) Less(i, j int) bool {
	t1, t2 := h.timers[i].fireTime, h.timers[j].fireTime
	if t1.Before(t2) {
		return true
	}

	if t1.After(t2) {
		return false
	}

	return h.timers[i].addseq < h.timers[j].addseq
}

func (h *timerHeap) Swap(i, j int) {
	h.timers[i], h.timers[j] = h.timers[j], h.timers[i]
}

func (h *timerHeap) Push(x interface{}) {
	h.timers = append(h.timers, x.(*Timer))
}

func (h *timerHeap) Pop() (ret interface{}) {
	l := len(h.timers)
	h.timers, ret = h.timers[:l-1], h.timers[l-1]
	return
}

func AfterFunc(d time.Duration, callback CallbackFunc) *Timer {
	t := &Timer{
		fireTime: time.Now().Add(d),
		interval: d,
		callback: callback,
		repeat:   false,
	}

	tLock.Lock()
	t.addseq = nextAddSeq
	nextAddSeq += 1

	heap.Push(&tHeap, t)
	tLock.Unlock()
	return t
}

func AddTicker(d time.Duration, callback CallbackFunc) *Timer {
	t := &Timer{
		fireTime: time.Now().Add(d),
		interval: d,
		callback: callback,
		repeat:   true,
	}

	tLock.Lock()
	t.addseq = nextAddSeq
	nextAddSeq += 1

	heap.Push(&tHeap, t)
	tLock.Unlock()
	return t
}

func tick() {
	now := time.Now()

	tLock.Lock()
	for {
		if tHeap.Len() <= 0 {
			break
		}

		nextFireTime := tHeap.timers[0].fireTime
		if nextFireTime.After(now) {
			break
		}

		t := heap.Pop(&tHeap).(*Timer)

		callback := t.callback
		if callback == nil {
			continue
		}

		if !t.repeat {
			t.callback = nil
		}

		evq.PostEvent(evq.NewCommonEvent(consts.TIMER_EVENT, callback))

		if t.repeat {
			t.fireTime = t.fireTime.Add(t.interval)
			t.addseq = nextAddSeq
			nextAddSeq += 1
			heap.Push(&tHeap, t)
		}
	}
	tLock.Unlock()
}

func StartTicks(tickInterval time.Duration) {
	startOnce.Do(func() {
		go func() {
			for {
				time.Sleep(tickInterval)
				tick()
			}
		}()
	})
}

func onTimer(ev evq.IEvent) {
	ev.(*evq.CommonEvent).GetData()[0].(CallbackFunc)()
}

func init() {
	heap.Init(&tHeap)
	evq.HandleEvent(consts.TIMER_EVENT, onTimer)
}
