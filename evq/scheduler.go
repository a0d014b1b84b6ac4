package evq

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	"gopkg.in/eapache/queue.v1"

	"github.com/jager/protected/consts"
	"github.com/jager/protected/internal/pkg/utils"
)

var mainEvScheduler = &eventScheduler{
	eventHandlers: make(map[int][]*handler),
	eventMap:      make(map[uint64]*handler),
}

func init() {
	mainEvScheduler.start()
}

type IEvent interface {
	GetEventId() int
}

type CommonEvent struct {
	id   int
	data []interface{}
}

func (ce *CommonEvent) GetEventId() int {
	return ce.id
}

func (ce *CommonEvent) String() string {
	return strconv.Itoa(ce.id)
}

func (ce *CommonEvent) GetData() []interface{} {
	return ce.data
}

func NewCommonEvent(evenID int, data ...interface{}) *CommonEvent {
	e := &CommonEvent{
		data: data,
	}
	e.id = evenID
	return e
}

type callLaterEvent struct {
	f func()
}

func (ce *callLaterEvent) GetEventId() int {
	return consts.CALLATER_EVT
}

func newCallLaterEvent(f func()) IEvent {
	return &callLaterEvent{
		f: f,
	}
}

type closeEvent struct {
}

func (ce *closeEvent) GetEventId() int {
	return consts.CLOSE_EVQ_EVT
}

type handler struct {
	id   uint64
	evId int
	cb   func(IEvent)
}

type eventQueue struct {
	evList *queue.Queue
	guard  sync.Mutex
	cond   *sync.Cond
}

func (eq *eventQueue) push(event IEvent) {
	if event == nil {
		return
	}

	eq.guard.Lock()
	eq.evList.Add(event)
	eq.cond.Signal()
	eq.guard.Unlock()
}

func (eq *eventQueue) pop() IEvent {
	eq.guard.Lock()

	for eq.evList.Length() == 0 {
		eq.cond.Wait()
	}

	ev := eq.evList.Remove().(IEvent)
	eq.guard.Unlock()
	return ev
}

func (eq *eventQueue) empty() bool {
	eq.guard.Lock()
	empty := eq.evList.Length() == 0
	eq.guard.Unlock()
	return empty
}

func newEventQueue() *eventQueue {
	evque := &eventQueue{
		evList: queue.New(),
	}

	evque.cond = sync.NewCond(&evque.guard)
	return evque
}

type eventScheduler struct {
	queue   *eventQueue
	working bool
	closed  bool
	mtx     sync.Mutex

	eventHandlers map[int][]*handler
	eventMap      map[uint64]*handler
	maxHid        uint64
	exitSignal    chan struct{}
}

func (es *eventScheduler) handleEvent(evId int, f func(IEvent)) uint64 {
	es.mtx.Lock()
	defer es.mtx.Unlock()

	es.maxHid += 1
	h := &handler{id: es.maxHid, evId: evId, cb: f}

	es.eventHandlers[evId] = append(es.eventHandlers[evId], h)
	es.eventMap[h.id] = h

	return h.id
}

func (es *eventScheduler) delHandler(id uint64) {
	es.mtx.Lock()
	defer es.mtx.Unlock()

	h, ok := es.eventMap[id]
	if !ok {
		return
	}
	delete(es.eventMap, id)

	hs := es.eventHandlers[h.evId]
	for i, h2 := range hs {
		if h2.id == h.id {
			es.eventHandlers[h.evId] = append(hs[:i], hs[i+1:]...)
			break
		}
	}
}

func (es *eventScheduler) onEvent(ev IEvent) {
	es.mtx.Lock()
	hs := append([]*handler(nil), es.eventHandlers[ev.GetEventId()]...)
	es.mtx.Unlock()

	for _, h := range hs {
		cb := h.cb
		utils.CatchPanic(func() {
			cb(ev)
		})
	}
}

func (es *eventScheduler) postEvent(ev IEvent) {
	if ev == nil {
		return
	}
	es.queue.push(ev)
}

func (es *eventScheduler) doScheduler() {
	for {
		ev := es.queue.pop()

		switch ev.GetEventId() {
		case consts.CLOSE_EVQ_EVT:
			// drop; only the exit check below matters
		case consts.CALLATER_EVT:
			if e, ok := ev.(*callLaterEvent); ok {
				utils.CatchPanic(e.f)
			} else {
				slog.Error("evq doScheduler CALLATER_EVT not a callLaterEvent")
			}
		default:
			es.onEvent(ev)
		}

		es.mtx.Lock()
		closed := es.closed
		es.mtx.Unlock()
		if closed && es.queue.empty() {
			close(es.exitSignal)
			return
		}
	}
}

func (es *eventScheduler) start() {
	es.mtx.Lock()
	if es.working {
		es.mtx.Unlock()
		return
	}
	es.working = true
	es.closed = false

	es.exitSignal = make(chan struct{})
	es.queue = newEventQueue()
	es.mtx.Unlock()

	go es.doScheduler()
}

func (es *eventScheduler) stop() {
	es.mtx.Lock()
	if es.closed {
		es.mtx.Unlock()
		return
	}
	es.closed = true
	es.working = false
	es.mtx.Unlock()

	es.postEvent(&closeEvent{})
	es.waitClear()
}

func (es *eventScheduler) waitClear() {
	select {
	case <-es.exitSignal:
		return
	case <-time.NewTimer(10 * time.Second).C:
		slog.Warn("eventScheduler waitClear timeout")
		return
	}
}

func Start() {
	mainEvScheduler.start()
}

func Stop() {
	mainEvScheduler.stop()
}

func PostEvent(ev IEvent) {
	mainEvScheduler.postEvent(ev)
}

func HandleEvent(evid int, f func(event IEvent)) uint64 {
	return mainEvScheduler.handleEvent(evid, f)
}

func DelHandler(id uint64) {
	mainEvScheduler.delHandler(id)
}

func CallLater(f func()) {
	mainEvScheduler.postEvent(newCallLaterEvent(f))
}
