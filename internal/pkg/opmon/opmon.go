package opmon

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jager/protected/internal/pkg/utils"
)

var (
	operationAllocPool = sync.Pool{
		New: func() interface{} {
			return &Operation{}
		},
	}

	monitor  = newMonitor()
	initOnce sync.Once
)

// Initialize starts the periodic dump of aggregated operation stats.
// A non-positive interval disables dumping; recording still works.
func Initialize(dumpInterval time.Duration) {
	if dumpInterval <= 0 {
		return
	}
	initOnce.Do(func() {
		go func() {
			for {
				time.Sleep(dumpInterval)
				utils.CatchPanic(monitor.Dump)
			}
		}()
	})
}

type _OpInfo struct {
	count         uint64
	totalDuration time.Duration
	maxDuration   time.Duration
}

type _Monitor struct {
	sync.Mutex
	opInfos map[string]*_OpInfo
}

func newMonitor() *_Monitor {
	return &_Monitor{
		opInfos: map[string]*_OpInfo{},
	}
}

func (monitor *_Monitor) record(opname string, duration time.Duration) {
	monitor.Lock()
	info := monitor.opInfos[opname]
	if info == nil {
		info = &_OpInfo{}
		monitor.opInfos[opname] = info
	}
	info.count += 1
	info.totalDuration += duration
	if duration > info.maxDuration {
		info.maxDuration = duration
	}
	monitor.Unlock()
}

func (monitor *_Monitor) Dump() {
	var opInfos map[string]*_OpInfo
	monitor.Lock()
	opInfos = monitor.opInfos
	monitor.opInfos = map[string]*_OpInfo{} // clear to be empty
	monitor.Unlock()

	for opname, opinfo := range opInfos {
		slog.Info("opmon dump",
			"op", opname,
			"count", opinfo.count,
			"avg", opinfo.totalDuration/time.Duration(opinfo.count),
			"max", opinfo.maxDuration,
		)
	}
}

type Operation struct {
	name      string
	startTime time.Time
}

func StartOperation(operationName string) *Operation {
	op := operationAllocPool.Get().(*Operation)
	op.name = operationName
	op.startTime = time.Now()
	return op
}

func (op *Operation) Finish(warnThreshold time.Duration) {
	takeTime := time.Now().Sub(op.startTime)
	monitor.record(op.name, takeTime)
	if warnThreshold > 0 && takeTime >= warnThreshold {
		slog.Warn("slow operation", "op", op.name, "took", takeTime, "threshold", warnThreshold)
	}
	operationAllocPool.Put(op)
}
