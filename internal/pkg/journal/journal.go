package journal

import (
	"log/slog"
	"sync"
	"time"

	"github.com/xiaonanln/go-xnsyncutil/xnsyncutil"

	"github.com/jager/protected/internal/pkg/opmon"
)

// Record is one protection-state transition or refused mutation. Records
// are drained off the caller's goroutine and written to the log stream;
// they are diagnostics only and are never persisted.
type Record struct {
	Op     string
	Attr   string
	Key    string
	NewKey string
	Err    error
	When   time.Time
}

type Config interface {
	GetSweepInterval() time.Duration
	GetDumpInterval() time.Duration
	GetSlowOpThreshold() time.Duration
	GetQueueWarnLen() int
}

type Client struct {
	cfg                  Config
	operationQueue       *xnsyncutil.SyncQueue
	recentWarnedQueueLen int
	shutdownOnce         sync.Once
	shutdownNotify       chan struct{}
}

var (
	client *Client
	mtx    sync.Mutex
)

// GetOrNewClient returns the process-wide journal client, starting its
// drain routine on first use.
func GetOrNewClient(cfg Config) *Client {
	mtx.Lock()
	defer mtx.Unlock()
	if client != nil {
		return client
	}

	client = &Client{
		cfg:            cfg,
		operationQueue: xnsyncutil.NewSyncQueue(),
		shutdownNotify: make(chan struct{}),
		shutdownOnce:   sync.Once{},
	}
	go client.drainRoutine()
	return client
}

// Push enqueues a record if the client has been started, else drops it.
// Dropping keeps the container usable without the journal lifecycle.
func Push(rec Record) {
	mtx.Lock()
	c := client
	mtx.Unlock()
	if c == nil {
		return
	}
	c.push(rec)
}

func Shutdown() {
	mtx.Lock()
	c := client
	client = nil
	mtx.Unlock()
	if c != nil {
		c.shutdown()
	}
}

func (c *Client) push(rec Record) {
	if rec.When.IsZero() {
		rec.When = time.Now()
	}
	c.operationQueue.Push(rec)
	c.checkOperationQueueLen()
}

func (c *Client) checkOperationQueueLen() {
	qlen := c.operationQueue.Len()
	warnLen := c.cfg.GetQueueWarnLen()
	if warnLen <= 0 {
		warnLen = 100
	}
	if qlen > warnLen && qlen%warnLen == 0 && c.recentWarnedQueueLen != qlen {
		slog.Warn("journal operation queue is long", "len", qlen)
		c.recentWarnedQueueLen = qlen
	}
}

func (c *Client) shutdown() {
	c.shutdownOnce.Do(func() {
		var waitTime time.Duration
		for c.operationQueue.Len() > 0 {
			if waitTime > 10*time.Second {
				slog.Warn("journal shutdown timeout", "left", c.operationQueue.Len())
				break
			}
			t := 100 * time.Millisecond
			waitTime += t
			time.Sleep(t)
		}

		c.operationQueue.Close()
		<-c.shutdownNotify
	})
}

func (c *Client) drainRoutine() {
	defer func() {
		err := recover()
		if err != nil {
			slog.Error("journal routine paniced", "err", err)
		} else {
			close(c.shutdownNotify)
		}
	}()

	for {
		item := c.operationQueue.Pop()
		if item == nil {
			break
		}

		rec, ok := item.(Record)
		if !ok {
			slog.Error("journal: unknown record", "item", item)
			continue
		}

		op := opmon.StartOperation("journal:" + rec.Op)
		c.write(rec)
		op.Finish(c.cfg.GetSlowOpThreshold())
	}
}

func (c *Client) write(rec Record) {
	args := []interface{}{"op", rec.Op, "key", rec.Key, "when", rec.When}
	if rec.Attr != "" {
		args = append(args, "attr", rec.Attr)
	}
	if rec.NewKey != "" {
		args = append(args, "newKey", rec.NewKey)
	}
	if rec.Err != nil {
		args = append(args, "err", rec.Err)
		slog.Warn("journal", args...)
		return
	}
	slog.Info("journal", args...)
}
