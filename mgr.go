package protected

import (
	"time"

	"github.com/pkg/errors"

	"github.com/jager/protected/consts"
	"github.com/jager/protected/evq"
	"github.com/jager/protected/internal/pkg/journal"
	"github.com/jager/protected/internal/pkg/opmon"
	"github.com/jager/protected/timer"
)

var NotExistsErr = errors.New("NotExistsErr")

var (
	mgrs            []*AttrMgr
	slowOpThreshold time.Duration
)

// AttrMgr is a named Attr wired into the package lifecycle: once Start
// has run, dirty managers are swept periodically and announced through
// the event queue and the diagnostics journal.
type AttrMgr struct {
	*Attr
	name string
	id   interface{}
}

func NewAttrMgr(name string, id interface{}, values map[string]interface{}, seedNames ...string) *AttrMgr {
	a := NewAttr(values, seedNames...)
	a.name = name
	m := &AttrMgr{
		name: name,
		id:   id,
		Attr: a,
	}
	mgrs = append(mgrs, m)
	return m
}

// GetAttrMgr finds a previously created manager by name and id.
func GetAttrMgr(name string, id interface{}) (*AttrMgr, error) {
	for _, m := range mgrs {
		if m.name == name && m.id == id {
			return m, nil
		}
	}
	return nil, NotExistsErr
}

func (m *AttrMgr) GetAttrID() interface{} {
	return m.id
}

// Flush posts a change event for a dirty manager and clears the flag.
// The sweep ticker calls this; calling it directly forces an immediate
// announcement.
func (m *AttrMgr) Flush() {
	if !m.Dirty() {
		return
	}
	m.SetDirty(false)
	journal.Push(journal.Record{Op: "changed", Attr: m.name})
	evq.PostEvent(evq.NewCommonEvent(consts.ATTR_CHANGED_EVENT, m.name, m.id))
}

func sweep() {
	for _, m := range mgrs {
		m.Flush()
	}
}

// Start boots the journal client, operation monitoring and the periodic
// dirty sweep. Attrs and AttrMgrs work without Start; only the sweep and
// the journal side channel need it.
func Start(cfg journal.Config) {
	slowOpThreshold = cfg.GetSlowOpThreshold()
	journal.GetOrNewClient(cfg)
	opmon.Initialize(cfg.GetDumpInterval())
	evq.Start()
	timer.AddTicker(cfg.GetSweepInterval(), sweep)
	timer.StartTicks(time.Second)
}

// Stop flushes remaining state, drains the event queue and shuts the
// journal down.
func Stop() {
	sweep()
	evq.Stop()
	journal.Shutdown()
}
