package protected

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/jager/protected/consts"
	"github.com/jager/protected/evq"
	"github.com/jager/protected/internal/pkg/journal"
	"github.com/jager/protected/internal/pkg/opmon"
)

// Accessor is a computed read defined by a concrete type on top of a
// protected storage key. Registered accessors shadow storage lookups in
// Value and make their name forbidden to Protect/Unprotect/Del, since a
// rename would desynchronize the accessor from the key it reads.
type Accessor func() interface{}

// OpResult is the outcome for one candidate name of a Protect or
// Unprotect batch. Exactly one of Changed, Reason, Err is meaningful.
type OpResult struct {
	Name    string
	Changed bool
	Reason  string
	Err     error
}

// Attr is a container of attributes whose storage keys can be toggled
// between an unprotected spelling ("name") and a protected one ("_name").
// At most one of the two spellings exists at a time; renames move, never
// copy. Nothing stops a caller from writing the raw key directly - the
// protection is a convention, not access control.
//
// Attr is not synchronized; share one instance across goroutines only
// with external locking.
type Attr struct {
	attrs     map[string]interface{}
	order     []string
	accessors map[string]Accessor
	name      string
	dirty     bool
}

// NewAttr stores every entry of values under the protected spelling of
// its key. Each extra name is seeded protected with a nil placeholder;
// use Set later to give it a value.
func NewAttr(values map[string]interface{}, names ...string) *Attr {
	a := &Attr{
		attrs:     make(map[string]interface{}),
		accessors: make(map[string]Accessor),
	}
	for _, name := range names {
		a.initProtect(name, nil)
	}
	for k, v := range values {
		a.initProtect(k, v)
	}
	return a
}

// initProtect seeds one attribute under its protected spelling. Only the
// constructor goes through here; later writes never auto-prefix.
func (a *Attr) initProtect(name string, val interface{}) {
	a.rawSet(MakeProtectedName(name), val)
}

func (a *Attr) rawSet(key string, val interface{}) {
	if _, ok := a.attrs[key]; !ok {
		a.order = append(a.order, key)
	}
	a.attrs[key] = val
}

func (a *Attr) rawDel(key string) {
	delete(a.attrs, key)
	for i, k := range a.order {
		if k == key {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

func (a *Attr) Dirty() bool {
	return a.dirty
}

func (a *Attr) SetDirty(val bool) {
	a.dirty = val
}

func (a *Attr) String() string {
	var sb strings.Builder
	sb.WriteString("Attr{")
	isFirstField := true
	for _, k := range a.order {
		if !isFirstField {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %v", k, a.attrs[k])
		isFirstField = false
	}
	sb.WriteString("}")
	return sb.String()
}

func (a *Attr) Size() int {
	return len(a.attrs)
}

// Has reports whether key is exactly a storage key, either spelling
// checked as given.
func (a *Attr) Has(key string) bool {
	_, ok := a.attrs[key]
	return ok
}

// Keys returns the storage keys in insertion order.
func (a *Attr) Keys() []string {
	return append([]string(nil), a.order...)
}

func (a *Attr) ForEachKey(f func(key string)) {
	for _, k := range a.order {
		f(k)
	}
}

// Set writes val under exactly the key given, with no prefixing. This is
// the external-assignment hook: toggling protection never changes how
// writes are spelled.
func (a *Attr) Set(key string, val interface{}) {
	a.rawSet(key, val)
	a.dirty = true
}

// Get resolves key against storage: the exact key first, then its
// protected spelling. A key stored under neither spelling is created
// with a nil value and nil is returned; reads never fail.
func (a *Attr) Get(key string) interface{} {
	if val, ok := a.attrs[key]; ok {
		return val
	}
	if val, ok := a.attrs[MakeProtectedName(key)]; ok {
		return val
	}
	a.Set(key, nil)
	return nil
}

// Value resolves name the way plain attribute access would: a registered
// accessor wins over stored spellings.
func (a *Attr) Value(name string) interface{} {
	if fn, ok := a.accessors[name]; ok {
		return fn()
	}
	return a.Get(name)
}

// Del removes each key from storage. Forbidden keys are refused with a
// warning; missing keys are logged no-ops. Del never returns an error.
func (a *Attr) Del(keys ...string) {
	for _, key := range keys {
		if a.IsForbidden(key) {
			slog.Warn("unable to delete forbidden attribute", "key", key)
			journal.Push(journal.Record{Op: "del.denied", Attr: a.name, Key: key})
			evq.PostEvent(evq.NewCommonEvent(consts.ATTR_DEL_DENIED_EVENT, a.name, key))
			continue
		}
		if !a.Has(key) {
			slog.Warn("delete of missing attribute", "key", key)
			continue
		}
		a.rawDel(key)
		a.dirty = true
		journal.Push(journal.Record{Op: "del", Attr: a.name, Key: key})
	}
}

// DefineAccessor registers a computed accessor for name. The concrete
// type declares its computed names here instead of relying on runtime
// discovery; the forbidden set derives from this registry.
func (a *Attr) DefineAccessor(name string, fn Accessor) {
	a.accessors[name] = fn
}

// Forbidden returns the names that must never be renamed or deleted:
// every registered accessor name that is not a reserved dunder name.
// It is recomputed on each call; the registry can change at runtime.
func (a *Attr) Forbidden() []string {
	names := make([]string, 0, len(a.accessors))
	for name := range a.accessors {
		if IsDunderAttr(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (a *Attr) IsForbidden(name string) bool {
	stripped := StripName(name)
	if IsDunderAttr(stripped) {
		return false
	}
	_, ok := a.accessors[stripped]
	return ok
}

// IsProtected reports whether the logical attribute behind name is
// currently stored under a protected spelling.
func (a *Attr) IsProtected(name string) bool {
	if IsProtectedName(name) && a.Has(name) {
		return true
	}
	stripped := StripName(name)
	if a.Has("_" + stripped) {
		return true
	}
	if a.Has("__" + stripped) {
		return true
	}
	return false
}

// IsUnprotected reports whether the fully-stripped spelling of name is
// stored.
func (a *Attr) IsUnprotected(name string) bool {
	return a.Has(StripName(name))
}

// updateAttr moves the value stored at oldName to newName. Reading goes
// through Get, so a vanished oldName yields a nil value rather than a
// failure; callers gate on the current state before renaming.
func (a *Attr) updateAttr(oldName, newName string) {
	data := a.Get(oldName)
	a.Set(newName, data)
	a.Del(oldName)
	journal.Push(journal.Record{Op: "rename", Attr: a.name, Key: oldName, NewKey: newName})
}

// Protect renames each named attribute from its stripped spelling to its
// protected one. With no names it operates on a snapshot of all current
// storage keys. Forbidden names and names not currently unprotected are
// skipped; a per-name failure is recorded in its result and the batch
// continues. Earlier renames in the batch stay committed regardless.
func (a *Attr) Protect(names ...string) []OpResult {
	op := opmon.StartOperation("attr.protect")
	defer op.Finish(slowOpThreshold)

	candidates := names
	if len(candidates) == 0 {
		candidates = a.Keys()
	}

	results := make([]OpResult, 0, len(candidates))
	for _, name := range candidates {
		r := OpResult{Name: name}
		switch {
		case a.IsForbidden(name):
			r.Reason = "forbidden"
		case !a.IsUnprotected(name):
			r.Reason = "not unprotected"
		default:
			old := StripName(name)
			renamed, err := MakeProtectedNameGuarded(old)
			if err != nil {
				r.Err = err
				slog.Warn("protect failed", "key", name, "err", err)
				journal.Push(journal.Record{Op: "protect", Attr: a.name, Key: name, Err: err})
			} else {
				a.updateAttr(old, renamed)
				r.Changed = true
				evq.PostEvent(evq.NewCommonEvent(consts.ATTR_PROTECT_EVENT, a.name, old, renamed))
			}
		}
		results = append(results, r)
	}
	return results
}

// Unprotect is the symmetric batch: protected spelling back to stripped.
// Same skip rules and per-name error isolation as Protect.
func (a *Attr) Unprotect(names ...string) []OpResult {
	op := opmon.StartOperation("attr.unprotect")
	defer op.Finish(slowOpThreshold)

	candidates := names
	if len(candidates) == 0 {
		candidates = a.Keys()
	}

	results := make([]OpResult, 0, len(candidates))
	for _, name := range candidates {
		r := OpResult{Name: name}
		switch {
		case a.IsForbidden(name):
			r.Reason = "forbidden"
		case !a.IsProtected(name):
			r.Reason = "not protected"
		default:
			old, err := MakeProtectedNameGuarded(StripName(name))
			if err != nil {
				r.Err = err
				slog.Warn("unprotect failed", "key", name, "err", err)
				journal.Push(journal.Record{Op: "unprotect", Attr: a.name, Key: name, Err: err})
			} else {
				renamed := UndoProtectedName(old)
				a.updateAttr(old, renamed)
				r.Changed = true
				evq.PostEvent(evq.NewCommonEvent(consts.ATTR_UNPROTECT_EVENT, a.name, old, renamed))
			}
		}
		results = append(results, r)
	}
	return results
}

// ToMap returns a copy of the current storage.
func (a *Attr) ToMap() map[string]interface{} {
	doc := make(map[string]interface{}, len(a.attrs))
	for k, v := range a.attrs {
		doc[k] = v
	}
	return doc
}

// AssignMap bulk-writes doc through Set: keys are stored exactly as
// given, no prefixing.
func (a *Attr) AssignMap(doc map[string]interface{}) {
	for k, v := range doc {
		a.Set(k, v)
	}
}
