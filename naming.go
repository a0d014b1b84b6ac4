package protected

import (
	"strings"

	"github.com/pkg/errors"
)

// DunderAttrErr is returned when a protection prefix would be stacked on
// top of a name that already carries a dunder prefix.
var DunderAttrErr = errors.New("DunderAttrErr")

func IsDunderPrefix(s string) bool {
	return strings.HasPrefix(s, "__")
}

func IsDunderSuffix(s string) bool {
	return strings.HasSuffix(s, "__")
}

// IsDunderAttr reports whether s is a reserved name, carrying both a
// leading and a trailing double underscore.
func IsDunderAttr(s string) bool {
	return IsDunderPrefix(s) && IsDunderSuffix(s)
}

// MakeProtectedName returns the protected spelling of name. It always
// prefixes exactly once, with no reserved-name check; construction-time
// seeding goes through here.
func MakeProtectedName(name string) string {
	return "_" + name
}

// MakeProtectedNameGuarded is the rename-path variant: it refuses to
// stack a prefix onto a name that already looks reserved.
func MakeProtectedNameGuarded(name string) (string, error) {
	if len(name) > 2 && IsDunderPrefix(name) {
		return "", DunderAttrErr
	}
	return MakeProtectedName(name), nil
}

// UndoProtectedName strips exactly one leading underscore, if any.
func UndoProtectedName(name string) string {
	return strings.TrimPrefix(name, "_")
}

func IsProtectedName(name string) bool {
	return strings.HasPrefix(name, "_")
}

// StripName removes every leading and trailing underscore, yielding the
// fully-stripped spelling of a logical attribute name.
func StripName(name string) string {
	return strings.TrimRight(strings.TrimLeft(name, "_"), "_")
}
