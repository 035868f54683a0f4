package reconcile

import (
	"github.com/imamik/ranchsync/internal/platform/rancher"
)

// Presence is the desired state of a named resource.
type Presence string

const (
	PresencePresent Presence = "present"
	PresenceAbsent  Presence = "absent"
)

// ParsePresence validates a state string. An empty string means present.
func ParsePresence(s string) (Presence, error) {
	switch Presence(s) {
	case "":
		return PresencePresent, nil
	case PresencePresent, PresenceAbsent:
		return Presence(s), nil
	default:
		return "", ConfigurationError("", "", "the state specified may only be either 'present' or 'absent', got %q", s)
	}
}

// Valid reports whether p is one of the two known values.
func (p Presence) Valid() bool {
	return p == PresencePresent || p == PresenceAbsent
}

// Verdict is the classified existence of a named resource.
type Verdict int

const (
	VerdictIndeterminate Verdict = iota
	VerdictAbsent
	VerdictPresent
)

func (v Verdict) String() string {
	switch v {
	case VerdictAbsent:
		return "absent"
	case VerdictPresent:
		return "present"
	default:
		return "indeterminate"
	}
}

// Classify derives a Verdict from a lookup page. Only the first record is
// compared; a second record carrying the same name makes the result
// indeterminate instead of picking one.
func Classify(coll *rancher.Collection, name string) Verdict {
	if coll == nil || len(coll.Data) == 0 || coll.Data[0].Name != name {
		return VerdictAbsent
	}
	if len(coll.Named(name)) == 1 {
		return VerdictPresent
	}
	return VerdictIndeterminate
}

// Action is what the executor does for one invocation.
type Action int

const (
	ActionFatal Action = iota
	ActionNoOp
	ActionCreate
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionNoOp:
		return "noop"
	case ActionCreate:
		return "create"
	case ActionDelete:
		return "delete"
	default:
		return "fatal"
	}
}

// Select maps a verdict and a desired presence to an action.
func Select(v Verdict, p Presence) Action {
	switch {
	case v == VerdictPresent && p == PresencePresent:
		return ActionNoOp
	case v == VerdictPresent && p == PresenceAbsent:
		return ActionDelete
	case v == VerdictAbsent && p == PresencePresent:
		return ActionCreate
	case v == VerdictAbsent && p == PresenceAbsent:
		return ActionNoOp
	default:
		return ActionFatal
	}
}
