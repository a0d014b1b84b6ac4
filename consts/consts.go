package consts

const (
	TIMER_EVENT = iota + 1
	CALLATER_EVT
	CLOSE_EVQ_EVT

	ATTR_PROTECT_EVENT
	ATTR_UNPROTECT_EVENT
	ATTR_CHANGED_EVENT
	ATTR_DEL_DENIED_EVENT
)
