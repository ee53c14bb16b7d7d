package agenthooks

// Keys this library reads and writes in the host's session state.
// The host owns the state object and its persistence; hooks only touch
// these keys.
const (
	StateTimerStart      = "timer_start"
	StateRequestCount    = "request_count"
	StateCustomerProfile = "customer_profile"
	StateSessionMetadata = "session_metadata"
)

// State is the per-session key/value store passed by reference into every
// hook. It is owned by the host runtime; values round-trip through the
// host's persistence layer, so numeric reads tolerate int, int64 and
// float64 representations.
//
// The host is assumed to invoke at most one hook per session at a time;
// State carries no locking.
type State map[string]any

// Float reads a numeric value as float64.
func (s State) Float(key string) (float64, bool) {
	switch v := s[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// Int reads a numeric value as int.
func (s State) Int(key string) (int, bool) {
	switch v := s[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// String reads a string value.
func (s State) String(key string) (string, bool) {
	v, ok := s[key].(string)
	return v, ok
}
