package admin

import "fmt"

// Status is the closed set of results an admin action can produce.
// Transport layers map each status to a stable external code.
type Status int

const (
	StatusSuccess Status = iota
	StatusInvalidArgument
	StatusNotFound
	StatusPlayerOffline
	StatusUnsupported
	StatusNotImplemented
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusInvalidArgument:
		return "invalid_argument"
	case StatusNotFound:
		return "not_found"
	case StatusPlayerOffline:
		return "player_offline"
	case StatusUnsupported:
		return "unsupported"
	case StatusNotImplemented:
		return "not_implemented"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome is the typed result of applying an admin action.
type Outcome struct {
	Status  Status
	Message string
}

// OK reports whether the action was applied.
func (o Outcome) OK() bool {
	return o.Status == StatusSuccess
}

func (o Outcome) String() string {
	return fmt.Sprintf("%s: %s", o.Status, o.Message)
}

// Success reports an applied action with a human-readable message.
func Success(message string) Outcome {
	return Outcome{Status: StatusSuccess, Message: message}
}

// InvalidArgument reports a malformed identifier or parameter.
func InvalidArgument(detail string) Outcome {
	return Outcome{Status: StatusInvalidArgument, Message: detail}
}

// NotFound reports a target that does not exist. message should name the
// identifier the caller supplied.
func NotFound(message string) Outcome {
	return Outcome{Status: StatusNotFound, Message: message}
}

// PlayerOffline reports a target without the live session the action needs.
func PlayerOffline(message string) Outcome {
	return Outcome{Status: StatusPlayerOffline, Message: message}
}

// Unsupported reports an action outside this dispatcher's authority.
func Unsupported(action Action) Outcome {
	return Outcome{Status: StatusUnsupported, Message: fmt.Sprintf("'%s' not supported by the API.", action)}
}

// NotImplemented reports a recognized action that has no effect yet.
func NotImplemented(action Action) Outcome {
	return Outcome{Status: StatusNotImplemented, Message: action.String()}
}
