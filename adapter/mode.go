package adapter

//go:generate go tool stringer -type=Mode,MemberKind -linecomment -output=mode_string.go

// Mode selects how an adapter satisfies its contract.
type Mode int

const (
	// ModeDuck forwards every contract call directly to a wrapped target.
	ModeDuck Mode = iota // duck
	// ModeIntercept routes every contract call through an Interceptor.
	ModeIntercept // intercept
)

// ParseMode converts the textual form used in configuration files to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "", "duck":
		return ModeDuck, true
	case "intercept":
		return ModeIntercept, true
	default:
		return ModeDuck, false
	}
}

// MemberKind tells an interceptor which accessor of a contract member is
// being invoked.
type MemberKind int

const (
	MemberMethod      MemberKind = iota // method
	MemberGetter                        // getter
	MemberSetter                        // setter
	MemberIndexGet                      // index-get
	MemberIndexSet                      // index-set
	MemberEventAdd                      // event-add
	MemberEventRemove                   // event-remove
)
