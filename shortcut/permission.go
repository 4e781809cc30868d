package shortcut

// Permission is the result of the one-time input monitoring query.
type Permission int

const (
	PermissionDenied Permission = iota
	PermissionGranted
	// PermissionRestartRequired means the user just granted access but the
	// running process cannot use it until it is relaunched.
	PermissionRestartRequired
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionRestartRequired:
		return "restart required"
	default:
		return "denied"
	}
}
