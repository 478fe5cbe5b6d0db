package model

// Origin records how a model was chosen.
type Origin int

const (
	// OriginRequested means the user named the model explicitly.
	OriginRequested Origin = iota

	// OriginRunning means the model was already loaded by the backend.
	OriginRunning

	// OriginInstalled means the model was installed but not loaded.
	OriginInstalled
)

func (o Origin) String() string {
	switch o {
	case OriginRequested:
		return "requested"
	case OriginRunning:
		return "running"
	case OriginInstalled:
		return "installed"
	default:
		return "unknown"
	}
}

// ModelChoice is the model selected for one invocation.
type ModelChoice struct {
	Name   string
	Origin Origin
}
