package scheduler

// agentNotFoundError signals a submission for an unregistered agent.
type agentNotFoundError struct{ agent string }

func (e agentNotFoundError) Error() string { return "agent not found: " + e.agent }

// ErrAgentNotFound returns an error for an agent id missing from the registry.
func ErrAgentNotFound(agent string) error { return agentNotFoundError{agent: agent} }

// IsAgentNotFound reports whether the error indicates an unknown agent id.
func IsAgentNotFound(err error) bool {
	_, ok := err.(agentNotFoundError)
	return ok
}

// queueFullError signals backpressure for 429 mapping.
type queueFullError struct{ depth int }

func (e queueFullError) Error() string { return "queue full" }

// ErrQueueFull constructs a queueFullError for the configured depth.
func ErrQueueFull(depth int) error { return queueFullError{depth: depth} }

// IsQueueFull reports whether err indicates backpressure (return 429).
func IsQueueFull(err error) bool {
	_, ok := err.(queueFullError)
	return ok
}

// resourceLoadError wraps a loader failure during load.
type resourceLoadError struct {
	resource string
	err      error
}

func (e resourceLoadError) Error() string { return "load " + e.resource + ": " + e.err.Error() }
func (e resourceLoadError) Unwrap() error { return e.err }

// ErrResourceLoad wraps err as a load failure for the given resource.
func ErrResourceLoad(resource string, err error) error {
	return resourceLoadError{resource: resource, err: err}
}

// IsResourceLoadFailure reports whether err came from the load boundary.
func IsResourceLoadFailure(err error) bool {
	_, ok := err.(resourceLoadError)
	return ok
}

// resourceUnloadError wraps a loader failure during unload.
type resourceUnloadError struct {
	resource string
	err      error
}

func (e resourceUnloadError) Error() string { return "unload " + e.resource + ": " + e.err.Error() }
func (e resourceUnloadError) Unwrap() error { return e.err }

// ErrResourceUnload wraps err as an unload failure for the given resource.
func ErrResourceUnload(resource string, err error) error {
	return resourceUnloadError{resource: resource, err: err}
}

// IsResourceUnloadFailure reports whether err came from the unload boundary.
func IsResourceUnloadFailure(err error) bool {
	_, ok := err.(resourceUnloadError)
	return ok
}

// executionError wraps a failure from the execution boundary.
type executionError struct {
	agent string
	err   error
}

func (e executionError) Error() string { return "execute " + e.agent + ": " + e.err.Error() }
func (e executionError) Unwrap() error { return e.err }

// ErrExecution wraps err as an execution failure for the given agent.
func ErrExecution(agent string, err error) error { return executionError{agent: agent, err: err} }

// IsExecutionFailure reports whether err came from the execution boundary.
func IsExecutionFailure(err error) bool {
	_, ok := err.(executionError)
	return ok
}

// dependencyUnavailableError signals a missing external dependency (e.g. a
// loader runtime not compiled in) so the HTTP layer can return 503.
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing/failed runtime dependency.
func IsDependencyUnavailable(err error) bool {
	_, ok := err.(dependencyUnavailableError)
	return ok
}
