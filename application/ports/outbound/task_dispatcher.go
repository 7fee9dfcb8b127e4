package outbound

// TaskDispatcher runs work in the background. *ants.Pool satisfies it.
type TaskDispatcher interface {
	Submit(task func()) error
}
