package server

// Server is the lifecycle handle for the sync server process: RunServer
// blocks until a stop signal arrives, Shutdown stops serving gracefully.
type Server interface {
	RunServer()
	Shutdown()
}
