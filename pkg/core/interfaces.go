package core

// Logger interface for build and query logging
type Logger interface {
	Printf(format string, args ...interface{})
}
