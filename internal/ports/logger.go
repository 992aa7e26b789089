package ports

// Logger is the logging surface components depend on.
type Logger interface {
	Debug(msg string)
	Error(msg string)
}

// NoOpLogger discards everything.
type NoOpLogger struct{}

func (NoOpLogger) Debug(string) {}
func (NoOpLogger) Error(string) {}
