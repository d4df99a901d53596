package core

// Logger is implemented by services/logger.
// args may hold an error, a map[string]interface{} of extra data or the user the record is about.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
