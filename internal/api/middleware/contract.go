package middleware

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
