package logging

// Logger is the leveled, structured logger handed to every package of the kinematics tooling. The
// `w` variants take alternating keys and values, the `f` variants a format template.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})

	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})

	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Warnw(msg string, keysAndValues ...interface{})

	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	// SetLevel changes the lowest level this logger writes. Subloggers keep their own level.
	SetLevel(level Level)
	GetLevel() Level
	// Sublogger returns a logger named `<name>.<subname>` sharing the current appenders.
	Sublogger(subname string) Logger
	AddAppender(appender Appender)
	// Sync flushes every appender.
	Sync() error
}
