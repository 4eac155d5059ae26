package logging

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// appenderLogger fans every enabled entry out to its appenders.
type appenderLogger struct {
	name      string
	level     AtomicLevel
	inUTC     bool
	appenders []Appender
}

func newAppenderLogger(name string, level Level, inUTC bool, appenders ...Appender) *appenderLogger {
	return &appenderLogger{name: name, level: NewAtomicLevelAt(level), inUTC: inUTC, appenders: appenders}
}

func (l *appenderLogger) AddAppender(appender Appender) {
	l.appenders = append(l.appenders, appender)
}

func (l *appenderLogger) SetLevel(level Level) {
	l.level.Set(level)
}

func (l *appenderLogger) GetLevel() Level {
	return l.level.Get()
}

func (l *appenderLogger) Sublogger(subname string) Logger {
	name := subname
	if l.name != "" {
		name = l.name + "." + subname
	}
	return newAppenderLogger(name, l.level.Get(), l.inUTC, l.appenders...)
}

func (l *appenderLogger) Sync() error {
	var err error
	for _, appender := range l.appenders {
		err = multierr.Append(err, appender.Sync())
	}
	return err
}

// enabled reports whether an entry at level is written. The global debug flag overrides the
// logger's own level.
func (l *appenderLogger) enabled(level Level) bool {
	return GlobalLogLevel.Level() == zapcore.DebugLevel || level >= l.level.Get()
}

// write must be called directly from the exported logging method so the caller lookup lands on the
// user's frame.
func (l *appenderLogger) write(level Level, msg string, fields []zapcore.Field) {
	now := time.Now()
	if l.inUTC {
		now = now.UTC()
	}
	entry := zapcore.Entry{
		Level:      level.AsZap(),
		Time:       now,
		LoggerName: l.name,
		Message:    msg,
		Caller:     callerOutsideLogger(),
	}
	for _, appender := range l.appenders {
		if err := appender.Write(entry, fields); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

var errUnpairedKey = errors.New("unpaired log key")

// keysAndValuesToFields pairs up alternating keys and values. Keys are printed with %v, a trailing
// key without a value records errUnpairedKey in its place.
func keysAndValuesToFields(keysAndValues []interface{}) []zapcore.Field {
	if len(keysAndValues) == 0 {
		return nil
	}
	fields := make([]zapcore.Field, 0, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if i+1 == len(keysAndValues) {
			fields = append(fields, zap.Any(key, errUnpairedKey))
			break
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}

func (l *appenderLogger) Debug(args ...interface{}) {
	if l.enabled(DEBUG) {
		l.write(DEBUG, fmt.Sprint(args...), nil)
	}
}

func (l *appenderLogger) Debugf(template string, args ...interface{}) {
	if l.enabled(DEBUG) {
		l.write(DEBUG, fmt.Sprintf(template, args...), nil)
	}
}

func (l *appenderLogger) Debugw(msg string, keysAndValues ...interface{}) {
	if l.enabled(DEBUG) {
		l.write(DEBUG, msg, keysAndValuesToFields(keysAndValues))
	}
}

func (l *appenderLogger) Info(args ...interface{}) {
	if l.enabled(INFO) {
		l.write(INFO, fmt.Sprint(args...), nil)
	}
}

func (l *appenderLogger) Infof(template string, args ...interface{}) {
	if l.enabled(INFO) {
		l.write(INFO, fmt.Sprintf(template, args...), nil)
	}
}

func (l *appenderLogger) Infow(msg string, keysAndValues ...interface{}) {
	if l.enabled(INFO) {
		l.write(INFO, msg, keysAndValuesToFields(keysAndValues))
	}
}

func (l *appenderLogger) Warn(args ...interface{}) {
	if l.enabled(WARN) {
		l.write(WARN, fmt.Sprint(args...), nil)
	}
}

func (l *appenderLogger) Warnf(template string, args ...interface{}) {
	if l.enabled(WARN) {
		l.write(WARN, fmt.Sprintf(template, args...), nil)
	}
}

func (l *appenderLogger) Warnw(msg string, keysAndValues ...interface{}) {
	if l.enabled(WARN) {
		l.write(WARN, msg, keysAndValuesToFields(keysAndValues))
	}
}

func (l *appenderLogger) Error(args ...interface{}) {
	if l.enabled(ERROR) {
		l.write(ERROR, fmt.Sprint(args...), nil)
	}
}

func (l *appenderLogger) Errorf(template string, args ...interface{}) {
	if l.enabled(ERROR) {
		l.write(ERROR, fmt.Sprintf(template, args...), nil)
	}
}

func (l *appenderLogger) Errorw(msg string, keysAndValues ...interface{}) {
	if l.enabled(ERROR) {
		l.write(ERROR, msg, keysAndValuesToFields(keysAndValues))
	}
}

// callerOutsideLogger returns the frame that called the exported logging method. The stack at this
// point is callerOutsideLogger, write, the logging method, then the caller.
func callerOutsideLogger() zapcore.EntryCaller {
	const skip = 3
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return zapcore.EntryCaller{}
	}
	caller := zapcore.EntryCaller{Defined: true, PC: pc, File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		caller.Function = fn.Name()
	}
	return caller
}
