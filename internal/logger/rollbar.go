package logger

import (
	"log"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"aiacademy/internal/config"
)

// RollbarLogger reports to Rollbar and echoes every entry to std
type RollbarLogger struct {
	std *log.Logger
}

var _ Logger = (*RollbarLogger)(nil)

// NewRollbarLogger configures the global Rollbar client. Reporting is
// disabled when no token is configured.
func NewRollbarLogger(std *log.Logger, conf *config.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetServerRoot("aiacademy")
	rollbar.SetStackTracer(errors.StackTracer)
	rollbar.SetEnabled(conf.RollbarToken != "")
	return &RollbarLogger{std: std}
}

// Close flushes queued reports
func (l *RollbarLogger) Close() error {
	rollbar.Close()
	return nil
}

// expected args: error, map[string]interface{}, Person
func (l *RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	var personSet bool
	out := make([]interface{}, 0, len(args)+1)
	out = append(out, msg)
	for _, arg := range args {
		if p, ok := arg.(Person); ok {
			if !personSet {
				rollbar.SetPerson(p.ID, p.Name, p.Email)
				personSet = true
			}
			continue
		}
		out = append(out, arg)
	}
	if !personSet {
		rollbar.ClearPerson()
	}
	return out
}

// print echoes a prepared entry: message first, then its extras
func (l *RollbarLogger) print(entry []interface{}) {
	l.std.Println(entry[0])
	for _, arg := range entry[1:] {
		l.std.Printf("%+v\n", arg)
	}
}

func (l *RollbarLogger) Debug(msg string, args ...interface{}) {
	entry := l.prepare(msg, args)
	rollbar.Debug(entry...)
	l.print(entry)
}

func (l *RollbarLogger) Info(msg string, args ...interface{}) {
	entry := l.prepare(msg, args)
	rollbar.Info(entry...)
	l.print(entry)
}

func (l *RollbarLogger) Warn(msg string, args ...interface{}) {
	entry := l.prepare(msg, args)
	rollbar.Warning(entry...)
	l.print(entry)
}

func (l *RollbarLogger) Error(msg string, args ...interface{}) {
	entry := l.prepare(msg, args)
	rollbar.Error(entry...)
	l.print(entry)
}

func (l *RollbarLogger) Fatal(msg string, args ...interface{}) {
	entry := l.prepare(msg, args)
	rollbar.Critical(entry...)
	l.print(entry)
	rollbar.Close()
	l.std.Fatal(msg)
}
