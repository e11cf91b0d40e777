// Package trust is the kernel's leveled logger. The API (a bitmask you can
// set at runtime, Errorf/Warnf/Infof/Debugf/Statsf, and a non-maskable
// Fatalf) is kept verbatim from the teacher's lib/trust package; only the
// formatting/output backend changed, from a bare fmt.Printf over a UART to
// github.com/sirupsen/logrus, which the pack's gvisor sibling already pulls
// in for exactly this kind of structured, leveled runtime logging.
package trust

import "github.com/sirupsen/logrus"

// MaskLevel is a bitmask of which log levels are currently enabled.
type MaskLevel int

const (
	Nothing   MaskLevel = 0x0
	ErrorMask MaskLevel = 0x1
	WarnMask  MaskLevel = 0x2
	InfoMask  MaskLevel = 0x4
	DebugMask MaskLevel = 0x8
	StatsMask MaskLevel = 0x10
)

// Logger wraps a *logrus.Entry with the teacher's level mask. The zero
// value is not usable; construct with New.
type Logger struct {
	entry *logrus.Entry
	level MaskLevel
}

// New returns a Logger at the given initial mask, tagged with the given
// component name (analogous to the teacher hardcoding "kernel" prefixes
// into every trust.Debugf call site).
func New(component string, level MaskLevel) *Logger {
	base := logrus.New()
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	base.SetLevel(logrus.DebugLevel) // filtering is done by the mask
	return &Logger{
		entry: base.WithField("component", component),
		level: level,
	}
}

// SetLevel replaces the mask and returns the previous one.
func (l *Logger) SetLevel(mask MaskLevel) MaskLevel {
	prev := l.level
	l.level = mask
	return prev
}

// Level returns the current mask.
func (l *Logger) Level() MaskLevel {
	return l.level
}

func (l *Logger) enabled(m MaskLevel) bool {
	return l.level&m != 0
}

// Errorf logs at ErrorMask.
func (l *Logger) Errorf(format string, args ...any) {
	if l.enabled(ErrorMask) {
		l.entry.Errorf(format, args...)
	}
}

// Warnf logs at WarnMask.
func (l *Logger) Warnf(format string, args ...any) {
	if l.enabled(WarnMask) {
		l.entry.Warnf(format, args...)
	}
}

// Infof logs at InfoMask.
func (l *Logger) Infof(format string, args ...any) {
	if l.enabled(InfoMask) {
		l.entry.Infof(format, args...)
	}
}

// Debugf logs at DebugMask. This is the workhorse call used throughout
// the scheduler to trace admission decisions, the way the teacher traced
// counter/priority on every reschedule in joy/schedule.go.
func (l *Logger) Debugf(format string, args ...any) {
	if l.enabled(DebugMask) {
		l.entry.Debugf(format, args...)
	}
}

// Statsf logs a named counter/gauge at StatsMask.
func (l *Logger) Statsf(name string, format string, args ...any) {
	if l.enabled(StatsMask) {
		l.entry.WithField("stat", name).Infof(format, args...)
	}
}

// Fatalf logs unconditionally (it is not maskable, per the teacher's
// fatalMask) and then terminates the process via logrus.Fatal (os.Exit(1)).
func (l *Logger) Fatalf(format string, args ...any) {
	l.entry.Fatalf(format, args...)
}
