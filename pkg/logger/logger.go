package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats accepted by Options.Format. Anything else is treated as JSON.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// maxStackFrames bounds the caller stack attached to error entries.
const maxStackFrames = 24

// Options configures the structured logger.
type Options struct {
	ServiceName string
	// Env is stamped on every entry when set.
	Env       string
	Level     zerolog.Level
	WarnStack bool
	Format    string
	Output    io.Writer
}

// Logger writes structured entries whose fields are carried on a context.
// A nil *Logger discards everything.
type Logger struct {
	root      zerolog.Logger
	warnStack bool
}

type scopeKey struct{}

func New(opts Options) *Logger {
	level := opts.Level
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano

	fields := zerolog.New(writerFor(opts.Format, opts.Output)).With().Timestamp()
	if opts.ServiceName != "" {
		fields = fields.Str("service", opts.ServiceName)
	}
	if opts.Env != "" {
		fields = fields.Str("env", opts.Env)
	}
	return &Logger{root: fields.Logger().Level(level), warnStack: opts.WarnStack}
}

func writerFor(format string, out io.Writer) io.Writer {
	if out == nil {
		out = os.Stdout
	}
	if strings.EqualFold(strings.TrimSpace(format), FormatConsole) {
		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}
	return out
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{root: zerolog.Nop()}
}

// ParseLevel maps a config value to a level; blank or unknown values mean info.
func ParseLevel(value string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(value)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *Logger) scope(ctx context.Context) zerolog.Logger {
	if ctx != nil {
		if scoped, ok := ctx.Value(scopeKey{}).(zerolog.Logger); ok {
			return scoped
		}
	}
	return l.root
}

func (l *Logger) extend(ctx context.Context, add func(zerolog.Context) zerolog.Context) context.Context {
	if l == nil {
		return ctx
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, scopeKey{}, add(l.scope(ctx).With()).Logger())
}

func (l *Logger) WithField(ctx context.Context, key string, value any) context.Context {
	return l.extend(ctx, func(c zerolog.Context) zerolog.Context {
		return c.Interface(key, value)
	})
}

// WithFields attaches every entry of fields; keys are written in sorted order.
func (l *Logger) WithFields(ctx context.Context, fields map[string]any) context.Context {
	if len(fields) == 0 {
		return ctx
	}
	return l.extend(ctx, func(c zerolog.Context) zerolog.Context {
		return c.Fields(fields)
	})
}

func (l *Logger) WithRequestID(ctx context.Context, requestID string) context.Context {
	return l.extend(ctx, func(c zerolog.Context) zerolog.Context {
		return c.Str("request_id", requestID)
	})
}

func (l *Logger) WithProductID(ctx context.Context, productID uint) context.Context {
	return l.extend(ctx, func(c zerolog.Context) zerolog.Context {
		return c.Uint("product_id", productID)
	})
}

func (l *Logger) WithSaleID(ctx context.Context, saleID uint) context.Context {
	return l.extend(ctx, func(c zerolog.Context) zerolog.Context {
		return c.Uint("sale_id", saleID)
	})
}

func (l *Logger) WithOperation(ctx context.Context, operation string) context.Context {
	return l.extend(ctx, func(c zerolog.Context) zerolog.Context {
		return c.Str("operation", operation)
	})
}

func (l *Logger) Debug(ctx context.Context, msg string) {
	l.emit(ctx, zerolog.DebugLevel, msg, nil)
}

func (l *Logger) Info(ctx context.Context, msg string) {
	l.emit(ctx, zerolog.InfoLevel, msg, nil)
}

// Warn attaches the caller stack only when WarnStack is enabled.
func (l *Logger) Warn(ctx context.Context, msg string) {
	l.emit(ctx, zerolog.WarnLevel, msg, nil)
}

// Error always attaches the caller stack.
func (l *Logger) Error(ctx context.Context, msg string, err error) {
	l.emit(ctx, zerolog.ErrorLevel, msg, err)
}

func (l *Logger) emit(ctx context.Context, level zerolog.Level, msg string, err error) {
	if l == nil {
		return
	}
	scoped := l.scope(ctx)
	event := scoped.WithLevel(level)
	if event == nil {
		return
	}
	if err != nil {
		event = event.Err(err)
	}
	if level == zerolog.ErrorLevel || (level == zerolog.WarnLevel && l.warnStack) {
		// Frames start at whoever called Debug, Info, Warn or Error.
		event = event.Strs("stack", callerStack(3))
	}
	event.Msg(msg)
}

// callerStack lists "func file:line" frames above skip, outermost last.
func callerStack(skip int) []string {
	pcs := make([]uintptr, maxStackFrames)
	n := runtime.Callers(skip+1, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	out := make([]string, 0, n)
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			out = append(out, fmt.Sprintf("%s %s:%d", frame.Function, frame.File, frame.Line))
		}
		if !more {
			break
		}
	}
	return out
}
