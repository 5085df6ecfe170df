package logx

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	colorable "github.com/mattn/go-colorable"
	isatty "github.com/mattn/go-isatty"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	LevelCount
)

type useColor int

const (
	ColorAuto useColor = iota
	ColorOn
	ColorOff
)

type logLevels [LevelCount]string

var levelstrings = [2]logLevels{
	// uncolored
	{
		DEBUG: "  DEBUG",
		INFO:  "   INFO",
		WARN:  "WARNING",
		ERROR: "  ERROR",
	},
	// colored
	{
		DEBUG: "\033[37m  DEBUG\033[0m",
		INFO:  "\033[34m   INFO\033[0m",
		WARN:  "\033[33mWARNING\033[0m",
		ERROR: "\033[31m  ERROR\033[0m",
	},
}

var formatstrings = [2]string{
	// uncolored
	"%s %s [%s] ",
	// colored
	"%s %s [\033[36m%s\033[0m] ",
}

// ParseLevel accepts debug, info, warn(ing) and error in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warn", "warning":
		return WARN, nil
	case "error":
		return ERROR, nil
	}
	return INFO, fmt.Errorf("unknown log level %q", s)
}

// Logger writes leveled lines to a single output. It is safe for
// concurrent use.
type Logger struct {
	l sync.Mutex
	w io.Writer
	m Level
	t int
}

// New logs to f. Colors are used when c is ColorOn, or when c is
// ColorAuto and f is a terminal.
func New(f *os.File, lvl Level, c useColor) *Logger {
	fd := f.Fd()
	if c == ColorOn || (c == ColorAuto && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))) {
		return &Logger{w: colorable.NewColorable(f), m: lvl, t: 1}
	}
	return &Logger{w: f, m: lvl}
}

// NewWriter logs uncolored lines to w.
func NewWriter(w io.Writer, lvl Level) *Logger {
	return &Logger{w: w, m: lvl}
}

// Section returns a view of the logger tagging every line with name.
func (x *Logger) Section(name string) Section {
	return Section{name: name, x: x}
}

func (x *Logger) print(section string, lvl Level, msg string) {
	if lvl < x.m || lvl >= LevelCount {
		return
	}
	x.l.Lock()
	defer x.l.Unlock()

	ts := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(x.w, formatstrings[x.t], ts, levelstrings[x.t][lvl], section)
	io.WriteString(x.w, msg)
	if !strings.HasSuffix(msg, "\n") {
		io.WriteString(x.w, "\n")
	}
}

type Section struct {
	name string
	x    *Logger
}

func (s Section) LogPrint(lvl Level, v ...interface{}) {
	s.x.print(s.name, lvl, fmt.Sprint(v...))
}

func (s Section) LogPrintf(lvl Level, format string, v ...interface{}) {
	s.x.print(s.name, lvl, fmt.Sprintf(format, v...))
}
