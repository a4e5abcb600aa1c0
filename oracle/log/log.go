package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tmlog "github.com/tendermint/tendermint/libs/log"
)

var customLog = newLogger(os.Stdout, tmlog.AllowInfo())

type logger struct {
	base tmlog.Logger
}

func newLogger(w io.Writer, level tmlog.Option) logger {
	return logger{base: tmlog.NewFilter(tmlog.NewTMLogger(tmlog.NewSyncWriter(w)), level)}
}

// InitLogger writes to stdout, keeping entries at or above level
// (debug, info, error or none).
func InitLogger(level string) error {
	opt, err := tmlog.AllowLevel(level)
	if err != nil {
		return err
	}
	customLog = newLogger(os.Stdout, opt)
	return nil
}

// ResetLogger redirects all further output to a per-process file under
// <home>/logs, keeping the current level filter.
func ResetLogger(home, level string) error {
	if home == "" {
		osHome, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}
		home = filepath.Join(osHome, ".bitoracled")
	}
	dir := filepath.Join(home, "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	opt, err := tmlog.AllowLevel(level)
	if err != nil {
		return err
	}

	name := fmt.Sprintf("%s.%d.log", filepath.Base(os.Args[0]), os.Getpid())
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	Infof("From now on, all logs will be written to %s", path)
	customLog = newLogger(file, opt)
	return nil
}

// SetOutput replaces the sink, mainly for tests.
func SetOutput(w io.Writer, level string) error {
	opt, err := tmlog.AllowLevel(level)
	if err != nil {
		return err
	}
	customLog = newLogger(w, opt)
	return nil
}

// Logger exposes the underlying logger so that keeper output lands in the
// same sink.
func Logger() tmlog.Logger {
	return customLog.base
}

func Debugf(format string, v ...any) {
	customLog.base.Debug(fmt.Sprintf(format, v...))
}

func Infof(format string, v ...any) {
	customLog.base.Info(fmt.Sprintf(format, v...))
}

func Errorf(format string, v ...any) {
	customLog.base.Error(fmt.Sprintf(format, v...))
}
