package logging

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"
)

// writerHook позволяет logrus писать одновременно в несколько writers
// (stdout + файл) для всех уровней логирования.
type writerHook struct {
	Writer    []io.Writer
	LogLevels []logrus.Level
}

func (hook *writerHook) Fire(entry *logrus.Entry) error {
	line, err := entry.String()
	if err != nil {
		return err
	}
	for _, w := range hook.Writer {
		if _, err := w.Write([]byte(line)); err != nil {
			return err
		}
	}
	return nil
}

func (hook *writerHook) Levels() []logrus.Level {
	return hook.LogLevels
}

var e *logrus.Entry

// Logger оборачивает *logrus.Entry, чтобы сервисы не зависели
// от logrus напрямую.
type Logger struct {
	*logrus.Entry
}

// GetLogger возвращает сконфигурированный логгер приложения.
func GetLogger() *Logger {
	return &Logger{e}
}

// GetLoggerWithField возвращает дочерний логгер с дополнительным полем.
func (l *Logger) GetLoggerWithField(k string, v interface{}) *Logger {
	return &Logger{l.WithField(k, v)}
}

func init() {
	l := logrus.New()
	l.SetReportCaller(true)
	l.Formatter = &logrus.TextFormatter{
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			filename := path.Base(f.File)
			return fmt.Sprintf("%s()", f.Function), fmt.Sprintf("%s:%d", filename, f.Line)
		},
		DisableColors: false,
		FullTimestamp: true,
	}

	writers := []io.Writer{os.Stdout}

	// Файл логов опционален: если директорию создать нельзя
	// (read-only окружение, CI), пишем только в stdout.
	if err := os.MkdirAll("logs", 0755); err == nil {
		logFile, err := os.OpenFile("logs/all.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
		if err == nil {
			writers = append(writers, logFile)
		}
	}

	l.SetOutput(io.Discard)

	l.AddHook(&writerHook{
		Writer:    writers,
		LogLevels: logrus.AllLevels,
	})

	l.SetLevel(logrus.TraceLevel)

	e = logrus.NewEntry(l)
}
