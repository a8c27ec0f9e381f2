package logutil

import (
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig 로거 설정. Filename이 비어 있으면 stderr로 출력한다.
type LogConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	Filename   string `toml:"filename"`
	MaxSize    int    `toml:"max_size"`
	MaxDays    int    `toml:"max_days"`
	MaxBackups int    `toml:"max_backups"`
}

var globalLogger atomic.Pointer[zap.Logger]

// fileSink 현재 전역 로거가 쓰는 파일. 로거를 바꿀 때 이전 것을 닫는다
var (
	sinkMu   sync.Mutex
	fileSink *lumberjack.Logger
)

func init() {
	SetupLogger(&LogConfig{Level: "info", Format: "console"})
}

// GetGlobalLogger 전역 로거
func GetGlobalLogger() *zap.Logger {
	return globalLogger.Load()
}

func replaceGlobalLogger(l *zap.Logger) {
	globalLogger.Store(l)
}

// SetupLogger 설정으로 전역 로거를 교체한다. 이전 로그 파일은 닫힌다
func SetupLogger(cfg *LogConfig) {
	sinkMu.Lock()
	defer sinkMu.Unlock()

	var sink *lumberjack.Logger
	syncer := getConsoleSyncer()
	if cfg.Filename != "" {
		sink = cfg.getFileSink()
		syncer = zapcore.AddSync(sink)
	}
	core := zapcore.NewCore(cfg.getEncoder(), syncer, cfg.getLevel())
	replaceGlobalLogger(zap.New(core, cfg.getOptions()...))

	if fileSink != nil {
		_ = fileSink.Close()
	}
	fileSink = sink
}

func (cfg *LogConfig) getLevel() zap.AtomicLevel {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}
	return level
}

func (cfg *LogConfig) getOptions() []zap.Option {
	return []zap.Option{zap.AddStacktrace(zapcore.FatalLevel), zap.AddCaller()}
}

func (cfg *LogConfig) getEncoder() zapcore.Encoder {
	return getLoggerEncoder(cfg.Format)
}

func (cfg *LogConfig) getFileSink() *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSize,
		MaxAge:     cfg.MaxDays,
		MaxBackups: cfg.MaxBackups,
		LocalTime:  true,
	}
}

func getConsoleSyncer() zapcore.WriteSyncer {
	return zapcore.Lock(os.Stderr)
}

func getLoggerEncoder(format string) zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		TimeKey:        "time",
		NameKey:        "name",
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05.000000 -0700"),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	switch strings.ToLower(format) {
	case "json":
		return zapcore.NewJSONEncoder(encoderConfig)
	default:
		return zapcore.NewConsoleEncoder(encoderConfig)
	}
}
