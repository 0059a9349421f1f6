package logger

import (
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type globalFactory struct {
	sync.Mutex
	config  GlobalConfig
	root    zerolog.Logger
	loggers map[string]*ContextLogger
}

// Singleton for managing application wide logging.
var globalFactoryImpl = newGlobalFactory()

func newGlobalFactory() *globalFactory {
	gf := &globalFactory{
		loggers: map[string]*ContextLogger{},
	}
	gf.updateFromConfig(developerConfiguration())
	return gf
}

func developerConfiguration() GlobalConfig {
	return GlobalConfig{
		DefaultLevel:  INFO,
		PackageLevels: map[string]LogLevel{},
		ConsoleFormat: true,
		Writer:        os.Stderr,
	}
}

// CreateForPackage creates logger named after the caller package.
func CreateForPackage() Logger {
	return Create(callerPackageName())
}

// Create creates custom named logger
func Create(name string) Logger {
	return globalFactoryImpl.create(name)
}

// UpdateGlobalConfig updates global config and rebuilds all loggers accordingly.
func UpdateGlobalConfig(config GlobalConfig) {
	globalFactoryImpl.Lock()
	defer globalFactoryImpl.Unlock()

	globalFactoryImpl.updateFromConfig(config)
}

func (gf *globalFactory) updateFromConfig(config GlobalConfig) {
	if config.Writer == nil {
		config.Writer = os.Stderr
	}
	if config.PackageLevels == nil {
		config.PackageLevels = map[string]LogLevel{}
	}
	gf.config = config

	zerolog.TimeFieldFormat = time.RFC3339Nano
	if config.ConsoleFormat {
		gf.root = zerolog.New(zerolog.ConsoleWriter{Out: config.Writer}).With().Timestamp().Logger()
	} else {
		gf.root = zerolog.New(config.Writer).With().Timestamp().Logger()
	}
	for name, logger := range gf.loggers {
		*logger = *newContextLogger(gf.root, name, gf.loggerLevel(name))
	}
}

func (gf *globalFactory) create(name string) Logger {
	gf.Lock()
	defer gf.Unlock()

	if logger, ok := gf.loggers[name]; ok {
		return logger
	}
	// Logging configuration specifies levels based on logger names. These are
	// arbitrary names, but it's expected each package creates one named after
	// the package name.
	cl := newContextLogger(gf.root, name, gf.loggerLevel(name))
	gf.loggers[name] = cl
	return cl
}

func (gf *globalFactory) loggerLevel(loggerName string) LogLevel {
	if level, ok := gf.config.PackageLevels[loggerName]; ok {
		return level
	}
	return gf.config.DefaultLevel
}

func callerPackageName() string {
	pc, _, _, _ := runtime.Caller(2)
	// For example: github.com/assetchain/assetchain/internal/currency.init
	pcName := runtime.FuncForPC(pc).Name()
	if idx := strings.LastIndex(pcName, "/"); idx >= 0 {
		pcName = pcName[idx+1:]
	}
	if idx := strings.Index(pcName, "."); idx >= 0 {
		pcName = pcName[:idx]
	}
	return pcName
}
