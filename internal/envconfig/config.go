// Package envconfig reads the pool tool's settings from the environment.
package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/pool/internal/logutil"
	"github.com/born-ml/pool/internal/parallel"
)

var (
	// Set via POOL_DEBUG in the environment: 0 info, 1 debug, 2 trace
	Debug int
	// Set via POOL_NUM_WORKERS in the environment (0 = one per CPU)
	NumWorkers int
	// Set via POOL_SEQUENTIAL in the environment
	Sequential bool
)

type EnvVar struct {
	Name        string
	Value       any
	Description string
}

func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"POOL_DEBUG":       {"POOL_DEBUG", Debug, "Show additional debug information (1 = debug, 2 = trace)"},
		"POOL_NUM_WORKERS": {"POOL_NUM_WORKERS", NumWorkers, "Maximum number of pooling workers (default one per CPU)"},
		"POOL_SEQUENTIAL":  {"POOL_SEQUENTIAL", Sequential, "Disable parallel pooling"},
	}
}

func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}

// Clean quotes and spaces from the value
func clean(key string) string {
	return strings.Trim(os.Getenv(key), "\"' ")
}

func init() {
	LoadConfig()
}

func LoadConfig() {
	Debug = 0
	if debug := clean("POOL_DEBUG"); debug != "" {
		if n, err := strconv.Atoi(debug); err == nil {
			Debug = max(n, 0)
		} else if b, err := strconv.ParseBool(debug); err == nil {
			if b {
				Debug = 1
			}
		} else {
			Debug = 1
		}
	}

	NumWorkers = 0
	if nw := clean("POOL_NUM_WORKERS"); nw != "" {
		val, err := strconv.Atoi(nw)
		if err != nil || val < 0 {
			slog.Error("invalid setting must be zero or greater", "POOL_NUM_WORKERS", nw, "error", err)
		} else {
			NumWorkers = val
		}
	}

	Sequential = false
	if seq := clean("POOL_SEQUENTIAL"); seq != "" {
		b, err := strconv.ParseBool(seq)
		if err != nil {
			slog.Error("invalid setting, ignoring", "POOL_SEQUENTIAL", seq, "error", err)
		} else {
			Sequential = b
		}
	}
}

// LogLevel maps POOL_DEBUG to a slog level.
func LogLevel() slog.Level {
	switch {
	case Debug >= 2:
		return logutil.LevelTrace
	case Debug == 1:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Parallel returns the worker configuration selected by the environment.
func Parallel() parallel.Config {
	if Sequential {
		return parallel.Sequential()
	}
	return parallel.DefaultConfig().WithWorkers(NumWorkers)
}
