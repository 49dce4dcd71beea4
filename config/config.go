// Package config resolves the worker pool configuration. Precedence, from
// highest to lowest: the build-time ForcedWorkerCount variable, the
// TASKPOOL_WORKERS environment variable, the hardware default of
// max(NumCPU-1, 1).
package config

import (
	"fmt"
	"strconv"

	"github.com/spf13/viper"

	"github.com/taskforge/go-taskpool/core"
)

// ForcedWorkerCount fixes the worker count at build time, overriding both
// the environment and the hardware default:
//
//	go build -ldflags "-X github.com/taskforge/go-taskpool/config.ForcedWorkerCount=4"
var ForcedWorkerCount string

// EnvPrefix is the prefix of environment variables read by Load; the
// worker count key "workers" maps to TASKPOOL_WORKERS.
const EnvPrefix = "TASKPOOL"

// Config holds the resolved settings.
type Config struct {
	// Workers is the number of pool workers, always >= 1.
	Workers int
}

// Load resolves the configuration. It fails with ErrInvalidArgument when a
// forced or environment-provided count is not a positive integer.
func Load() (*Config, error) {
	if ForcedWorkerCount != "" {
		n, err := strconv.Atoi(ForcedWorkerCount)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("forced worker count %q is not a positive integer: %w",
				ForcedWorkerCount, core.ErrInvalidArgument)
		}
		return &Config{Workers: n}, nil
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault("workers", core.DefaultWorkerCount())

	n := v.GetInt("workers")
	if n < 1 {
		return nil, fmt.Errorf("configured worker count %v is not a positive integer: %w",
			v.Get("workers"), core.ErrInvalidArgument)
	}
	return &Config{Workers: n}, nil
}
