package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected *Config
		name     string
		args     []string
	}{
		{
			name: "all flags set",
			args: []string{"cmd",
				"-a", "127.0.0.1:9090", "-s", "secret", "-b", "bolt",
				"-d", "db", "-f", "store.db", "-w", "10",
			},
			expected: &Config{
				EndpointAddrHTTP: "127.0.0.1:9090",
				SecretKey:        "secret",
				StoreBackend:     BackendBolt,
				DatabaseDSN:      "db",
				BoltPath:         "store.db",
				ShutdownTimeout:  10 * time.Second,
			},
		},
		{
			name: "unknown flags filtered out",
			args: []string{"cmd", "-a", ":6000", "-x", "ignored"},
			expected: &Config{
				EndpointAddrHTTP: ":6000",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)
			os.Args = tt.args

			config := &Config{}
			require.NotPanics(t, func() { parseFlags(config) })

			assert.Equal(t, tt.expected, config)
		})
	}
}
