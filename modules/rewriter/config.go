package rewriter

import (
	"flag"

	"github.com/zachfi/zkit/pkg/util"
)

// Write buffer sizing (write-buffer-size):
// - Frames are at most a few KiB, so the buffer batches many of them per write.
// - Config is clamped to [32KiB, 4MiB].
const defaultWriteBufferSize = 256 * 1024 // 256 KiB

type Config struct {
	Input           string `yaml:"input,omitempty"`
	Output          string `yaml:"output,omitempty"`
	Atomic          bool   `yaml:"atomic,omitempty"`            // write to a temp file and rename on success
	WriteBufferSize int    `yaml:"write-buffer-size,omitempty"` // bytes to buffer before writing
}

func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.Input, util.PrefixConfig(prefix, "input"), "", "The MPEG audio file to read.")
	f.StringVar(&cfg.Output, util.PrefixConfig(prefix, "output"), "", "The file to write the joint stereo copy to.")
	f.BoolVar(&cfg.Atomic, util.PrefixConfig(prefix, "atomic"), true,
		"Write to a temporary file next to the output and rename it into place once complete.")
	f.IntVar(&cfg.WriteBufferSize, util.PrefixConfig(prefix, "write-buffer-size"), defaultWriteBufferSize,
		"Bytes to buffer in memory before writing to disk. Clamped to 32KiB-4MiB.")
}

// minWriteBufSize and maxWriteBufSize bound the configured write buffer.
const (
	minWriteBufSize = 32 * 1024       // 32 KiB
	maxWriteBufSize = 4 * 1024 * 1024 // 4 MiB
)

func (cfg *Config) writeBufferSize() int {
	n := cfg.WriteBufferSize
	if n < minWriteBufSize {
		n = minWriteBufSize
	}
	if n > maxWriteBufSize {
		n = maxWriteBufSize
	}
	return n
}
