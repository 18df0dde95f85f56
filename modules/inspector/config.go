package inspector

import (
	"flag"

	"github.com/zachfi/zkit/pkg/util"
)

const defaultPathPrefix = "/inspect"

type Config struct {
	Dir        string `yaml:"dir,omitempty"`
	PathPrefix string `yaml:"path-prefix,omitempty"`
}

func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.Dir, util.PrefixConfig(prefix, "dir"), ".", "The directory from which files may be inspected.")
	f.StringVar(&cfg.PathPrefix, util.PrefixConfig(prefix, "path-prefix"), defaultPathPrefix, "The HTTP path serving inspection reports.")
}
