package analyzer

import (
	"flag"

	"github.com/grafana/dskit/flagext"
	"github.com/zachfi/zkit/pkg/util"
)

type Config struct {
	Inputs      flagext.StringSliceCSV `yaml:"inputs,omitempty"`
	Frames      bool                   `yaml:"frames,omitempty"`      // print one block per frame
	SkipFrames  int                    `yaml:"skip-frames,omitempty"` // frames to skip after the first, 0 disables
	Concurrency int                    `yaml:"concurrency,omitempty"` // files analyzed at once
}

func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.Var(&cfg.Inputs, util.PrefixConfig(prefix, "inputs"), "Comma separated list of files to analyze. Positional arguments take precedence.")
	f.BoolVar(&cfg.Frames, util.PrefixConfig(prefix, "frames"), true, "Print the decoded header of every frame.")
	f.IntVar(&cfg.SkipFrames, util.PrefixConfig(prefix, "skip-frames"), 0,
		"After analysis, skip the first frame and then this many more, reporting the resulting offset. 0 disables.")
	f.IntVar(&cfg.Concurrency, util.PrefixConfig(prefix, "concurrency"), 0, "Number of files analyzed concurrently. 0 uses the number of CPUs.")
}
