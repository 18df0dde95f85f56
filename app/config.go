package app

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/grafana/dskit/flagext"
	"github.com/grafana/dskit/server"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/zachfi/zkit/pkg/tracing"

	"github.com/zachfi/mp3walk/modules/analyzer"
	"github.com/zachfi/mp3walk/modules/inspector"
	"github.com/zachfi/mp3walk/modules/rewriter"
)

const configFileOption = "config.file"

type Config struct {
	Target    string           `yaml:"target"`
	Tracing   tracing.Config   `yaml:"tracing,omitempty"`
	Server    server.Config    `yaml:"server,omitempty"`
	Analyzer  analyzer.Config  `yaml:"analyzer,omitempty"`
	Rewriter  rewriter.Config  `yaml:"rewriter,omitempty"`
	Inspector inspector.Config `yaml:"inspector,omitempty"`
}

func (c *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&c.Target, "target", All, "The module to run: analyzer, rewriter, inspector or all.")

	flagext.DefaultValues(&c.Server)
	f.IntVar(&c.Server.HTTPListenPort, "server.http-listen-port", 3030, "HTTP server listen port.")
	f.IntVar(&c.Server.GRPCListenPort, "server.grpc-listen-port", 9090, "gRPC server listen port.")

	c.Tracing.RegisterFlagsAndApplyDefaults("tracing", f)
	c.Analyzer.RegisterFlagsAndApplyDefaults("analyzer", f)
	c.Rewriter.RegisterFlagsAndApplyDefaults("rewriter", f)
	c.Inspector.RegisterFlagsAndApplyDefaults("inspector", f)
}

// LoadConfig builds the configuration from defaults, then the file named by
// -config.file, then the flags in args. Positional arguments remain in
// f.Args().
func LoadConfig(f *flag.FlagSet, args []string) (*Config, error) {
	var configFile string

	// first get the config file
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&configFile, configFileOption, "", "")

	// Parsing stops on the first unknown flag, so try the remaining
	// parameters until the config flag is found or none are left.
	for rest := args; len(rest) > 0; rest = rest[1:] {
		_ = fs.Parse(rest)
	}

	// load config defaults and register flags
	config := &Config{}
	config.RegisterFlagsAndApplyDefaults("", f)

	// overlay with config file if provided
	if configFile != "" {
		if err := loadYamlFile(configFile, config); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", configFile)
		}
	}

	// overlay with cli
	flagext.IgnoredFlag(f, configFileOption, "Configuration file to load")
	if err := f.Parse(args); err != nil {
		return nil, err
	}

	return config, nil
}

// loadYamlFile strictly unmarshals a YAML file into d.
func loadYamlFile(filename string, d interface{}) error {
	buff, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	return yaml.UnmarshalStrict(buff, d)
}

// ApplyArgs assigns positional arguments to the selected target: every
// argument is an input for the analyzer, and the rewriter takes an input and
// an output. Arguments under the default target run the analyzer.
func (c *Config) ApplyArgs(args []string) error {
	if len(args) == 0 {
		return nil
	}

	switch c.Target {
	case All:
		// Files on the command line select the analyzer.
		c.Target = Analyzer
		c.Analyzer.Inputs = append([]string(nil), args...)
	case Analyzer:
		c.Analyzer.Inputs = append([]string(nil), args...)
	case Rewriter:
		if len(args) != 2 {
			return fmt.Errorf("%s takes <input-file> <output-file>, got %d arguments", Rewriter, len(args))
		}
		c.Rewriter.Input, c.Rewriter.Output = args[0], args[1]
	default:
		return fmt.Errorf("target %q does not take arguments", c.Target)
	}

	return nil
}
