package main

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

const configSection = "statdump"

/*
[statdump]
top         = 10
max_records = 134217728
log_level   = warning
log_format  = text
quiet       = false
*/
type config struct {
	Top        int
	MaxRecords int
	LogLevel   string
	LogFormat  string
	Quiet      bool
}

func defaultConfig() config {
	return config{
		Top:       10,
		LogLevel:  "warning",
		LogFormat: "text",
	}
}

// loadConfig overlays the INI file at path onto cfg.
func loadConfig(path string, cfg *config) error {
	file, err := ini.Load(path)
	if err != nil {
		return errors.Wrapf(err, "load config %s", path)
	}

	section := file.Section(configSection)
	cfg.Top = section.Key("top").MustInt(cfg.Top)
	cfg.MaxRecords = section.Key("max_records").MustInt(cfg.MaxRecords)
	cfg.LogLevel = section.Key("log_level").MustString(cfg.LogLevel)
	cfg.LogFormat = section.Key("log_format").In(cfg.LogFormat, []string{"text", "json"})
	cfg.Quiet = section.Key("quiet").MustBool(cfg.Quiet)
	return nil
}

// applyFlags lets every flag given on the command line win over the config file.
func (cfg *config) applyFlags(opts *Options) {
	if opts.Top != nil {
		cfg.Top = *opts.Top
	}
	if opts.MaxRecords != 0 {
		cfg.MaxRecords = opts.MaxRecords
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.LogFormat != "" {
		cfg.LogFormat = opts.LogFormat
	}
	if opts.Quiet {
		cfg.Quiet = true
	}
}

func newLogger(cfg config, out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	switch cfg.LogFormat {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	default:
		return nil, errors.Errorf("unknown log format %q", cfg.LogFormat)
	}
	return logger, nil
}
