// Package config loads the bbsdump options from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bengarrett/bbsdecode"
	"gopkg.in/yaml.v3"
)

var (
	ErrProtocol = errors.New("unknown protocol")
	ErrBounds   = errors.New("random bounds are reversed")
)

const (
	ProtocolANSI   = "ansi"   // ProtocolANSI selects the ANSI/ECMA-48 parser
	ProtocolAvatar = "avatar" // ProtocolAvatar selects the AVT/0 parser
	ProtocolIGS    = "igs"    // ProtocolIGS selects the IGS parser
	ProtocolVT52   = "vt52"   // ProtocolVT52 selects the VT52 parser
)

// Bounds is the random range of IGS loop parameters.
type Bounds struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Options are the decoder settings read from the configuration file.
type Options struct {
	Protocol     string `yaml:"protocol"`
	Charset      string `yaml:"charset"`
	Music        string `yaml:"music"`
	LenientMusic bool   `yaml:"lenient_music,omitempty"`
	MaxString    int    `yaml:"max_string,omitempty"`
	Chunk        int    `yaml:"chunk,omitempty"`
	RunLoops     bool   `yaml:"run_loops,omitempty"`
	Bounds       Bounds `yaml:"random_bounds"`
}

// Default returns the options for CP437 ANSI art.
func Default() *Options {
	return &Options{
		Protocol:  ProtocolANSI,
		Charset:   "cp437",
		Music:     bbsdecode.MusicBanana.String(),
		MaxString: bbsdecode.DefaultMaxString,
		Chunk:     bbsdecode.DefaultChunk,
		Bounds:    Bounds{Min: bbsdecode.DefaultBounds.Min, Max: bbsdecode.DefaultBounds.Max},
	}
}

// Load reads the options from path, environment variables in the path are
// expanded. Settings missing from the file keep their defaults, and a missing
// file returns the defaults.
func Load(path string) (*Options, error) {
	opts := Default()
	if path == "" {
		return opts, nil
	}
	path = os.ExpandEnv(path)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return opts, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Validate checks the names and ranges of the options.
func (o *Options) Validate() error {
	switch strings.ToLower(o.Protocol) {
	case ProtocolANSI, ProtocolAvatar, ProtocolIGS, ProtocolVT52:
	default:
		return fmt.Errorf("%w: %q", ErrProtocol, o.Protocol)
	}
	if _, err := bbsdecode.LookupCharset(o.Charset); err != nil {
		return fmt.Errorf("config charset: %w", err)
	}
	if _, err := bbsdecode.ParseMusicOption(o.Music); err != nil {
		return fmt.Errorf("config music: %w", err)
	}
	if o.Bounds.Min > o.Bounds.Max {
		return fmt.Errorf("%w: %d > %d", ErrBounds, o.Bounds.Min, o.Bounds.Max)
	}
	return nil
}

// Config returns the parser configuration.
func (o *Options) Config() (bbsdecode.Config, error) {
	if err := o.Validate(); err != nil {
		return bbsdecode.Config{}, err
	}
	cs, _ := bbsdecode.LookupCharset(o.Charset)
	music, _ := bbsdecode.ParseMusicOption(o.Music)
	return bbsdecode.Config{
		Charset:      cs,
		Music:        music,
		LenientMusic: o.LenientMusic,
		MaxString:    o.MaxString,
		Bounds:       bbsdecode.ParameterBounds{Min: o.Bounds.Min, Max: o.Bounds.Max},
		RunLoops:     o.RunLoops,
	}, nil
}

// Parser returns a new parser for the configured protocol.
func (o *Options) Parser() (bbsdecode.CommandParser, error) {
	cfg, err := o.Config()
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(o.Protocol) {
	case ProtocolAvatar:
		return bbsdecode.NewAvatarParser(cfg), nil
	case ProtocolIGS:
		return bbsdecode.NewIgsParser(cfg), nil
	case ProtocolVT52:
		return bbsdecode.NewVT52Parser(bbsdecode.VT52Mixed), nil
	}
	return bbsdecode.NewParser(cfg), nil
}

// Marshal returns the options as YAML.
func (o *Options) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
