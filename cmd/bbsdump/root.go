package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/bengarrett/bbsdecode"
	"github.com/bengarrett/bbsdecode/internal/config"
	"github.com/bengarrett/bbsdecode/internal/dump"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var ErrPalette = errors.New("unknown palette")

type flags struct {
	config   string
	protocol string
	charset  string
	music    string
	palette  string
	chunk    int
	lenient  bool
	runLoops bool
	text     bool
	noColor  bool
	verbose  bool
	summary  bool
	showCfg  bool
}

// NewRootCommand returns the bbsdump command.
func NewRootCommand(ctx context.Context) *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "bbsdump [files...]",
		Short: "List the commands decoded from BBS art and IGS files",
		Long: color.HiCyanString("bbsdump") + ` decodes ANSI, ANSI Music, Avatar, VT52 and
Atari ST IGS byte streams and prints one line for every decoded event.
Zstandard and gzip compressed files are read directly.
With no files, or a file named -, standard input is read.

Examples:
  bbsdump artwork.ans
  bbsdump --protocol igs --run-loops demo.ig
  bbsdump --music both --charset iso-8859-1 tune.ans.zst`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(ctx, cmd, f, args)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "YAML config file")
	fs.StringVarP(&f.protocol, "protocol", "p", config.ProtocolANSI, "byte stream protocol, ansi, avatar, igs or vt52")
	fs.StringVar(&f.charset, "charset", "cp437", "character set of the printed text")
	fs.StringVarP(&f.music, "music", "m", bbsdecode.MusicBanana.String(),
		"sequences that start ANSI Music, off, conflicting, banana or both")
	fs.StringVar(&f.palette, "palette", "cga", "palette of the color swatches, cga or xterm")
	fs.IntVar(&f.chunk, "chunk", bbsdecode.DefaultChunk, "read size in bytes")
	fs.BoolVar(&f.lenient, "lenient-music", false, "keep music blocks alive after an invalid octave")
	fs.BoolVar(&f.runLoops, "run-loops", false, "expand IGS loops into the commands they draw")
	fs.BoolVarP(&f.text, "text", "t", true, "show the printed text")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored output")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log parse errors to stderr")
	fs.BoolVarP(&f.summary, "summary", "s", false, "print the event counts of each file")
	fs.BoolVar(&f.showCfg, "show-config", false, "print the effective config as YAML and exit")
	return cmd
}

// options merges the config file with the flags that were set.
func options(cmd *cobra.Command, f *flags) (*config.Options, error) {
	opts, err := config.Load(f.config)
	if err != nil {
		return nil, err
	}
	fs := cmd.Flags()
	if fs.Changed("protocol") {
		opts.Protocol = f.protocol
	}
	if fs.Changed("charset") {
		opts.Charset = f.charset
	}
	if fs.Changed("music") {
		opts.Music = f.music
	}
	if fs.Changed("chunk") {
		opts.Chunk = f.chunk
	}
	if fs.Changed("lenient-music") {
		opts.LenientMusic = f.lenient
	}
	if fs.Changed("run-loops") {
		opts.RunLoops = f.runLoops
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func palette(name string) (bbsdecode.Palette, error) {
	switch strings.ToLower(name) {
	case "cga", "cga16":
		return bbsdecode.CGA16, nil
	case "xterm", "xterm16":
		return bbsdecode.Xterm16, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrPalette, name)
}

func run(ctx context.Context, cmd *cobra.Command, f *flags, args []string) error {
	opts, err := options(cmd, f)
	if err != nil {
		return err
	}
	if f.noColor {
		color.NoColor = true
	}
	out := cmd.OutOrStdout()
	if f.showCfg {
		data, err := opts.Marshal()
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}
	pal, err := palette(f.palette)
	if err != nil {
		return err
	}
	cs, err := bbsdecode.LookupCharset(opts.Charset)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, name := range args {
		if len(args) > 1 {
			fmt.Fprintf(out, "%s\n", color.New(color.Bold).Sprint("== "+name))
		}
		w := dump.New(out, dump.Options{
			Charset: cs,
			Palette: pal,
			Color:   !f.noColor,
			Text:    f.text,
		})
		if err := decode(ctx, cmd, f, opts, name, w); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if f.summary {
			summary(out, w.Counts())
		}
	}
	return nil
}

func decode(ctx context.Context, cmd *cobra.Command, f *flags, opts *config.Options, name string, w *dump.Writer) error {
	parser, err := opts.Parser()
	if err != nil {
		return err
	}
	var r io.ReadCloser
	if name == "-" {
		r, err = dump.Reader(cmd.InOrStdin())
	} else {
		r, err = dump.Open(name)
	}
	if err != nil {
		return err
	}
	defer r.Close()
	var sink bbsdecode.CommandSink = w
	if f.verbose {
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil)).With("file", name)
		sink = bbsdecode.NewLogSink(w, logger)
	}
	if err := bbsdecode.Decode(ctx, r, parser, sink, opts.Chunk); err != nil {
		return err
	}
	return w.Close()
}

func summary(w io.Writer, c dump.Counts) {
	fmt.Fprintf(w, "%d text runs, %d commands, %d requests, %d strings, %d music blocks, %d IGS commands, %d warnings, %d errors\n",
		c.Text, c.Commands, c.Requests, c.Strings, c.Music, c.IGS, c.Warnings, c.Errors)
}
