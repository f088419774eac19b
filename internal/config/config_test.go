package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bengarrett/bbsdecode"
	"github.com/bengarrett/bbsdecode/internal/config"
	"github.com/nalgeon/be"
	"golang.org/x/text/encoding/charmap"
)

func write(t *testing.T, data string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "bbsdump.yaml")
	be.Err(t, os.WriteFile(name, []byte(data), 0o600), nil)
	return name
}

func TestDefault(t *testing.T) {
	t.Parallel()
	opts := config.Default()
	be.Equal(t, opts.Protocol, config.ProtocolANSI)
	be.Equal(t, opts.Charset, "cp437")
	be.Equal(t, opts.Music, "banana")
	be.Equal(t, opts.Chunk, bbsdecode.DefaultChunk)
	cfg, err := opts.Config()
	be.Err(t, err, nil)
	be.Equal(t, cfg.Charset, charmap.CodePage437)
	be.Equal(t, cfg.Music, bbsdecode.MusicBanana)
	be.Equal(t, cfg.Bounds, bbsdecode.DefaultBounds)
	be.Equal(t, cfg.MaxString, bbsdecode.DefaultMaxString)
}

func TestLoad(t *testing.T) {
	t.Parallel()
	name := write(t, `protocol: igs
charset: iso-8859-1
music: both
lenient_music: true
run_loops: true
random_bounds:
  min: 10
  max: 20
`)
	opts, err := config.Load(name)
	be.Err(t, err, nil)
	be.Equal(t, opts.Protocol, config.ProtocolIGS)
	be.Equal(t, opts.Chunk, bbsdecode.DefaultChunk)
	cfg, err := opts.Config()
	be.Err(t, err, nil)
	be.Equal(t, cfg.Charset, charmap.ISO8859_1)
	be.Equal(t, cfg.Music, bbsdecode.MusicBoth)
	be.True(t, cfg.LenientMusic)
	be.True(t, cfg.RunLoops)
	be.Equal(t, cfg.Bounds, bbsdecode.ParameterBounds{Min: 10, Max: 20})
	p, err := opts.Parser()
	be.Err(t, err, nil)
	_, ok := p.(*bbsdecode.IgsParser)
	be.True(t, ok)
}

func TestLoadMissing(t *testing.T) {
	t.Parallel()
	opts, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	be.Err(t, err, nil)
	be.Equal(t, opts, config.Default())
	opts, err = config.Load("")
	be.Err(t, err, nil)
	be.Equal(t, opts, config.Default())
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	be.Err(t, os.WriteFile(filepath.Join(dir, "c.yaml"), []byte("music: off\n"), 0o600), nil)
	t.Setenv("BBSDUMP_TEST_DIR", dir)
	opts, err := config.Load("$BBSDUMP_TEST_DIR/c.yaml")
	be.Err(t, err, nil)
	be.Equal(t, opts.Music, "off")
}

func TestLoadInvalid(t *testing.T) {
	t.Parallel()
	_, err := config.Load(write(t, "protocol: [\n"))
	be.Err(t, err)
	_, err = config.Load(write(t, "protocol: rip\n"))
	be.Err(t, err, config.ErrProtocol)
	_, err = config.Load(write(t, "charset: ebcdic\n"))
	be.Err(t, err, bbsdecode.ErrCharset)
	_, err = config.Load(write(t, "music: loud\n"))
	be.Err(t, err, bbsdecode.ErrMusicOption)
	_, err = config.Load(write(t, "random_bounds: {min: 9, max: 1}\n"))
	be.Err(t, err, config.ErrBounds)
}

func TestParser(t *testing.T) {
	t.Parallel()
	p, err := config.Default().Parser()
	be.Err(t, err, nil)
	_, ok := p.(*bbsdecode.Parser)
	be.True(t, ok)

	opts := config.Default()
	opts.Protocol = "VT52"
	p, err = opts.Parser()
	be.Err(t, err, nil)
	_, ok = p.(*bbsdecode.VT52Parser)
	be.True(t, ok)
	opts.Protocol = config.ProtocolAvatar
	p, err = opts.Parser()
	be.Err(t, err, nil)
	_, ok = p.(*bbsdecode.AvatarParser)
	be.True(t, ok)
}

func TestMarshal(t *testing.T) {
	t.Parallel()
	data, err := config.Default().Marshal()
	be.Err(t, err, nil)
	name := write(t, string(data))
	opts, err := config.Load(name)
	be.Err(t, err, nil)
	be.Equal(t, opts, config.Default())
}
