package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bengarrett/bbsdecode/internal/config"
	"github.com/klauspost/compress/zstd"
	"github.com/nalgeon/be"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand(t.Context())
	var out, errs bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errs)
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.Execute()
	return out.String(), errs.String(), err
}

func TestStdin(t *testing.T) {
	out, _, err := execute(t, "A\x1b[1m", "--summary")
	be.Err(t, err, nil)
	be.Equal(t, out, "text   \"A\"\n"+
		"cmd    SgrIntensity{Value:Bold}\n"+
		"1 text runs, 1 commands, 0 requests, 0 strings, 0 music blocks, 0 IGS commands, 0 warnings, 0 errors\n")
}

func TestAvatarProtocol(t *testing.T) {
	out, _, err := execute(t, "\x19=\x03\x16\x07", "--protocol", "avatar")
	be.Err(t, err, nil)
	be.Equal(t, out, "text   \"===\"\n"+
		"cmd    CsiEraseInLine{Mode:CursorToEnd}\n")
}

func TestIGS(t *testing.T) {
	out, _, err := execute(t, "G#&>0,2,1,0,M,1,x:", "--protocol", "igs", "--run-loops")
	be.Err(t, err, nil)
	be.Equal(t, strings.Count(out, "DrawingMode"), 3)
}

func TestVerbose(t *testing.T) {
	_, logs, err := execute(t, "\x1b[9n", "--verbose")
	be.Err(t, err, nil)
	be.True(t, strings.Contains(logs, "level=ERROR"))
	be.True(t, strings.Contains(logs, "command=CsiDeviceStatusReport"))
}

func TestZstdFile(t *testing.T) {
	enc, err := zstd.NewWriter(nil)
	be.Err(t, err, nil)
	data := enc.EncodeAll([]byte("\x1b[2J"), nil)
	be.Err(t, enc.Close(), nil)
	name := filepath.Join(t.TempDir(), "clear.ans.zst")
	be.Err(t, os.WriteFile(name, data, 0o600), nil)
	out, _, err := execute(t, "", name)
	be.Err(t, err, nil)
	be.Equal(t, out, "cmd    CsiEraseInDisplay{Mode:All}\n")
}

func TestShowConfig(t *testing.T) {
	out, _, err := execute(t, "", "--show-config", "--music", "both")
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, "music: both"))
	be.True(t, strings.Contains(out, "protocol: "+config.ProtocolANSI))
}

func TestBadFlags(t *testing.T) {
	_, _, err := execute(t, "", "--palette", "ega")
	be.Err(t, err, ErrPalette)
	_, _, err = execute(t, "", "--protocol", "rip")
	be.Err(t, err, config.ErrProtocol)
	_, _, err = execute(t, "", filepath.Join(t.TempDir(), "missing.ans"))
	be.Err(t, err, os.ErrNotExist)
}
