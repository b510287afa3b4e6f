package tfmt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagfmt/tfmt/interpreter"
	"github.com/tagfmt/tfmt/parser"
	"github.com/tagfmt/tfmt/semantic"
	"github.com/tagfmt/tfmt/tags"
)

const albumScript = `// Sort files into album folders.
album(sep = " - ", width = 2)
"Album folder with numbered tracks"
{
	<album_artist> | <artist> "/"
	<album> & (<album> "/")
	$num(<track>, $(width)) $(sep) <title>
}`

func TestCompile(t *testing.T) {
	script, err := Compile(albumScript)
	require.NoError(t, err)
	require.Equal(t, "album", script.Name())
	require.Equal(t, "Album folder with numbered tracks", script.Description())
	require.Equal(t, []string{"sep", "width"}, script.Parameters())
	require.NotNil(t, script.Program())
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile(`name(){ "a|b" }`)
	require.Error(t, err)
	var parseErr *parser.Error
	require.True(t, errors.As(err, &parseErr))

	nested := "name(){" + strings.Repeat("(", 32) + "1" + strings.Repeat(")", 32) + "}"
	_, err = Compile(nested)
	require.ErrorIs(t, err, parser.ErrMaxDepth)

	_, err = Compile(nested, WithMaxDepth(100))
	require.NoError(t, err)
}

func TestCompileFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "simple.tfmt")
	require.NoError(t, os.WriteFile(path, []byte("simple()\r\n{\r\n\t<title>\r\n}\r\n"), 0o644))
	script, err := CompileFile(path)
	require.NoError(t, err)
	require.Equal(t, "simple", script.Name())

	_, err = CompileFile(filepath.Join(dir, "missing.tfmt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestBind(t *testing.T) {
	script, err := Compile(albumScript)
	require.NoError(t, err)

	inv, err := script.Bind()
	require.NoError(t, err)
	require.Equal(t, semantic.SymbolTable{"sep": " - ", "width": "2"}, inv.Symbols())

	inv, err = script.Bind("_", "3")
	require.NoError(t, err)
	require.Equal(t, semantic.SymbolTable{"sep": "_", "width": "3"}, inv.Symbols())

	_, err = script.Bind("_", "3", "extra")
	require.ErrorIs(t, err, semantic.ErrTooManyArguments)
}

func TestRun(t *testing.T) {
	script, err := Compile(albumScript)
	require.NoError(t, err)
	inv, err := script.Bind()
	require.NoError(t, err)

	out, err := inv.Run(tags.Map{
		"artist": "MASTER BOOT RECORD",
		"album":  "Internet Protocol",
		"track":  "3/9",
		"title":  "Dune",
	})
	require.NoError(t, err)
	require.Equal(t, filepath.FromSlash("MASTER BOOT RECORD/Internet Protocol/03 - Dune"), out)

	out, err = inv.Run(tags.Map{"album_artist": "VA", "artist": "X", "title": "Single"})
	require.NoError(t, err)
	require.Equal(t, filepath.FromSlash("VA/00 - Single"), out)
}

func TestTarget(t *testing.T) {
	script, err := Compile(`simple(sep = " - ") { <artist> $(sep) <title> }`)
	require.NoError(t, err)
	inv, err := script.Bind()
	require.NoError(t, err)

	target, err := inv.Target(tags.Map{"artist": "A", "title": "T"}, filepath.Join("in", "file.name.mp3"))
	require.NoError(t, err)
	require.Equal(t, "A - T.mp3", target)

	target, err = inv.Target(tags.Map{"artist": "A", "title": "T"}, "noext")
	require.NoError(t, err)
	require.Equal(t, "A - T", target)
}

func TestRunBatch(t *testing.T) {
	script, err := Compile(`batch() { $num(<track>, 2) " " <title> }`, WithConcurrency(3))
	require.NoError(t, err)
	inv, err := script.Bind()
	require.NoError(t, err)

	var entries []tags.Entry
	for i, title := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		entries = append(entries, tags.Entry{
			Path: title + ".ogg",
			Tags: tags.Map{"track": string(rune('1' + i)), "title": title},
		})
	}
	outcomes, err := inv.RunBatch(context.Background(), entries)
	require.NoError(t, err)
	require.Len(t, outcomes, len(entries))
	for i, o := range outcomes {
		require.True(t, o.OK())
		require.Equal(t, entries[i].Path, o.Entry.Path)
		require.Equal(t, "0"+string(rune('1'+i))+" "+entries[i].Tags["title"]+".ogg", o.Target)
	}
}

func TestRunBatchKeepsGoingAfterFailure(t *testing.T) {
	script, err := Compile(`math() { <track> * 2 }`, WithConcurrency(2))
	require.NoError(t, err)
	inv, err := script.Bind()
	require.NoError(t, err)

	entries := []tags.Entry{
		{Path: "one.mp3", Tags: tags.Map{"track": "1"}},
		{Path: "none.mp3"},
		{Path: "three.mp3", Tags: tags.Map{"track": "3/4"}},
		{Path: "bad.mp3", Tags: tags.Map{"track": "x"}},
	}
	outcomes, err := inv.RunBatch(context.Background(), entries)
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 2)
	assert.Contains(t, merr.Errors[0].Error(), "none.mp3")
	assert.Contains(t, merr.Errors[1].Error(), "bad.mp3")
	assert.ErrorIs(t, merr.Errors[1], interpreter.ErrInvalidNumber)

	require.Len(t, outcomes, 4)
	assert.Equal(t, "2.mp3", outcomes[0].Target)
	assert.False(t, outcomes[1].OK())
	assert.Equal(t, "6.mp3", outcomes[2].Target)
	assert.False(t, outcomes[3].OK())
}

func TestRunBatchSerial(t *testing.T) {
	script, err := Compile(`serial() { <track> * 2 }`, WithConcurrency(1))
	require.NoError(t, err)
	inv, err := script.Bind()
	require.NoError(t, err)

	var entries []tags.Entry
	for i := range 20 {
		track := strconv.Itoa(i)
		if i%5 == 0 {
			track = "x"
		}
		entries = append(entries, tags.Entry{Path: fmt.Sprintf("%02d.flac", i), Tags: tags.Map{"track": track}})
	}
	outcomes, err := inv.RunBatch(context.Background(), entries)
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 4)
	require.Len(t, outcomes, len(entries))
	for i, o := range outcomes {
		require.Equal(t, entries[i].Path, o.Entry.Path)
		if i%5 == 0 {
			require.ErrorIs(t, o.Err, interpreter.ErrInvalidNumber)
			continue
		}
		require.Equal(t, strconv.Itoa(i*2)+".flac", o.Target)
	}
}

func TestRunBatchCancelled(t *testing.T) {
	script, err := Compile(`c() { <title> }`)
	require.NoError(t, err)
	inv, err := script.Bind()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	outcomes, err := inv.RunBatch(ctx, []tags.Entry{{Path: "a.mp3"}, {Path: "b.mp3"}})
	require.ErrorIs(t, err, context.Canceled)
	for _, o := range outcomes {
		require.ErrorIs(t, o.Err, context.Canceled)
	}
}

func TestRunBatchEmpty(t *testing.T) {
	script, err := Compile(`c() { <title> }`)
	require.NoError(t, err)
	inv, err := script.Bind()
	require.NoError(t, err)
	outcomes, err := inv.RunBatch(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, outcomes)
}

func TestRunBatchLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	script, err := Compile(`logged() { <track> + 1 }`, WithLogger(logger), WithConcurrency(1))
	require.NoError(t, err)
	inv, err := script.Bind()
	require.NoError(t, err)

	_, err = inv.RunBatch(context.Background(), []tags.Entry{
		{Path: "ok.mp3", Tags: tags.Map{"track": "1"}},
		{Path: "bad.mp3", Tags: tags.Map{"track": "b"}},
	})
	require.Error(t, err)
	out := buf.String()
	assert.Contains(t, out, `"level":"debug"`)
	assert.Contains(t, out, `"target":"2.mp3"`)
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"path":"bad.mp3"`)
	assert.Contains(t, out, `"script":"logged"`)
	assert.Contains(t, out, `"failed":1`)
}
