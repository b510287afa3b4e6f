package interpreter

import (
	"errors"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagfmt/tfmt/parser"
	"github.com/tagfmt/tfmt/semantic"
	"github.com/tagfmt/tfmt/tags"
)

func compile(t *testing.T, input string, args ...string) *Interpreter {
	t.Helper()
	program, err := parser.Parse(input)
	require.NoError(t, err)
	env, err := semantic.Analyze(program, args)
	require.NoError(t, err)
	return New(program, env.Symbols)
}

func run(t *testing.T, body string, m tags.Map) (string, error) {
	t.Helper()
	return compile(t, "test(){"+body+"}").Interpret(m)
}

func TestArtistAndTitle(t *testing.T) {
	m := tags.Map{"artist": "MASTER BOOT RECORD", "title": "Dune"}
	out, err := run(t, `<artist> "/" <title>`, m)
	require.NoError(t, err)
	require.Equal(t, filepath.FromSlash("MASTER BOOT RECORD/Dune"), out)
}

// "/" is always the division operator; a literal slash must be quoted.
func TestUnquotedSlashIsDivision(t *testing.T) {
	m := tags.Map{"artist": "MASTER BOOT RECORD", "title": "Dune"}
	_, err := run(t, `<artist>/<title>`, m)
	require.ErrorIs(t, err, ErrInvalidNumber)
	var numErr *strconv.NumError
	require.True(t, errors.As(err, &numErr))
}

func TestConditionalOperators(t *testing.T) {
	tests := []struct {
		op       string
		left     string
		right    string
		expected string
	}{
		{"&", "", "X", ""},
		{"&", "L", "X", "X"},
		{"&&", "", "X", ""},
		{"&&", "L", "X", "LX"},
		{"|", "", "X", "X"},
		{"|", "L", "X", "L"},
		{"||", "", "X", "X"},
		{"||", "L", "X", "LX"},
	}
	for _, tt := range tests {
		t.Run(tt.left+tt.op+tt.right, func(t *testing.T) {
			m := tags.Map{"artist": tt.left, "title": tt.right}
			out, err := run(t, "<artist> "+tt.op+" <title>", m)
			require.NoError(t, err)
			require.Equal(t, tt.expected, out)
		})
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		body     string
		expected string
	}{
		{"1 + 2", "3"},
		{"1 - 2 - 3", "2"},
		{"2 * 3 + 4", "10"},
		{"7 / 2", "3"},
		{"7 % 4", "3"},
		{"2 ** 3 ** 2", "512"},
		{"2 ^ 10", "1024"},
		{"0 ** 0", "1"},
		{"-3", "-3"},
		{"--3", "3"},
		{"+007", "7"},
		{"(1 2) + 3", "15"},
		{`"4" * 2`, "8"},
		{`-<track>`, "-5"},
		{"9223372036854775807 - 1", "9223372036854775806"},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			out, err := run(t, tt.body, tags.Map{"track": "5"})
			require.NoError(t, err)
			require.Equal(t, tt.expected, out)
		})
	}
}

func TestArithmeticErrors(t *testing.T) {
	tests := []struct {
		body string
		kind error
	}{
		{"1 / 0", ErrDivisionByZero},
		{"1 % 0", ErrDivisionByZero},
		{"9223372036854775807 + 1", ErrOverflow},
		{"-9223372036854775807 - 2", ErrOverflow},
		{"4294967296 * 4294967296", ErrOverflow},
		{"2 ** 63", ErrOverflow},
		{"2 ** -1", ErrInvalidArgument},
		{`"a" + 1`, ErrInvalidNumber},
		{`1 + ""`, ErrInvalidNumber},
		{`-"x"`, ErrInvalidNumber},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			_, err := run(t, tt.body, nil)
			require.ErrorIs(t, err, tt.kind)
			var interpErr *Error
			require.True(t, errors.As(err, &interpErr))
		})
	}
}

func TestErrorPosition(t *testing.T) {
	_, err := run(t, " 1 / 0 ", nil)
	var interpErr *Error
	require.True(t, errors.As(err, &interpErr))
	assert.Equal(t, 1, interpErr.Context.Line)
	assert.Equal(t, 11, interpErr.Context.Column)
	assert.Equal(t, "test(){ 1 / 0 }\n          ^\nError at line 1, col 11: division by zero: 1 / 0",
		interpErr.FriendlyErrorMessage())
}

func TestTernary(t *testing.T) {
	body := `<album> ? (<album> " - ") : "Singles - " <title>`
	out, err := run(t, body, tags.Map{"album": "Cyberpunk", "title": "Dune"})
	require.NoError(t, err)
	require.Equal(t, "Cyberpunk - Dune", out)

	out, err = run(t, body, tags.Map{"title": "Dune"})
	require.NoError(t, err)
	require.Equal(t, "Singles - Dune", out)
}

func TestTernaryOnlyEvaluatesTakenBranch(t *testing.T) {
	out, err := run(t, `"" ? 1 / 0 : "ok"`, nil)
	require.NoError(t, err)
	require.Equal(t, "ok", out)
}

func TestGroup(t *testing.T) {
	out, err := run(t, `(<artist> " " <title>) & "!"`, tags.Map{})
	require.NoError(t, err)
	require.Equal(t, "!", out)
}

func TestSymbols(t *testing.T) {
	it := compile(t, `f(sep = " - ", n = 3) { $num(<track>, $(n)) $(sep) <title> }`)
	out, err := it.Interpret(tags.Map{"track": "7/10", "title": "Dune"})
	require.NoError(t, err)
	require.Equal(t, "007 - Dune", out)

	it = compile(t, `f(sep = " - ", n = 3) { $num(<track>, $(n)) $(sep) <title> }`, "_", "1")
	out, err = it.Interpret(tags.Map{"track": "7/10", "title": "Dune"})
	require.NoError(t, err)
	require.Equal(t, "7_Dune", out)
}

func TestUnknownSymbol(t *testing.T) {
	program, err := parser.Parse(`f(a) { $(a) }`)
	require.NoError(t, err)
	_, err = New(program, semantic.SymbolTable{}).Interpret(nil)
	require.ErrorIs(t, err, ErrUnknownSymbol)
}

func TestNum(t *testing.T) {
	tests := []struct {
		track    string
		expected string
	}{
		{"5", "05"},
		{"12", "12"},
		{"123", "123"},
		{"05/12", "05"},
		{"007", "07"},
		{"0", "00"},
		{"", "00"},
	}
	for _, tt := range tests {
		t.Run(tt.track, func(t *testing.T) {
			out, err := run(t, `$num(<track>, 2)`, tags.Map{"track": tt.track})
			require.NoError(t, err)
			require.Equal(t, tt.expected, out)
		})
	}
}

func TestTagSynonyms(t *testing.T) {
	m := tags.Map{"track": "3", "disc": "2/2", "album_artist": "VA", "albumsort": "S"}
	for _, name := range []string{"track", "tracknumber", "track_number"} {
		out, err := run(t, "<"+name+">", m)
		require.NoError(t, err)
		require.Equal(t, "3", out, name)
	}
	for _, name := range []string{"disc", "disk", "discnumber", "disknumber", "disc_number", "disk_number"} {
		out, err := run(t, "<"+name+">", m)
		require.NoError(t, err)
		require.Equal(t, "2", out, name)
	}
	out, err := run(t, "<albumartist> <album_sort>", m)
	require.NoError(t, err)
	require.Equal(t, "VAS", out)
}

func TestTagsAreSanitized(t *testing.T) {
	m := tags.Map{"artist": `AC/DC`, "title": `Who <Made> "Who"? *|:~\`}
	out, err := run(t, `<artist> " - " <title>`, m)
	require.NoError(t, err)
	require.Equal(t, "ACDC - Who Made Who ", out)
}

func TestTagsWithCombiningMarksAreSanitized(t *testing.T) {
	m := tags.Map{"artist": "a<\u0301b/\u0301c", "title": "Caf\u00e9 e\u0301"}
	out, err := run(t, `<artist> " " <title>`, m)
	require.NoError(t, err)
	require.Equal(t, "abc Caf\u00e9 e\u0301", out)
}

func TestMissingTags(t *testing.T) {
	out, err := run(t, `<artist> <genre> <year> <disc>`, tags.Map{})
	require.NoError(t, err)
	require.Equal(t, "", out)

	out, err = run(t, `<artist> | "Unknown"`, nil)
	require.NoError(t, err)
	require.Equal(t, "Unknown", out)
}

func TestUnknownTag(t *testing.T) {
	_, err := run(t, `<artst>`, tags.Map{})
	require.ErrorIs(t, err, ErrUnknownTag)
	assert.Contains(t, err.Error(), "did you mean 'artist'?")

	_, err = run(t, `<Artist>`, tags.Map{})
	require.ErrorIs(t, err, ErrUnknownTag)
}

func TestFunctionErrors(t *testing.T) {
	_, err := run(t, `$nun(<track>, 2)`, nil)
	require.ErrorIs(t, err, ErrFunction)
	require.ErrorIs(t, err, ErrUnknownFunction)
	assert.Contains(t, err.Error(), "did you mean 'num'?")

	_, err = run(t, `$num(<track>)`, nil)
	require.ErrorIs(t, err, ErrWrongArguments)
	var fnErr *FunctionError
	require.True(t, errors.As(err, &fnErr))
	assert.Equal(t, "num", fnErr.Name)
	assert.Equal(t, 2, fnErr.Expected)
	assert.Equal(t, 1, fnErr.Found)
	assert.Contains(t, err.Error(), "num() takes exactly 2 arguments (1 given)")

	_, err = run(t, `$num(<track>, "two")`, nil)
	require.ErrorIs(t, err, ErrInvalidNumber)

	var interpErr *Error
	require.True(t, errors.As(err, &interpErr))
	assert.Equal(t, 8, interpErr.Context.Column)
}

func TestArgumentErrorsComeFirst(t *testing.T) {
	_, err := run(t, `$unknown(1 / 0)`, nil)
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestInterpretIsPure(t *testing.T) {
	it := compile(t, `f(w = 2) { <album> ? (<album> "/") : "" $num(<track>, $(w)) " " $validate(<title>) }`)
	m := tags.Map{"album": "Album", "track": "1/3", "title": "T"}
	first, err := it.Interpret(m)
	require.NoError(t, err)
	second, err := it.Interpret(m)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, filepath.FromSlash("Album/01 T"), first)
}

func TestInterpretConcurrently(t *testing.T) {
	it := compile(t, `f() { $num(<track>, 3) " " <title> }`)
	var wg sync.WaitGroup
	results := make([]string, 50)
	errs := make([]error, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = it.Interpret(tags.Map{"track": strconv.Itoa(i), "title": "x"})
		}(i)
	}
	wg.Wait()
	for i := range results {
		require.NoError(t, errs[i])
		expected, _ := Num(strconv.Itoa(i), "3")
		require.Equal(t, expected+" x", results[i])
	}
}
