package interpreter

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"
)

// BuiltinFunction is the Go implementation of a script function. It
// receives arguments that have already been evaluated and arity checked.
type BuiltinFunction func(args ...string) (string, error)

// Builtin describes a function callable from a script as $name(...).
type Builtin struct {
	Name  string
	Arity int
	Fn    BuiltinFunction
}

// Call checks the argument count and invokes the function.
func (b Builtin) Call(args ...string) (string, error) {
	if len(args) != b.Arity {
		return "", NewArgsError(b.Name, b.Arity, len(args))
	}
	return b.Fn(args...)
}

var builtins = map[string]Builtin{
	"prepend":        {Name: "prepend", Arity: 3, Fn: Prepend},
	"num":            {Name: "num", Arity: 2, Fn: Num},
	"replace":        {Name: "replace", Arity: 3, Fn: Replace},
	"split":          {Name: "split", Arity: 4, Fn: Split},
	"validate":       {Name: "validate", Arity: 1, Fn: Validate},
	"year_from_date": {Name: "year_from_date", Arity: 1, Fn: YearFromDate},
	"andif":          {Name: "andif", Arity: 2, Fn: AndIf},
	"if":             {Name: "if", Arity: 3, Fn: If},
}

// Builtins returns the functions available to scripts, keyed by name.
func Builtins() map[string]Builtin {
	result := make(map[string]Builtin, len(builtins))
	for name, b := range builtins {
		result[name] = b
	}
	return result
}

// BuiltinNames returns the names of the available functions in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func parseInt(fn, what, s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, newFunctionError(fn, ErrInvalidNumber, err, "%s() %s must be an integer, got %q", fn, what, s)
	}
	return n, nil
}

// Prepend left-pads args[0] with the first grapheme of args[2] until it is
// args[1] graphemes wide. Longer values are left untouched.
func Prepend(args ...string) (string, error) {
	return prepend("prepend", args[0], args[1], args[2])
}

// Num left-pads args[0] with zeroes until it is args[1] graphemes wide.
func Num(args ...string) (string, error) {
	return prepend("num", args[0], args[1], "0")
}

// MaxPadWidth is the widest value Prepend and Num will pad to.
const MaxPadWidth = 1 << 16

func prepend(fn, value, width, pad string) (string, error) {
	n, err := parseInt(fn, "width", width)
	if err != nil {
		return "", err
	}
	if n > MaxPadWidth {
		return "", newFunctionError(fn, ErrInvalidArgument, nil, "%s() width %d exceeds %d", fn, n, MaxPadWidth)
	}
	if pad == "" {
		return "", newFunctionError(fn, ErrInvalidArgument, nil, "%s() pad character must not be empty", fn)
	}
	pad, _, _, _ = uniseg.FirstGraphemeClusterInString(pad, -1)
	missing := n - int64(uniseg.GraphemeClusterCount(value))
	if missing <= 0 {
		return value, nil
	}
	return strings.Repeat(pad, int(missing)) + value, nil
}

// Replace replaces every occurrence of args[1] in args[0] with args[2].
func Replace(args ...string) (string, error) {
	return strings.ReplaceAll(args[0], args[1], args[2]), nil
}

// Split splits args[0] around args[1] and returns the element at index
// args[2]. At most args[3] splits are made; a negative count means no
// limit. An index outside the result yields "".
func Split(args ...string) (string, error) {
	index, err := parseInt("split", "index", args[2])
	if err != nil {
		return "", err
	}
	limit, err := parseInt("split", "limit", args[3])
	if err != nil {
		return "", err
	}
	n := -1
	if limit >= 0 {
		n = int(min(limit, int64(len(args[0])))) + 1
	}
	parts := strings.SplitN(args[0], args[1], n)
	if index < 0 || index >= int64(len(parts)) {
		return "", nil
	}
	return parts[index], nil
}

// Validate removes the graphemes that may not appear in a path component.
func Validate(args ...string) (string, error) {
	return sanitize(args[0]), nil
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{4})(?:-\d{2}(?:-\d{2})?)?(?:T.*)?$`),
	regexp.MustCompile(`^\d{2}\.\d{2}\.(\d{4})$`),
	regexp.MustCompile(`^\d{2}/\d{2}/(\d{4})$`),
}

// YearFromDate extracts the four digit year from a date written as
// YYYY[-MM[-DD]][Thh:mm:ss], DD.MM.YYYY or MM/DD/YYYY. Other values yield "".
func YearFromDate(args ...string) (string, error) {
	date := strings.TrimSpace(args[0])
	for _, re := range datePatterns {
		if m := re.FindStringSubmatch(date); m != nil {
			return m[1], nil
		}
	}
	return "", nil
}

// AndIf returns args[0] followed by args[1] when args[0] is not empty.
func AndIf(args ...string) (string, error) {
	if args[0] == "" {
		return "", nil
	}
	return args[0] + args[1], nil
}

// If returns args[1] when args[0] is not empty and args[2] otherwise.
func If(args ...string) (string, error) {
	if args[0] != "" {
		return args[1], nil
	}
	return args[2], nil
}
