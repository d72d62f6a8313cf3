package vm

import (
	"fmt"
	"maps"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

const (
	LABEL_MARKER   = ":"    // First character of a label declaration line.
	COMMENT_MARKER = ";"    // First character of a comment line.
	MOVE_MNEMONIC  = "move" // The one pseudo-instruction of the language.
)

// Preprocess turns raw program text into an executable Program.
//
// The pipeline runs in fixed order: record label declarations, evaluate
// $(...) constant expressions, substitute label names with their line
// indexes, and expand the "move" pseudo-instruction. Each stage produces
// a new line slice; the input is never mutated, so preprocessing
// label-free, expression-free text yields the input unchanged.
func Preprocess(lines []string) (prog *Program, err error) {
	resolved, labels, err := resolveLabels(lines)
	if err != nil {
		return
	}

	evaled, err := evalExpressions(resolved, labels)
	if err != nil {
		return
	}

	expanded, err := expandMoves(substituteLabels(evaled, labels))
	if err != nil {
		return
	}

	prog = &Program{Lines: expanded}

	return
}

// resolveLabels records every label declaration with its absolute line
// index and blanks the declaring line, preserving all other indexes.
func resolveLabels(lines []string) (out []string, labels map[string]int, err error) {
	out = slices.Clone(lines)
	labels = make(map[string]int, 16)

	for n, line := range out {
		text := strings.TrimSpace(line)
		if !strings.HasPrefix(text, LABEL_MARKER) {
			continue
		}

		name := text[len(LABEL_MARKER):]
		if len(name) == 0 {
			err = ErrSyntax{LineNo: n, Line: line, Err: ErrLabelEmpty}
			return
		}
		_, ok := labels[name]
		if ok {
			err = ErrSyntax{LineNo: n, Line: line, Err: ErrLabelDuplicate(name)}
			return
		}

		labels[name] = n
		out[n] = ""
	}

	return
}

var exprPattern = regexp.MustCompile(`\$\([^)]*\)`)

// evalExpressions does compile-time $(...) evaluations. Every recorded
// label is predefined as its line index, so expressions may compute
// relative to jump targets.
func evalExpressions(lines []string, labels map[string]int) (out []string, err error) {
	out = slices.Clone(lines)

	pred := starlark.StringDict{}
	for name, index := range labels {
		pred[name] = starlark.MakeInt(index)
	}

	for n, line := range out {
		if !strings.Contains(line, "$(") {
			continue
		}

		line = exprPattern.ReplaceAllStringFunc(line, func(str string) string {
			value, _err := evalExpression(str[2:len(str)-1], pred)
			if _err != nil && err == nil {
				err = _err
			}
			return fmt.Sprintf("%v", value)
		})
		if err != nil {
			err = ErrSyntax{LineNo: n, Line: out[n], Err: err}
			return
		}
		out[n] = line
	}

	return
}

// evalExpression evaluates one expression body via a starlark thread.
func evalExpression(expr string, pred starlark.StringDict) (value int32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 > math.MaxInt32 || st_int64 < math.MinInt32 {
		// Operands must fit a cell's integer view; an oversized result
		// is a validity error, not something to truncate.
		err = ErrParseExpression(expr)
		return
	}

	value = int32(st_int64)

	return
}

// substituteLabels textually replaces every occurrence of each label
// name with the decimal string of its line index. Names are applied
// longest first, then lexicographically, so a label that is a substring
// of another cannot corrupt it and the order is deterministic.
func substituteLabels(lines []string, labels map[string]int) (out []string) {
	names := slices.SortedFunc(maps.Keys(labels), func(a, b string) int {
		if diff := len(b) - len(a); diff != 0 {
			return diff
		}
		return strings.Compare(a, b)
	})

	out = slices.Clone(lines)
	for n, line := range out {
		for _, name := range names {
			line = strings.ReplaceAll(line, name, strconv.Itoa(labels[name]))
		}
		out[n] = line
	}

	return
}

// expandMoves rewrites the "move" pseudo-instruction into the concrete
// opcode selected by its operand shape:
//
//	move a,b  -> mov_r2r a,b   register to register
//	move [x]  -> mov_s2r x     stack bottom to register
//	move x    -> mov_r2s x     register to stack
//
// Any other shape is a program validity error. All other mnemonics pass
// through untouched.
func expandMoves(lines []string) (out []string, err error) {
	out = slices.Clone(lines)

	for n, line := range out {
		text := strings.TrimSpace(line)
		if len(text) == 0 || strings.HasPrefix(text, COMMENT_MARKER) {
			continue
		}

		mnemonic, rest, _ := strings.Cut(text, " ")
		if mnemonic != MOVE_MNEMONIC {
			continue
		}

		args := splitOperands(rest)
		switch {
		case len(args) == 2 && !bracketed(args[0]) && !bracketed(args[1]):
			out[n] = fmt.Sprintf("%v %v,%v", OP_MOV_R2R, args[0], args[1])
		case len(args) == 1 && bracketed(args[0]):
			arg := args[0][1 : len(args[0])-1]
			out[n] = fmt.Sprintf("%v %v", OP_MOV_S2R, arg)
		case len(args) == 1:
			out[n] = fmt.Sprintf("%v %v", OP_MOV_R2S, args[0])
		default:
			err = ErrSyntax{LineNo: n, Line: line, Err: ErrMoveArity}
			return
		}
	}

	return
}

// splitOperands splits a comma-separated operand list, dropping empty entries.
func splitOperands(rest string) (args []string) {
	for _, arg := range strings.Split(rest, ",") {
		arg = strings.TrimSpace(arg)
		if len(arg) > 0 {
			args = append(args, arg)
		}
	}

	return
}

// bracketed reports whether an operand uses the stack-bracket marker.
func bracketed(arg string) bool {
	return strings.HasPrefix(arg, "[") && strings.HasSuffix(arg, "]")
}
