package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocess_Idempotent(t *testing.T) {
	assert := assert.New(t)

	// No labels, expressions, or pseudo-instructions: output equals input.
	lines := []string{
		"push 5",
		"",
		"; a comment",
		"add",
		"prt",
	}

	prog, err := Preprocess(lines)
	assert.NoError(err)
	assert.Equal(lines, prog.Lines)
}

func TestPreprocess_BackwardLabel(t *testing.T) {
	assert := assert.New(t)

	prog, err := Preprocess([]string{
		":top",
		"inc 9",
		"jmp top",
	})
	assert.NoError(err)
	assert.Equal([]string{"", "inc 9", "jmp 0"}, prog.Lines)
}

func TestPreprocess_ForwardLabel(t *testing.T) {
	assert := assert.New(t)

	prog, err := Preprocess([]string{
		"jmp end",
		"inc 9",
		":end",
	})
	assert.NoError(err)
	assert.Equal([]string{"jmp 2", "inc 9", ""}, prog.Lines)
}

func TestPreprocess_LabelDuplicate(t *testing.T) {
	assert := assert.New(t)

	_, err := Preprocess([]string{
		":top",
		"inc 9",
		":top",
	})
	assert.ErrorIs(err, ErrLabelDuplicate("top"))

	var serr ErrSyntax
	assert.ErrorAs(err, &serr)
	assert.Equal(2, serr.LineNo)
}

func TestPreprocess_LabelEmpty(t *testing.T) {
	assert := assert.New(t)

	_, err := Preprocess([]string{":"})
	assert.ErrorIs(err, ErrLabelEmpty)
}

func TestPreprocess_LabelSubstring(t *testing.T) {
	assert := assert.New(t)

	// "x" is a substring of "xy"; longest-name-first substitution must
	// not corrupt the longer name.
	prog, err := Preprocess([]string{
		":x",
		":xy",
		"jmp xy",
		"jmp x",
	})
	assert.NoError(err)
	assert.Equal("jmp 1", prog.Lines[2])
	assert.Equal("jmp 0", prog.Lines[3])
}

func TestPreprocess_MoveRegisterToRegister(t *testing.T) {
	assert := assert.New(t)

	prog, err := Preprocess([]string{"move 4,5"})
	assert.NoError(err)
	assert.Equal([]string{"mov_r2r 4,5"}, prog.Lines)
}

func TestPreprocess_MoveStackToRegister(t *testing.T) {
	assert := assert.New(t)

	prog, err := Preprocess([]string{"move [6]"})
	assert.NoError(err)
	assert.Equal([]string{"mov_s2r 6"}, prog.Lines)
}

func TestPreprocess_MoveRegisterToStack(t *testing.T) {
	assert := assert.New(t)

	prog, err := Preprocess([]string{"move 6"})
	assert.NoError(err)
	assert.Equal([]string{"mov_r2s 6"}, prog.Lines)
}

func TestPreprocess_MoveArity(t *testing.T) {
	assert := assert.New(t)

	for _, line := range []string{
		"move",
		"move 1,2,3",
		"move [1],2",
	} {
		_, err := Preprocess([]string{"push 1", line})
		assert.ErrorIs(err, ErrMoveArity, line)

		var serr ErrSyntax
		assert.ErrorAs(err, &serr, line)
		assert.Equal(1, serr.LineNo, line)
	}
}

func TestPreprocess_Expression(t *testing.T) {
	assert := assert.New(t)

	prog, err := Preprocess([]string{"push $(2 + 3 * 4)"})
	assert.NoError(err)
	assert.Equal([]string{"push 14"}, prog.Lines)
}

func TestPreprocess_ExpressionWithLabel(t *testing.T) {
	require := require.New(t)

	// Labels are predefined as their line indexes inside $() expressions.
	prog, err := Preprocess([]string{
		":top",
		"inc 9",
		"jmp $(top + 1)",
	})
	require.NoError(err)
	require.Equal("jmp 1", prog.Lines[2])
}

func TestPreprocess_ExpressionInvalid(t *testing.T) {
	assert := assert.New(t)

	_, err := Preprocess([]string{"push $(nonesuch)"})
	assert.ErrorIs(err, ErrParseExpression("nonesuch"))

	_, err = Preprocess([]string{`push $("text")`})
	assert.Error(err)
}

func TestPreprocess_ExpressionPair(t *testing.T) {
	assert := assert.New(t)

	prog, err := Preprocess([]string{"set $(1),$(2)"})
	assert.NoError(err)
	assert.Equal([]string{"set 1,2"}, prog.Lines)
}

func TestPreprocess_ExpressionInvalidBeforeValid(t *testing.T) {
	assert := assert.New(t)

	// A later valid expression on the same line must not mask the
	// earlier failure.
	_, err := Preprocess([]string{
		"push 1",
		"set $(nonesuch),$(1)",
	})
	assert.ErrorIs(err, ErrParseExpression("nonesuch"))

	var serr ErrSyntax
	assert.ErrorAs(err, &serr)
	assert.Equal(1, serr.LineNo)
}

func TestPreprocess_ExpressionOutOfRange(t *testing.T) {
	assert := assert.New(t)

	// Results that do not fit a cell's integer view are validity
	// errors, never truncated.
	for _, line := range []string{
		"push $(1 << 40)",
		"push $(2147483648)",
		"push $(-2147483649)",
	} {
		_, err := Preprocess([]string{line})
		assert.ErrorIs(err, ErrParseExpression(""), line)
	}

	prog, err := Preprocess([]string{"push $(-2147483648)"})
	assert.NoError(err)
	assert.Equal([]string{"push -2147483648"}, prog.Lines)
}

func TestPreprocess_DoesNotMutateInput(t *testing.T) {
	assert := assert.New(t)

	lines := []string{":top", "jmp top"}
	_, err := Preprocess(lines)
	assert.NoError(err)
	assert.Equal([]string{":top", "jmp top"}, lines)
}
