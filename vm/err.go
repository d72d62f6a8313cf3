package vm

import (
	"errors"

	"github.com/cellvm/cellvm/translate"
)

var f = translate.From

var (
	// Stack errors. Non-fatal: the machine logs and keeps running.
	ErrStackEmpty = errors.New(f("stack empty"))
	ErrStackFull  = errors.New(f("stack full"))

	// Program validity errors. Fatal: the run aborts.
	ErrLabelEmpty   = errors.New(f("label name missing"))
	ErrMoveArity    = errors.New(f("move arity invalid"))
	ErrOperandCount = errors.New(f("excessive operands"))
)

type ErrLabelDuplicate string

func (el ErrLabelDuplicate) Error() string {
	return f("label %v duplicated", string(el))
}

func (el ErrLabelDuplicate) Is(err error) (ok bool) {
	_, ok = err.(ErrLabelDuplicate)
	return
}

type ErrMnemonic string

func (em ErrMnemonic) Error() string {
	return f("'%v' is not an instruction", string(em))
}

func (em ErrMnemonic) Is(err error) (ok bool) {
	_, ok = err.(ErrMnemonic)
	return
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

func (err ErrParseNumber) Is(target error) (ok bool) {
	_, ok = target.(ErrParseNumber)
	return
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

func (err ErrParseExpression) Is(target error) (ok bool) {
	_, ok = target.(ErrParseExpression)
	return
}

type ErrRegisterRange int32

func (er ErrRegisterRange) Error() string {
	return f("register %v out of range", int32(er))
}

func (er ErrRegisterRange) Is(err error) (ok bool) {
	_, ok = err.(ErrRegisterRange)
	return
}

// ErrSyntax locates an error at a program line.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
