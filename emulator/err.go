package emulator

import (
	"errors"

	"github.com/cellvm/cellvm/translate"
)

var f = translate.From

var (
	ErrStepLimit = errors.New(f("step limit exceeded"))
)
