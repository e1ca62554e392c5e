package helpers

import (
	"github.com/ztrue/tracerr"
)

// Error carries stack traces for every wrapped error so failures deep in a
// provider invocation can be located without a debugger.
type Error struct {
	errs []tracerr.Error
}

var NilError = Error{nil}

func (e *Error) IsNil() bool {
	return IsNil(e)
}

func (e Error) HasError() bool {
	return !IsNil(e)
}

func IsNil(err error) bool {
	if traceableErr, ok := err.(Error); ok {
		return traceableErr.First() == nil
	}
	if traceableErr, ok := err.(*Error); ok {
		return traceableErr.First() == nil
	}
	return err == nil
}

func (e Error) Error() string {
	result := ""
	for _, err := range e.errs {
		result += Indent(tracerr.Sprint(err), ".  ") + "\n"
	}
	return result
}

// Message returns the error text without the stack trace, for user-facing
// reports in the command loop.
func (e Error) Message() string {
	result := []string{}
	for _, err := range e.errs {
		result = append(result, err.Error())
	}
	return Indent(JoinLines(result), "  ")
}

func (e Error) First() tracerr.Error {
	if e.errs == nil {
		return nil
	}
	return e.errs[0]
}

func Wrap(err error) Error {
	if err == nil {
		return NilError
	}
	return Error{[]tracerr.Error{tracerr.Wrap(err)}}
}

func WrapReturn[T any](x T, err error) (T, Error) {
	return x, Wrap(err)
}

func Errorf(format string, args ...interface{}) Error {
	return Error{[]tracerr.Error{tracerr.Errorf(format, args...)}}
}

func Join(others ...Error) Error {
	others = FilterSlice(others, func(err Error) bool {
		return !IsNil(err)
	})
	if len(others) == 0 {
		return NilError
	}
	if len(others) == 1 {
		return others[0]
	}
	result := Error{}
	for _, o := range others {
		result.errs = append(result.errs, o.errs...)
	}
	return result
}

func (e Error) NumErrors() int {
	if IsNil(e) {
		return 0
	}

	num := 0
	for _, err := range e.errs {
		if err != nil {
			num++
		}
	}
	return num
}
