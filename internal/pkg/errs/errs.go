package errs

import (
	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

// Mark classifies err with a sentinel. The sentinel joins the unwrap chain,
// so stdlib errors.Is matches it as well as the underlying cause.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(cr.Join(markErr, err), markErr)
}

// Join combines independent failures, e.g. a saga step error together with
// the error of its failed compensation.
func Join(errors ...error) error {
	return cr.Join(errors...)
}
