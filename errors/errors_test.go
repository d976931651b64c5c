package errors

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"invalid argument", ErrInvalidArgument, KindInvalidArgument},
		{"input missing", ErrInputMissing, KindInputMissing},
		{"disk full", ErrDiskFull, KindDiskFull},
		{"io", ErrIO, KindIO},
		{"cancelled", ErrCancelled, KindCancelled},
		{"wrapped", fmtWrap(ErrDiskFull), KindDiskFull},
		{"unrelated", errors.New("boom"), KindUnknown},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Classify(c.err); got != c.want {
				t.Errorf("Classify(%v) = %v, want %v", c.err, got, c.want)
			}
		})
	}
}

func fmtWrap(err error) error {
	return errors.Join(err, errors.New("context"))
}
