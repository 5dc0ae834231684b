package errors

import (
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"plain registered error": {
			err:      ErrUnauthorized,
			debug:    false,
			wantLog:  "unauthorized",
			wantCode: ErrUnauthorized.code,
		},
		"wrapped registered error": {
			err:      Wrap(Wrap(ErrUnauthorized, "foo"), "bar"),
			debug:    false,
			wantLog:  "bar: foo: unauthorized",
			wantCode: ErrUnauthorized.code,
		},
		"nil is empty message": {
			err:      nil,
			debug:    false,
			wantLog:  "",
			wantCode: 0,
		},
		"nil registered error is not an error": {
			err:      (*Error)(nil),
			debug:    false,
			wantLog:  "",
			wantCode: 0,
		},
		"stdlib is generic message": {
			err:      io.EOF,
			debug:    false,
			wantLog:  "internal error",
			wantCode: 1,
		},
		"stdlib returns error message in debug mode": {
			err:      io.EOF,
			debug:    true,
			wantLog:  "EOF",
			wantCode: 1,
		},
		"wrapped stdlib is only a generic message": {
			err:      Wrap(io.EOF, "cannot read file"),
			debug:    false,
			wantLog:  "internal error",
			wantCode: 1,
		},
		"multi error uses the first code": {
			err:      Append(ErrState, ErrAmount),
			debug:    false,
			wantLog:  "2 errors occurred:\n\t* invalid state\n\t* invalid amount",
			wantCode: ErrState.code,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestABCIInfoDebugStackTrace(t *testing.T) {
	_, log := ABCIInfo(Wrap(ErrState, "closed"), true)
	if !strings.Contains(log, "errors/abci_test.go") {
		t.Fatalf("stack trace not found in %q", log)
	}
}

func TestRedact(t *testing.T) {
	if err := Redact(ErrPanic, false); ErrPanic.Is(err) {
		t.Error("reduct must not pass through panic error")
	}
	if err := Redact(ErrPanic, true); !ErrPanic.Is(err) {
		t.Error("reduct should pass through panic error in debug mode")
	}
	if err := Redact(ErrUnauthorized, false); !ErrUnauthorized.Is(err) {
		t.Error("reduct should pass through registered error")
	}

	serr := fmt.Errorf("stdlib error")
	if err := Redact(serr, false); err == serr {
		t.Error("reduct must not pass through a stdlib error")
	}
}

func TestABCIError(t *testing.T) {
	if err := ABCIError(SuccessABCICode, "fine"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	err := ABCIError(ErrCurrency.ABCICode(), "ETH is not IOV")
	if !ErrCurrency.Is(err) {
		t.Fatalf("want currency error, got %+v", err)
	}
	if code, log := ABCIInfo(err, false); code != ErrCurrency.code || log != "ETH is not IOV: currency mismatch" {
		t.Fatalf("unexpected code %d and log %q", code, log)
	}

	err = ABCIError(987654, "who knows")
	if code, _ := ABCIInfo(err, false); code != 987654 {
		t.Fatalf("want the original code, got %d", code)
	}
	if ErrInput.Is(err) {
		t.Fatal("unknown code must not match a registered error")
	}
}
