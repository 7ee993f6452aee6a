package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestWrap_PreservesCode(t *testing.T) {
	base := DegenerateData("constant sample")
	wrapped := Wrap(base, "binning failed")

	if GetCode(wrapped) != CodeDegenerateData {
		t.Errorf("wrapping must preserve the code, got %s", GetCode(wrapped))
	}
	if !stderrors.Is(wrapped, base) {
		t.Error("wrapped error must unwrap to its cause")
	}
	if wrapped.Error() != "binning failed: constant sample" {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
}

func TestWrap_ForeignErrorGetsInternalCode(t *testing.T) {
	wrapped := Wrap(fmt.Errorf("disk full"), "write failed")
	if GetCode(wrapped) != CodeInternalError {
		t.Errorf("expected %s for a non-app cause, got %s", CodeInternalError, GetCode(wrapped))
	}
}

func TestWrap_NilPassesThrough(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("wrapping nil must stay nil")
	}
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("wrapping nil must stay nil")
	}
}

func TestWrapf_FormatsMessage(t *testing.T) {
	wrapped := Wrapf(InvalidSample("empty"), "feature %q", "age")
	if GetCode(wrapped) != CodeInvalidSample {
		t.Errorf("expected %s, got %s", CodeInvalidSample, GetCode(wrapped))
	}
	if wrapped.Error() != `feature "age": empty` {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
}

func TestGetCode_Unknown(t *testing.T) {
	if GetCode(fmt.Errorf("plain")) != "UNKNOWN" {
		t.Errorf("plain errors report UNKNOWN, got %s", GetCode(fmt.Errorf("plain")))
	}
}

func TestConstructors(t *testing.T) {
	cases := map[string]*AppError{
		CodeInvalidSample:     InvalidSample("m"),
		CodeDegenerateData:    DegenerateData("m"),
		CodeConfigInvalid:     ConfigInvalid("m"),
		CodeUnsupportedOption: UnsupportedOption("m"),
		CodeInvalidInput:      InvalidInput("m"),
		CodeInternalError:     InternalError("m"),
	}
	for code, err := range cases {
		if err.Code != code {
			t.Errorf("expected code %s, got %s", code, err.Code)
		}
		if !IsAppError(err) {
			t.Errorf("%s constructor must produce an AppError", code)
		}
	}
}
