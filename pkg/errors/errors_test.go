package errors

import (
	stderrors "errors"
	"testing"
)

func TestIs(t *testing.T) {
	cause := stderrors.New("connection refused")

	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"direct match", New(CodeNotFound, "missing"), CodeNotFound, true},
		{"direct mismatch", New(CodeNotFound, "missing"), CodeInternal, false},
		{"outer code", Wrap(CodeLoadFailed, New(CodeNetworkNotFound, "no such network"), "network 7"), CodeLoadFailed, true},
		{"inner code through wrapper", Wrap(CodeLoadFailed, New(CodeNetworkNotFound, "no such network"), "network 7"), CodeNetworkNotFound, true},
		{"foreign cause ends the chain", Wrap(CodeLoadFailed, cause, "network 7"), CodeNetworkNotFound, false},
		{"plain error", cause, CodeInternal, false},
		{"nil", nil, CodeInternal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestError_Format(t *testing.T) {
	err := Wrap(CodeLoadFailed, stderrors.New("timeout"), "network %d", 7)

	if got := err.Error(); got != "LOAD_FAILED: network 7: timeout" {
		t.Errorf("Error() = %q", got)
	}
	if got := UserMessage(err); got != "network 7" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := GetCode(err); got != CodeLoadFailed {
		t.Errorf("GetCode = %q", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(CodeInternal, cause, "wrapped")

	if !stderrors.Is(err, cause) {
		t.Error("stdlib Is does not reach the cause")
	}
}
