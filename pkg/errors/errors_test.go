// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/p8prep/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "encoding_error",
			code:    errors.ErrEncoding,
			message: "input contains non-ASCII bytes",
			wantStr: "[ENCODING] input contains non-ASCII bytes",
		},
		{
			name:    "conflict_error",
			code:    errors.ErrMoveConflict,
			message: "destination already exists",
			wantStr: "[MOVE_CONFLICT] destination already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	inner := stderrors.New("permission denied")
	err := errors.Wrap(inner, errors.ErrXattrSet, "failed to set file_type")

	if !stderrors.Is(err, inner) {
		t.Error("wrapped error should match errors.Is on the inner error")
	}

	want := "[XATTR_SET] failed to set file_type: permission denied"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if errors.Wrap(nil, errors.ErrXattrSet, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestIsErrorCode(t *testing.T) {
	err := errors.Newf(errors.ErrMappingAmbiguous, "pattern %q matches %d files", "*.TXT", 2)

	if !errors.IsErrorCode(err, errors.ErrMappingAmbiguous) {
		t.Error("IsErrorCode should match the original code")
	}

	if errors.IsErrorCode(err, errors.ErrMoveConflict) {
		t.Error("IsErrorCode should not match a different code")
	}

	wrapped := errors.Wrap(err, errors.ErrConfigValid, "outer")
	if errors.GetErrorCode(wrapped) != errors.ErrConfigValid {
		t.Error("GetErrorCode should return the outermost code")
	}

	if errors.GetErrorCode(stderrors.New("plain")) != errors.ErrUnknown {
		t.Error("GetErrorCode on a plain error should be ErrUnknown")
	}
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrMoveConflict, "destination already exists").
		WithDetail("path", "/vol/DEST/A.TXT")

	details := errors.GetErrorDetails(err)
	if details == nil {
		t.Fatal("expected details map")
	}
	if details["path"] != "/vol/DEST/A.TXT" {
		t.Errorf("detail path = %v", details["path"])
	}
}
