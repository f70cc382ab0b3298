package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOfThroughWrapping(t *testing.T) {
	base := NewAppError(KindAuthentication, "credential rejected", ErrUnauthorized)
	wrapped := fmt.Errorf("pipeline: %w", base)

	if got := KindOf(wrapped); got != KindAuthentication {
		t.Fatalf("KindOf = %v, want %v", got, KindAuthentication)
	}
	if !errors.Is(wrapped, ErrUnauthorized) {
		t.Fatal("cause should be reachable through errors.Is")
	}
	if !IsKind(wrapped, KindAuthentication) || IsKind(nil, KindAuthentication) {
		t.Fatal("IsKind mismatch")
	}
	if got := KindOf(errors.New("plain")); got != KindUnknown {
		t.Fatalf("KindOf(plain) = %v", got)
	}
}

func TestAppErrorMessage(t *testing.T) {
	err := NewAppError(KindImageDecode, "decode image", errors.New("unknown format"))
	want := "IMAGE_DECODE_ERROR: decode image: unknown format"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
	if NewAppError(KindService, "no choices", nil).Error() != "SERVICE_FAILURE: no choices" {
		t.Fatal("message without cause")
	}
	if Kind(99).Code() != "INTERNAL_ERROR" {
		t.Fatal("unknown kinds should map to INTERNAL_ERROR")
	}
}
