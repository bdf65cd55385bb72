package utils

import (
	"context"
	"testing"
	"time"
)

func TestLoginAttemptScriptInitialized(t *testing.T) {
	if loginAttemptScript == nil {
		t.Fatalf("expected the throttle script to be initialized")
	}
}

func TestAllowLoginAttemptRejectsBadArguments(t *testing.T) {
	ctx := context.Background()
	if _, err := AllowLoginAttempt(ctx, nil, "k", 5, time.Minute); err == nil {
		t.Fatalf("nil client must be rejected")
	}
}
