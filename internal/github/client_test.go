package github

import (
	"context"
	"testing"
)

func TestNewClient(t *testing.T) {
	ctx := context.Background()
	token := "test-token"

	client := NewClient(ctx, token)

	if client == nil {
		t.Fatal("NewClient() returned nil")
	}

	if client.client == nil {
		t.Error("NewClient() client field is nil")
	}

	if client.retry == nil {
		t.Error("NewClient() retry config is nil")
	}
}

// Note: Integration tests for the listing and comment operations would require
// a real GitHub token and network access, so we're keeping these as unit tests
// for the basic functionality. The resolution and reporting logic is covered
// against fakes in internal/resolver and internal/report.
