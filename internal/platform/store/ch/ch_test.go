package ch

import (
	"context"
	"strings"
	"testing"
)

// TestOpen returns a non nil client for a well formed DSN.
// The pool dials lazily so no server is needed here
func TestOpen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := Config{URL: "clickhouse://localhost:9000/default", ClientName: "wildwatch", ClientTag: "test"}
	cl, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if cl == nil {
		t.Fatalf("Open returned nil client")
	}
	if err := cl.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}

// TestOpen_BadDSN surfaces the parse error instead of a half built client
func TestOpen_BadDSN(t *testing.T) {
	t.Parallel()

	cl, err := Open(context.Background(), Config{URL: "://bad"})
	if err == nil {
		t.Fatalf("Open expected error for bad DSN, got client %v", cl)
	}
	if !strings.Contains(err.Error(), "parse dsn") {
		t.Fatalf("Open error missing parse context: %v", err)
	}
}

// TestClose_NilSafe tolerates a zero value client
func TestClose_NilSafe(t *testing.T) {
	t.Parallel()

	var cl *CH
	if err := cl.Close(); err != nil {
		t.Fatalf("Close on nil client returned error: %v", err)
	}
	if err := (&CH{}).Close(); err != nil {
		t.Fatalf("Close on zero client returned error: %v", err)
	}
}

// TestBuildClientInfo defaults the product name and keeps fields trimmed
func TestBuildClientInfo(t *testing.T) {
	t.Parallel()

	info := BuildClientInfo("", " api ")
	if len(info.Products) == 0 {
		t.Fatalf("BuildClientInfo returned no products")
	}
	if got := info.Products[0].Name; got != "wildwatch" {
		t.Fatalf("product name = %q, want wildwatch", got)
	}
	if got := info.Products[0].Version; got != "api" {
		t.Fatalf("product version = %q, want api", got)
	}
}
