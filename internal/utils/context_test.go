// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestOperationIDCtxKey(t *testing.T) {
	if OperationIDCtxKey.String() != "operationID" {
		t.Errorf("expected 'operationID', got '%s'", OperationIDCtxKey.String())
	}
}

func TestGetOperationIDFromContext_Success(t *testing.T) {
	ctx := WithOperationID(context.Background(), "op-42")

	id, ok := GetOperationIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if id != "op-42" {
		t.Errorf("expected id=op-42, got %s", id)
	}
}

func TestGetOperationIDFromContext_Missing(t *testing.T) {
	id, ok := GetOperationIDFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if id != "" {
		t.Errorf("expected empty id, got %s", id)
	}
}

func TestGetOperationIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), OperationIDCtxKey, 42)

	if _, ok := GetOperationIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestGetOperationIDFromContext_Empty(t *testing.T) {
	ctx := WithOperationID(context.Background(), "")

	if _, ok := GetOperationIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for empty id, got true")
	}
}

func TestGetOperationIDFromContext_DifferentKey(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextKey("otherKey"), "op-1")

	if _, ok := GetOperationIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for different key, got true")
	}
}
