package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Well-known document keys. Each key holds one JSON document owning an
// entire entity collection or singleton.
const (
	KeyProducts    = "adminProducts"
	KeyModels      = "product3DModels"
	KeyCartItems   = "cartItems"
	KeyCoupons     = "coupons"
	KeyHeroContent = "heroContent"
	KeyCurrentUser = "currentUser"
	KeyAdminFlag   = "isAdminAuthenticated"
	KeyUserFlag    = "isUserAuthenticated"
)

var (
	// ErrNotFound is returned by Get when no document exists under the key.
	ErrNotFound = errors.New("document not found")

	// ErrQuotaExceeded is returned by Set when a write would exceed the
	// backend's capacity. Callers surface it distinctly from generic
	// storage failures, typically as an oversize-file message.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrStorageFailure covers corrupt documents and serialization errors.
	ErrStorageFailure = errors.New("storage failure")
)

// KV is a durable string-keyed JSON document store. Writes to the same key
// from independent clients are last-write-wins; there is no merge. Backends
// keep a revision per document so a future conflict check has something to
// compare, but nothing reads it today.
type KV interface {
	// Get returns the document stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores doc under key, replacing any previous document.
	Set(ctx context.Context, key string, doc []byte) error

	// Remove deletes the document under key. Removing an absent key is not
	// an error.
	Remove(ctx context.Context, key string) error

	// Keys lists all keys that currently hold a document.
	Keys(ctx context.Context) ([]string, error)
}

// GetJSON reads the document under key and unmarshals it into v.
// ErrNotFound passes through untouched; a document that fails to unmarshal
// is reported as ErrStorageFailure.
func GetJSON(ctx context.Context, kv KV, key string, v any) error {
	doc, err := kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(doc, v); err != nil {
		return fmt.Errorf("%w: corrupt document %q: %v", ErrStorageFailure, key, err)
	}
	return nil
}

// SetJSON marshals v and stores it under key.
func SetJSON(ctx context.Context, kv KV, key string, v any) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: marshal document %q: %v", ErrStorageFailure, key, err)
	}
	return kv.Set(ctx, key, doc)
}
