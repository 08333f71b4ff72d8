package starkverifier

import "testing"

func TestNewMPTWalkerReturnsNonNil(t *testing.T) {
	if NewMPTWalker() == nil {
		t.Error("NewMPTWalker should never return nil")
	}
}

func TestDefaultProverOptions(t *testing.T) {
	opts := DefaultProverOptions()
	if opts.NumQueries <= 0 {
		t.Errorf("expected a positive default query count, got %d", opts.NumQueries)
	}
}
