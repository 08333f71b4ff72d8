package utils

import "testing"

func TestDefaultProverConfigValidates(t *testing.T) {
	if err := DefaultProverConfig().Validate(); err != nil {
		t.Errorf("default prover config should validate, got: %v", err)
	}
}

func TestProverConfigRejectsBadNumQueries(t *testing.T) {
	c := DefaultProverConfig()
	c.NumQueries = 0
	if err := c.Validate(); err == nil {
		t.Error("expected error for num_queries=0")
	}
	c.NumQueries = 65
	if err := c.Validate(); err == nil {
		t.Error("expected error for num_queries=65")
	}
}

func TestProverConfigRejectsBadLogTraceLen(t *testing.T) {
	c := DefaultProverConfig()
	c.MaxLogTraceLen = 0
	if err := c.Validate(); err == nil {
		t.Error("expected error for max_log_trace_len=0")
	}
	c.MaxLogTraceLen = 27
	if err := c.Validate(); err == nil {
		t.Error("expected error for max_log_trace_len=27")
	}
}

func TestProverConfigRejectsUnsupportedHashFunction(t *testing.T) {
	c := DefaultProverConfig()
	c.HashFunction = "poseidon"
	if err := c.Validate(); err == nil {
		t.Error("expected error for an unsupported hash function")
	}
}

func TestProverConfigWithNumQueriesAndClone(t *testing.T) {
	c := DefaultProverConfig().WithNumQueries(8)
	if c.NumQueries != 8 {
		t.Errorf("expected num_queries=8, got %d", c.NumQueries)
	}
	clone := c.Clone()
	clone.NumQueries = 99
	if c.NumQueries == 99 {
		t.Error("Clone should not alias the original configuration")
	}
}

func TestDefaultVerifierConfig(t *testing.T) {
	v := DefaultVerifierConfig()
	if v.MaxLogTraceLen != 26 || v.MaxNumQueries != 64 {
		t.Errorf("unexpected default verifier config: %+v", v)
	}
}
