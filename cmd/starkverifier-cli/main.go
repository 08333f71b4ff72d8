package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/2026Arbitriumhackthon/starkverifier/pkg/starkverifier"
)

// proveInput is the JSON shape read from stdin for the "prove" subcommand: a private
// sequence of signed returns plus an optional data commitment given as an unsigned
// integer.
type proveInput struct {
	Returns    []int64 `json:"returns"`
	Commitment *uint64 `json:"commitment,omitempty"`
}

// verifyInput is the JSON shape read from stdin for the "verify" subcommand: a
// previously produced proof's flattened word encoding plus its query metadata.
type verifyInput struct {
	Words         []string `json:"words"`
	QueryMetadata []int    `json:"query_metadata"`
	ReceiptHashes []string `json:"receipt_hashes,omitempty"`
}

func main() {
	if len(os.Args) < 2 {
		fatal("expected a subcommand: prove | verify")
	}

	switch os.Args[1] {
	case "prove":
		runProve(os.Args[2:])
	case "verify":
		runVerify(os.Args[2:])
	default:
		fatal(fmt.Sprintf("unknown subcommand %q: expected prove | verify", os.Args[1]))
	}
}

func runProve(args []string) {
	fs := flag.NewFlagSet("prove", flag.ExitOnError)
	numQueries := fs.Int("queries", 24, "number of FRI queries")
	maxLogTraceLen := fs.Int("max-log-trace-len", 26, "largest padded trace length (log2) the prover will accept")
	fs.Parse(args)

	logStderr("reading prove input from stdin...")
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<24)
	if !scanner.Scan() {
		fatal("failed to read prove input")
	}
	var in proveInput
	if err := json.Unmarshal(scanner.Bytes(), &in); err != nil {
		fatal(fmt.Sprintf("failed to parse prove input: %v", err))
	}

	commitment := starkverifier.NewFieldElement(0)
	if in.Commitment != nil {
		commitment = starkverifier.NewFieldElement(*in.Commitment)
	}

	cfg := starkverifier.DefaultProverConfig()
	cfg.NumQueries = *numQueries
	cfg.MaxLogTraceLen = *maxLogTraceLen

	logStderr("proving...")
	proof, err := starkverifier.Prove(in.Returns, commitment, cfg)
	if err != nil {
		fatal(fmt.Sprintf("prove failed: %v", err))
	}

	out := struct {
		Words         []string `json:"words"`
		QueryMetadata []int    `json:"query_metadata"`
	}{
		Words:         fieldsToHex(proof.EncodeWords()),
		QueryMetadata: proof.QueryMetadata,
	}
	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(out); err != nil {
		fatal(fmt.Sprintf("failed to encode proof: %v", err))
	}
}

func runVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	maxLogTraceLen := fs.Int("max-log-trace-len", 26, "largest padded trace length (log2) the verifier will accept")
	maxNumQueries := fs.Int("max-queries", 64, "largest FRI query count the verifier will accept")
	fs.Parse(args)

	cfg := starkverifier.DefaultVerifierConfig()
	cfg.MaxLogTraceLen = *maxLogTraceLen
	cfg.MaxNumQueries = *maxNumQueries

	logStderr("reading verify input from stdin...")
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<24)
	if !scanner.Scan() {
		fatal("failed to read verify input")
	}
	var in verifyInput
	if err := json.Unmarshal(scanner.Bytes(), &in); err != nil {
		fatal(fmt.Sprintf("failed to parse verify input: %v", err))
	}

	words, err := hexToFields(in.Words)
	if err != nil {
		fatal(fmt.Sprintf("failed to parse words: %v", err))
	}

	proof, err := starkverifier.DecodeProofWords(words, in.QueryMetadata)
	if err != nil {
		fatal(fmt.Sprintf("failed to decode proof: %v", err))
	}

	var ok bool
	if len(in.ReceiptHashes) > 0 {
		receiptHashes, rerr := hexToFields(in.ReceiptHashes)
		if rerr != nil {
			fatal(fmt.Sprintf("failed to parse receipt_hashes: %v", rerr))
		}
		logStderr("verifying with commitment binding...")
		ok, err = starkverifier.VerifyCommitBound(proof, receiptHashes, cfg)
	} else {
		logStderr("verifying...")
		ok, err = starkverifier.Verify(proof, cfg)
	}

	if !ok {
		fmt.Fprintln(os.Stdout, "reject")
		if err != nil {
			logStderr(err.Error())
		}
		os.Exit(1)
	}
	fmt.Fprintln(os.Stdout, "accept")
}

func fieldsToHex(fs []starkverifier.FieldElement) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		b := f.Bytes()
		out[i] = hex.EncodeToString(b[:])
	}
	return out
}

func hexToFields(hexes []string) ([]starkverifier.FieldElement, error) {
	out := make([]starkverifier.FieldElement, len(hexes))
	for i, h := range hexes {
		raw, err := hex.DecodeString(h)
		if err != nil {
			return nil, fmt.Errorf("word %d: %w", i, err)
		}
		if len(raw) != 32 {
			return nil, fmt.Errorf("word %d: expected 32 bytes, got %d", i, len(raw))
		}
		var b [32]byte
		copy(b[:], raw)
		fe, err := starkverifier.FieldElementFromBytes(b)
		if err != nil {
			return nil, fmt.Errorf("word %d: %w", i, err)
		}
		out[i] = fe
	}
	return out, nil
}

func logStderr(msg string) {
	fmt.Fprintln(os.Stderr, "starkverifier-cli:", msg)
}

func fatal(msg string) {
	logStderr("ERROR: " + msg)
	os.Exit(1)
}
