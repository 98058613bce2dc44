package reconcile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// ExtractKind classifies the outcome of Extract
type ExtractKind int

const (
	// ExtractOK means a JSON object was found and parsed
	ExtractOK ExtractKind = iota
	// ExtractNoCandidate means the reply holds nothing that looks like JSON
	ExtractNoCandidate
	// ExtractParseError means a candidate was found but did not parse as an object
	ExtractParseError
)

func (k ExtractKind) String() string {
	switch k {
	case ExtractOK:
		return "ok"
	case ExtractNoCandidate:
		return "no-candidate"
	case ExtractParseError:
		return "parse-error"
	}
	return fmt.Sprintf("ExtractKind(%d)", int(k))
}

// Extraction is the result of pulling a structured payload out of a reply
type Extraction struct {
	Kind      ExtractKind
	Candidate string
	Payload   map[string]any
	// Err is a *ParseError unless Kind is ExtractOK
	Err error
}

var (
	fencedJSON = regexp.MustCompile("(?is)```[ \\t]*json[^\\n]*\\n(.*?)```")
	braceSpan  = regexp.MustCompile(`(?s)\{.*\}`)
)

// candidates returns the substrings worth parsing, best first: the body of
// a json-labelled fenced block, then the span from the first '{' to the
// last '}'.
func candidates(reply string) []string {
	var out []string
	if m := fencedJSON.FindStringSubmatch(reply); m != nil {
		out = append(out, strings.TrimSpace(m[1]))
	}
	if span := braceSpan.FindString(reply); span != "" {
		if len(out) == 0 || out[0] != span {
			out = append(out, span)
		}
	}
	return out
}

// Extract finds and parses the JSON object embedded in a model reply
func Extract(reply string) Extraction {
	cands := candidates(reply)
	if len(cands) == 0 {
		return Extraction{
			Kind: ExtractNoCandidate,
			Err:  &ParseError{Message: "no structured data found", Cause: ErrNoCandidate},
		}
	}

	var firstErr error
	for _, c := range cands {
		payload, err := parseObject(c)
		if err == nil {
			return Extraction{Kind: ExtractOK, Candidate: c, Payload: payload}
		}
		if firstErr == nil {
			firstErr = err
		}
	}

	return Extraction{
		Kind:      ExtractParseError,
		Candidate: cands[0],
		Err:       &ParseError{Message: "failed to parse structured data", Candidate: cands[0], Cause: firstErr},
	}
}

// parseObject decodes s as exactly one JSON object. Numbers are kept as
// json.Number so their literal text survives.
func parseObject(s string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after JSON value")
	}

	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %T", v)
	}
	return m, nil
}
