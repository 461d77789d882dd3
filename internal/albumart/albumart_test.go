package albumart

import (
	"bytes"
	"testing"
)

func TestParseDisplay(t *testing.T) {
	payload := []byte{1, 2, 3, 4}
	var buf bytes.Buffer
	buf.WriteString("size: 4\n")
	buf.WriteString("action: display\n")
	buf.Write(payload)

	result, warnings, err := parseBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if result.Action != ActionDisplay || !bytes.Equal(result.Data, payload) {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestParseDisplayDefault(t *testing.T) {
	result, _, err := parseBytes([]byte("action: displaydefault\n"))
	if err != nil {
		t.Fatal(err)
	}
	if result.Action != ActionDisplayDefault {
		t.Fatalf("expected displaydefault, got %v", result.Action)
	}
}

func TestParseFallback(t *testing.T) {
	result, _, err := parseBytes([]byte("action: fallback\n"))
	if err != nil {
		t.Fatal(err)
	}
	if result.Action != ActionFallback {
		t.Fatalf("expected fallback, got %v", result.Action)
	}
}

func TestParseUnknownKeyIsWarningNotFailure(t *testing.T) {
	result, warnings, err := parseBytes([]byte("bogus: value\naction: displaydefault\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
	if result.Action != ActionDisplayDefault {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestParseMissingActionIsFailure(t *testing.T) {
	_, _, err := parseBytes([]byte("size: 4\n"))
	if err == nil {
		t.Fatalf("expected failure for missing action")
	}
}

func TestParseDisplayWithoutSizeIsFailure(t *testing.T) {
	_, _, err := parseBytes([]byte("action: display\n"))
	if err == nil {
		t.Fatalf("expected failure for display without size")
	}
}
