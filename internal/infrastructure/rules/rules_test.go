package rules

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRulesParse(t *testing.T) {
	set := Default()
	if set.Len() == 0 {
		t.Fatal("expected embedded rules to be non-empty")
	}
}

func TestMatchOrderAndCase(t *testing.T) {
	set := Default()

	label, ok := set.Match("Quarterly INVOICE march")
	if !ok || label != "invoice" {
		t.Fatalf("expected invoice match, got %q ok=%v", label, ok)
	}

	// "bank statement" must win over the generic "statement" wording via
	// rule order inside the same pattern.
	label, ok = set.Match("bank_statement_2024.pdf")
	if !ok || label != "bank_statement" {
		t.Fatalf("expected bank_statement, got %q ok=%v", label, ok)
	}

	if _, ok := set.Match("vacation_photo"); ok {
		t.Fatal("expected no match for unrelated text")
	}
}

func TestMatchAnchored(t *testing.T) {
	set := Default()

	label, anchored, ok := set.MatchAnchored("invoice_march.pdf")
	if !ok || label != "invoice" || !anchored {
		t.Fatalf("expected anchored invoice, got label=%q anchored=%v ok=%v", label, anchored, ok)
	}

	_, anchored, ok = set.MatchAnchored("2024_invoice.pdf")
	if !ok || anchored {
		t.Fatalf("expected unanchored match, got anchored=%v ok=%v", anchored, ok)
	}
}

func TestLoadOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := "rules:\n  - label: payslip\n    pattern: '\\bpayslip\\b'\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	set, err := Load(path)
	if err != nil {
		t.Fatalf("load override: %v", err)
	}
	if set.Len() != 1 {
		t.Fatalf("expected 1 rule, got %d", set.Len())
	}
	if label, ok := set.Match("PAYSLIP June"); !ok || label != "payslip" {
		t.Fatalf("expected payslip, got %q ok=%v", label, ok)
	}
}

func TestLoadRejectsBadPattern(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := "rules:\n  - label: broken\n    pattern: '('\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	set, err := Load("")
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	if set.Len() == 0 {
		t.Fatal("expected defaults")
	}
}
