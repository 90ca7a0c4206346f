package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iho/bankist/internal/adapter/script"
	"github.com/iho/bankist/internal/domain"
)

func setTestEnv(t *testing.T) {
	t.Helper()

	t.Setenv("LOG_LEVEL", "disabled")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("LOAN_APPROVAL", "always")
	t.Setenv("STRICT_AMOUNTS", "false")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeScript(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "session.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printJSON(&buf, struct {
		A int `json:"a"`
	}{A: 1}); err != nil {
		t.Fatalf("printJSON failed: %v", err)
	}

	expected := "{\n  \"a\": 1\n}\n"
	if buf.String() != expected {
		t.Fatalf("unexpected json output:\n%s", buf.String())
	}
}

func TestDemoCmd(t *testing.T) {
	setTestEnv(t)

	out, err := execute(t, "demo")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	if !strings.Contains(out, "Loan approved") {
		t.Fatalf("expected loan approval, got %q", out)
	}
	if !strings.Contains(out, "Movements: [250 -140 1000]") {
		t.Fatalf("unexpected movements in %q", out)
	}
}

func TestDemoCmdLoanApprovalFlag(t *testing.T) {
	setTestEnv(t)

	out, err := execute(t, "demo", "--loan-approval", "never")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	if !strings.Contains(out, "Loan denied") {
		t.Fatalf("expected loan denial, got %q", out)
	}
	if !strings.Contains(out, "Movements: [250 -140]") {
		t.Fatalf("unexpected movements in %q", out)
	}
}

func TestDemoCmdUnknownPolicy(t *testing.T) {
	setTestEnv(t)
	t.Setenv("LOAN_APPROVAL", "sometimes")

	if _, err := execute(t, "demo"); err == nil {
		t.Fatal("expected error for unknown loan approval policy")
	}
}

func TestRunCmd(t *testing.T) {
	setTestEnv(t)

	path := writeScript(t, `
accounts:
  - {ref: jonas, owner: Jonas, access_code: "1111"}
steps:
  - {account: jonas, op: deposit, amount: "250"}
  - {account: jonas, op: withdraw, amount: "140", access_code: "1111"}
  - {account: jonas, op: loan, amount: "1000"}
`)

	out, err := execute(t, "run", path)
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	var result script.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("failed to decode output %q: %v", out, err)
	}
	if len(result.Accounts) != 1 {
		t.Fatalf("expected 1 account, got %d", len(result.Accounts))
	}

	got := result.Accounts[0]
	if got.Currency != "EUR" {
		t.Fatalf("expected default currency EUR, got %s", got.Currency)
	}
	if len(got.Movements) != 3 || got.Movements[1].String() != "-140" {
		t.Fatalf("unexpected movements %v", got.Movements)
	}
	if got.Balance.String() != "1110" {
		t.Fatalf("expected balance 1110, got %s", got.Balance)
	}
}

func TestRunCmdStrictFlag(t *testing.T) {
	setTestEnv(t)

	path := writeScript(t, `
accounts:
  - {ref: jonas, owner: Jonas, access_code: "1111"}
steps:
  - {account: jonas, op: withdraw, amount: "-50"}
`)

	if _, err := execute(t, "run", path); err != nil {
		t.Fatalf("lenient run failed: %v", err)
	}

	_, err := execute(t, "run", "--strict", path)
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestRunCmdMissingFile(t *testing.T) {
	setTestEnv(t)

	if _, err := execute(t, "run", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
