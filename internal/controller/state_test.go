package controller

import (
	"errors"
	"strings"
	"testing"

	"solswap-go/internal/trade"
)

func step(t *testing.T, m *Machine, input string) Action {
	t.Helper()
	action, err := m.Step(input)
	if err != nil {
		t.Fatalf("Step(%q) returned error: %v", input, err)
	}
	return action
}

func TestBuyFlow(t *testing.T) {
	m := NewMachine()
	if m.State != StateFeeChoice {
		t.Fatalf("fresh machine should start at fee choice")
	}

	step(t, m, "a")
	if m.Fee != trade.AutoFee {
		t.Fatalf("expected auto fee, got %d", m.Fee)
	}
	if m.State != StateActionChoice {
		t.Fatalf("expected action choice, got %d", m.State)
	}

	step(t, m, "b")
	if m.State != StateAmountEntry {
		t.Fatalf("expected amount entry, got %d", m.State)
	}

	step(t, m, "0.01")
	if m.Amount != 10_000_000 {
		t.Fatalf("expected 10000000 lamports, got %d", m.Amount)
	}
	if m.State != StateConfirm {
		t.Fatalf("expected confirm, got %d", m.State)
	}
	if !strings.Contains(m.Prompt(), "0.01") {
		t.Fatalf("confirm prompt should echo the amount: %q", m.Prompt())
	}

	if action := step(t, m, "y"); action != ActionExecuteBuy {
		t.Fatalf("expected ActionExecuteBuy, got %d", action)
	}
	if m.State != StateExecuting {
		t.Fatalf("expected executing, got %d", m.State)
	}

	m.Finish()
	if m.State != StateIdle {
		t.Fatalf("expected idle after Finish, got %d", m.State)
	}
}

func TestSellFlow(t *testing.T) {
	m := NewMachine()
	step(t, m, "0.001") // custom fee
	if m.Fee != 710714 {
		t.Fatalf("expected custom fee 710714, got %d", m.Fee)
	}

	step(t, m, "s")
	if m.State != StatePercentChoice {
		t.Fatalf("expected percent choice, got %d", m.State)
	}

	step(t, m, "a")
	if m.Percent != 50 {
		t.Fatalf("expected 50%%, got %d", m.Percent)
	}
	if !strings.Contains(m.Prompt(), "50%") {
		t.Fatalf("confirm prompt should name the percent: %q", m.Prompt())
	}

	if action := step(t, m, "Y"); action != ActionExecuteSell {
		t.Fatalf("expected ActionExecuteSell, got %d", action)
	}
}

func TestConfirmDenyLoopsBack(t *testing.T) {
	m := NewMachine()
	step(t, m, "a")
	step(t, m, "b")
	step(t, m, "1.5")
	if action := step(t, m, "n"); action != ActionNone {
		t.Fatalf("deny should not execute, got %d", action)
	}
	if m.State != StateAmountEntry {
		t.Fatalf("deny should return to amount entry, got %d", m.State)
	}

	// Sell branch loops back to the percent prompt.
	m = NewMachine()
	step(t, m, "a")
	step(t, m, "s")
	step(t, m, "b")
	step(t, m, "whatever") // any non-yes answer is a deny
	if m.State != StatePercentChoice {
		t.Fatalf("deny should return to percent choice, got %d", m.State)
	}
}

func TestInvalidInputIsFatal(t *testing.T) {
	cases := []struct {
		name   string
		script []string
		bad    string
	}{
		{"fee", nil, "lots"},
		{"action", []string{"a"}, "x"},
		{"amount", []string{"a", "b"}, "ten"},
		{"percent", []string{"a", "s"}, "c"},
	}
	for _, c := range cases {
		m := NewMachine()
		for _, in := range c.script {
			step(t, m, in)
		}
		if _, err := m.Step(c.bad); !errors.Is(err, trade.ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput for %q, got %v", c.name, c.bad, err)
		}
	}
}

func TestPromptsPerState(t *testing.T) {
	m := NewMachine()
	if !strings.Contains(m.Prompt(), "prioritization fee") {
		t.Fatalf("unexpected fee prompt: %q", m.Prompt())
	}
	step(t, m, "a")
	if !strings.Contains(m.Prompt(), "Buy(b) or Sell(s)") {
		t.Fatalf("unexpected action prompt: %q", m.Prompt())
	}
	step(t, m, "b")
	if !strings.Contains(m.Prompt(), "forms of SOL") {
		t.Fatalf("unexpected amount prompt: %q", m.Prompt())
	}
}
