// Package controller drives the interactive prompt flow. The prompt logic is
// a pure state machine so the whole conversation is testable without console
// I/O; the Runner layers real reads and writes on top.
package controller

import (
	"fmt"
	"strings"

	"solswap-go/internal/trade"
)

// State is a node in the prompt flow.
type State int

const (
	StateFeeChoice State = iota
	StateActionChoice
	StateAmountEntry
	StatePercentChoice
	StateConfirm
	StateExecuting
	StateIdle
)

// Action is the side effect a transition asks the caller to perform.
type Action int

const (
	ActionNone Action = iota
	ActionExecuteBuy
	ActionExecuteSell
)

// Machine accumulates the session inputs as the prompts advance. A negative
// confirm answer loops back to the entry state; malformed free text anywhere
// else ends the session.
type Machine struct {
	State  State
	Fee    uint64
	Buying bool
	Amount uint64 // lamports, buy mode
	// amountEcho preserves the user's own spelling for the confirm prompt.
	amountEcho string
	Percent    uint64
}

func NewMachine() *Machine {
	return &Machine{State: StateFeeChoice}
}

// Prompt returns the console text for the current state.
func (m *Machine) Prompt() string {
	switch m.State {
	case StateFeeChoice:
		return "How much prioritization fee do you want? Auto(a)(0.0005) or Custom(type any number)?: "
	case StateActionChoice:
		return "Do you want to Buy(b) or Sell(s)?: "
	case StateAmountEntry:
		return "Please enter estimate amount in forms of SOL: "
	case StatePercentChoice:
		return "How much do you want to sell: 50%(a) or 100%(b)?: "
	case StateConfirm:
		if m.Buying {
			return fmt.Sprintf("You entered: %s !  Yes(y) or Not(n)?: ", m.amountEcho)
		}
		return fmt.Sprintf("Do you really want to sell %d%% of all the tokens? Yes(y) or Not(n)?: ", m.Percent)
	}
	return ""
}

// Step feeds one line of input to the machine and returns the side effect to
// perform. Errors wrap trade.ErrInvalidInput and end the session.
func (m *Machine) Step(input string) (Action, error) {
	input = strings.TrimSpace(input)
	switch m.State {
	case StateFeeChoice:
		fee, err := trade.ComputeFee(input)
		if err != nil {
			return ActionNone, err
		}
		m.Fee = fee
		m.State = StateActionChoice

	case StateActionChoice:
		switch input {
		case "b", "B":
			m.Buying = true
			m.State = StateAmountEntry
		case "s", "S":
			m.Buying = false
			m.State = StatePercentChoice
		default:
			return ActionNone, fmt.Errorf("%w: expected Buy(b) or Sell(s), got %q", trade.ErrInvalidInput, input)
		}

	case StateAmountEntry:
		amount, err := trade.ResolveBuyAmount(input)
		if err != nil {
			return ActionNone, err
		}
		m.Amount = amount
		m.amountEcho = input
		m.State = StateConfirm

	case StatePercentChoice:
		switch input {
		case "a":
			m.Percent = 50
		case "b":
			m.Percent = 100
		default:
			return ActionNone, fmt.Errorf("%w: expected 50%%(a) or 100%%(b), got %q", trade.ErrInvalidInput, input)
		}
		m.State = StateConfirm

	case StateConfirm:
		if input == "y" || input == "Y" {
			m.State = StateExecuting
			if m.Buying {
				return ActionExecuteBuy, nil
			}
			return ActionExecuteSell, nil
		}
		// Anything but yes re-enters the prior entry state.
		if m.Buying {
			m.State = StateAmountEntry
		} else {
			m.State = StatePercentChoice
		}

	default:
		return ActionNone, fmt.Errorf("%w: no input expected while %d", trade.ErrInvalidInput, m.State)
	}
	return ActionNone, nil
}

// Finish moves Executing to Idle once the requested action has run.
func (m *Machine) Finish() {
	if m.State == StateExecuting {
		m.State = StateIdle
	}
}
