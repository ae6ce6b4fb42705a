// Package dialog is a scripted conversation built on a word-level fsm.Machine.
// Each symbol of the script moves the conversation one step forward; the
// actions ask questions through a Prompter and collect the answers.
package dialog

import (
	"fmt"

	"github.com/aretw0/tablefsm/pkg/fsm"
)

// State is a step of the conversation.
type State string

const (
	StateStart       State = "START"
	StateGreeting    State = "GREETING"
	StateDestination State = "DESTINATION"
	StateFarewell    State = "FAREWELL"
	StateEnd         State = "END"
)

// Wake is the symbol that opens a conversation from START.
const Wake = "#"

// DefaultSalutation is used until something better is known about the caller.
const DefaultSalutation = "Mr./Mrs."

// DefaultScript drives a full conversation.
var DefaultScript = []string{Wake, "Hello", "Destination", "Farewell"}

// Prompter is the conversation's window to the user.
type Prompter interface {
	Ask(question string) (string, error)
	Say(message string) error
}

// Conversation is the dialog's context.
type Conversation struct {
	FirstName   string   `json:"first_name,omitempty"`
	LastName    string   `json:"last_name,omitempty"`
	Salutation  string   `json:"salutation"`
	Destination string   `json:"destination,omitempty"`
	Errors      []string `json:"errors,omitempty"`

	prompter Prompter
}

// NewConversation creates an empty conversation talking through p.
func NewConversation(p Prompter) *Conversation {
	return &Conversation{Salutation: DefaultSalutation, prompter: p}
}

// Machine is the dialog's machine type.
type Machine = fsm.Machine[State, string, *Conversation]

// Vocabulary lists the symbols that advance each step.
type Vocabulary struct {
	Greetings    []string
	Destinations []string
	Farewells    []string
}

// DefaultVocabulary matches DefaultScript.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Greetings:    []string{"Hello"},
		Destinations: []string{"Destination"},
		Farewells:    []string{"Farewell"},
	}
}

// New creates a dialog machine in START.
func New(p Prompter, vocab Vocabulary, opts ...fsm.Option) *Machine {
	m := fsm.New[State, string](StateStart, NewConversation(p), opts...)
	m.SetDefaultTransition(onError, StateStart)
	m.AddTransitionAny(StateStart, nil, StateStart)
	m.AddTransition(Wake, StateStart, nil, StateGreeting)
	m.AddTransitionList(vocab.Greetings, StateGreeting, greet, StateDestination)
	m.AddTransitionList(vocab.Destinations, StateDestination, queryDestination, StateFarewell)
	m.AddTransitionList(vocab.Farewells, StateFarewell, farewell, StateEnd)
	return m
}

// Run plays script on a fresh dialog and returns the collected conversation.
func Run(p Prompter, script []string, opts ...fsm.Option) (*Conversation, error) {
	m := New(p, DefaultVocabulary(), opts...)
	err := m.ProcessSequence(script)
	return m.Context(), err
}

func greet(m *Machine) error {
	c := m.Context()
	if err := c.prompter.Say("Hello."); err != nil {
		return err
	}
	first, err := c.prompter.Ask("What is your first name?")
	if err != nil {
		return err
	}
	last, err := c.prompter.Ask("What is your second name?")
	if err != nil {
		return err
	}
	c.FirstName, c.LastName = first, last
	return nil
}

func queryDestination(m *Machine) error {
	c := m.Context()
	dest, err := c.prompter.Ask("What is your destination?")
	if err != nil {
		return err
	}
	c.Destination = dest
	return nil
}

func farewell(m *Machine) error {
	c := m.Context()
	return c.prompter.Say(fmt.Sprintf("See you again, %s %s!", c.Salutation, c.LastName))
}

func onError(m *Machine) error {
	c := m.Context()
	sym, _ := m.LastSymbol()
	c.Errors = append(c.Errors, fmt.Sprintf("unexpected %q in %s", sym, m.CurrentState()))
	return c.prompter.Say("Error!\n" + sym)
}
