package driver

import (
	"github.com/kubev2v/installer-driver/internal/models"
	"github.com/kubev2v/installer-driver/pkg/console"
)

// Prompts and markers printed by install.sh and uninstall.sh.
const (
	PromptHost        = "Enter IP to target vCenter Server:"
	PromptUsername    = "Enter your vCenter Administrator Username:"
	PromptPassword    = "Enter your vCenter Administrator Password:"
	PromptTrust       = "Are you sure you trust the authenticity of this host (yes/no)?"
	PromptFingerprint = "Enter SHA-1 thumbprint of target VC:"

	MarkerError      = "Error"
	MarkerSuccess    = "exited successfully"
	MarkerUnregister = "Could not unregister"
)

// State is a step of the prompt protocol.
type State int

const (
	AwaitHost State = iota
	AwaitUser
	AwaitPassword
	AwaitTrustOrError
	AwaitFingerprint
	AwaitTerminal
	Done
)

func (s State) String() string {
	switch s {
	case AwaitHost:
		return "AwaitHost"
	case AwaitUser:
		return "AwaitUser"
	case AwaitPassword:
		return "AwaitPassword"
	case AwaitTrustOrError:
		return "AwaitTrustOrError"
	case AwaitFingerprint:
		return "AwaitFingerprint"
	case AwaitTerminal:
		return "AwaitTerminal"
	case Done:
		return "Done"
	default:
		return "Unknown"
	}
}

// Script is the immutable description of one driven interaction.
type Script struct {
	Operation     models.Operation
	Target        models.Target
	ExpectFailure bool
	Force         bool
}

// Args returns the command-line arguments of the installer script.
func (s Script) Args() []string {
	if s.Force && s.Operation == models.OperationInstall {
		return []string{"--force"}
	}
	return nil
}

// branch is taken when the alternative at the same index matches.
type branch struct {
	send   bool
	reply  string
	secret bool
	// drain waits for end of output before moving on.
	drain   bool
	next    State
	outcome models.Outcome
}

type transition struct {
	expect   []console.Pattern
	branches []branch
}

// Table is the transition table of a script, keyed by the waiting state.
type Table map[State]transition

func (s Script) table() Table {
	t := Table{
		AwaitHost: {
			expect:   []console.Pattern{console.Literal(PromptHost)},
			branches: []branch{{send: true, reply: s.Target.Host, next: AwaitUser}},
		},
		AwaitUser: {
			expect:   []console.Pattern{console.Literal(PromptUsername)},
			branches: []branch{{send: true, reply: s.Target.Username, next: AwaitPassword}},
		},
		AwaitPassword: {
			expect:   []console.Pattern{console.Literal(PromptPassword)},
			branches: []branch{{send: true, reply: s.Target.Password, secret: true, next: AwaitTrustOrError}},
		},
		AwaitFingerprint: {
			expect:   []console.Pattern{console.Literal(PromptFingerprint)},
			branches: []branch{{send: true, reply: s.Target.Fingerprint, next: AwaitTerminal}},
		},
	}

	trust := branch{send: true, reply: "yes", next: AwaitTerminal}
	if !s.Target.TrustFingerprint {
		trust = branch{send: true, reply: "no", next: AwaitFingerprint}
	}
	t[AwaitTrustOrError] = transition{
		expect: []console.Pattern{console.Literal(PromptTrust), console.Literal(MarkerError)},
		branches: []branch{
			trust,
			{drain: true, next: Done, outcome: models.OutcomeExpectedFailure},
		},
	}

	switch {
	case s.ExpectFailure:
		t[AwaitTerminal] = transition{
			expect:   []console.Pattern{console.Literal(MarkerError)},
			branches: []branch{{drain: true, next: Done, outcome: models.OutcomeExpectedFailure}},
		}
	case s.Operation == models.OperationUninstall:
		t[AwaitTerminal] = transition{
			expect: []console.Pattern{console.Literal(MarkerSuccess), console.Literal(MarkerUnregister), console.EOF},
			branches: []branch{
				{drain: true, next: Done, outcome: models.OutcomeSuccess},
				{drain: true, next: Done, outcome: models.OutcomeUnregisterFailed},
				{next: Done, outcome: models.OutcomeUnexpectedError},
			},
		}
	default:
		t[AwaitTerminal] = transition{
			expect: []console.Pattern{console.Literal(MarkerSuccess), console.EOF},
			branches: []branch{
				{drain: true, next: Done, outcome: models.OutcomeSuccess},
				{next: Done, outcome: models.OutcomeUnexpectedError},
			},
		}
	}

	return t
}
