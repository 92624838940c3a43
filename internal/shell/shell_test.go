package shell

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestRun_PlainSession(t *testing.T) {
	var out bytes.Buffer
	saved := 0

	err := Run(Options{
		Dispatcher: newTestDispatcher(),
		Save:       func() error { saved++; return nil },
		Input:      strings.NewReader("add Alice 1234567890\nphone Alice\nexit\n"),
		Output:     &out,
		ForcePlain: true,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Welcome to the assistant bot!",
		"Enter a command: ",
		"Contact added.",
		"Alice: 1234567890",
		"Good bye!",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if saved != 1 {
		t.Errorf("save called %d times, want 1", saved)
	}
}

func TestRun_Plain_ErrorRepliesKeepLooping(t *testing.T) {
	var out bytes.Buffer

	err := Run(Options{
		Dispatcher: newTestDispatcher(),
		Save:       func() error { return nil },
		Input:      strings.NewReader("change Bob 1111111111 2222222222\nbogus\nadd Alice 1234567890\nclose\n"),
		Output:     &out,
		ForcePlain: true,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Error: Contact not found.") {
		t.Errorf("output missing error reply:\n%s", got)
	}
	if !strings.Contains(got, "Invalid command.") {
		t.Errorf("output missing invalid command reply:\n%s", got)
	}
	if !strings.Contains(got, "Contact added.") {
		t.Errorf("loop should continue after errors:\n%s", got)
	}
}

func TestRun_Plain_EOFBehavesLikeExit(t *testing.T) {
	var out bytes.Buffer
	saved := false

	err := Run(Options{
		Dispatcher: newTestDispatcher(),
		Save:       func() error { saved = true; return nil },
		Input:      strings.NewReader("add Alice 1234567890\n"),
		Output:     &out,
		ForcePlain: true,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !saved {
		t.Error("EOF should save the book")
	}
	if !strings.Contains(out.String(), "Good bye!") {
		t.Error("EOF should print the farewell")
	}
}

func TestRun_Plain_SaveErrorPropagates(t *testing.T) {
	var out bytes.Buffer
	saveErr := errors.New("disk full")

	err := Run(Options{
		Dispatcher: newTestDispatcher(),
		Save:       func() error { return saveErr },
		Input:      strings.NewReader("exit\n"),
		Output:     &out,
		ForcePlain: true,
	})
	if !errors.Is(err, saveErr) {
		t.Errorf("Run() error = %v, want %v", err, saveErr)
	}
	// The farewell still prints so the user is not left hanging.
	if !strings.Contains(out.String(), "Good bye!") {
		t.Error("farewell should print even when saving fails")
	}
}

func TestRun_NonTTYWriterFallsBackToPlain(t *testing.T) {
	// A bytes.Buffer is not a terminal, so even without ForcePlain the
	// session must use the plain loop.
	var out bytes.Buffer

	err := Run(Options{
		Dispatcher: newTestDispatcher(),
		Save:       func() error { return nil },
		Input:      strings.NewReader("exit\n"),
		Output:     &out,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Enter a command: ") {
		t.Errorf("non-TTY output should use the plain prompt:\n%s", out.String())
	}
}
