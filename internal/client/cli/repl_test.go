package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubExec records which commands the REPL dispatched.
type stubExec struct {
	loggedIn bool
	calls    []string

	loginErr error
	bidErr   error
}

func (s *stubExec) record(name string, args ...string) {
	s.calls = append(s.calls, strings.Join(append([]string{name}, args...), " "))
}

func (s *stubExec) isLoggedIn() bool { return s.loggedIn }

func (s *stubExec) Login(ctx context.Context) error {
	s.record("login")
	return s.loginErr
}

func (s *stubExec) Register(ctx context.Context) error {
	s.record("register")
	return nil
}

func (s *stubExec) Logout(ctx context.Context) error {
	s.record("logout")
	return nil
}

func (s *stubExec) Home(ctx context.Context) error {
	s.record("home")
	return nil
}

func (s *stubExec) List(ctx context.Context, bucket string) error {
	s.record("list", bucket)
	return nil
}

func (s *stubExec) Watch(ctx context.Context, args []string) error {
	s.record("watch", args...)
	return nil
}

func (s *stubExec) Join(ctx context.Context, args []string) error {
	s.record("join", args...)
	return nil
}

func (s *stubExec) Bid(ctx context.Context, args []string) error {
	s.record("bid", args...)
	return s.bidErr
}

func (s *stubExec) Products(ctx context.Context, args []string) error {
	s.record("products", args...)
	return nil
}

func (s *stubExec) Banners(ctx context.Context, args []string) error {
	s.record("banners", args...)
	return nil
}

func (s *stubExec) Packages(ctx context.Context) error {
	s.record("packages")
	return nil
}

func (s *stubExec) TopUp(ctx context.Context) error {
	s.record("topup")
	return nil
}

func (s *stubExec) History(ctx context.Context) error {
	s.record("history")
	return nil
}

func (s *stubExec) Profile(ctx context.Context) error {
	s.record("profile")
	return nil
}

var _ execIface = (*stubExec)(nil)

func runScript(t *testing.T, stub *stubExec, script string) []string {
	t.Helper()

	var printed []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		printed = append(printed, fmt.Sprintln(a...))
		return 0, nil
	}
	defer func() { printlnFn = orig }()

	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), stub, func() string { return "guest" }, scanner)
	return printed
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	stub := &stubExec{}

	runScript(t, stub, "home\nlive\nwatch a1\njoin a1\nbid a1 47\nexit\n")

	assert.Equal(t, []string{"home", "list live", "watch a1", "join a1", "bid a1 47"}, stub.calls)
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	stub := &stubExec{}

	runScript(t, stub, "home\n")

	assert.Equal(t, []string{"home"}, stub.calls)
}

func TestRunREPL_UnknownCommand(t *testing.T) {
	stub := &stubExec{}

	printed := runScript(t, stub, "frobnicate\nexit\n")

	assert.Empty(t, stub.calls)
	assert.Contains(t, strings.Join(printed, ""), "Unknown command: frobnicate")
}

func TestRunREPL_SkipsBlankLines(t *testing.T) {
	stub := &stubExec{}

	runScript(t, stub, "\n   \nhome\nexit\n")

	assert.Equal(t, []string{"home"}, stub.calls)
}

func TestRunREPL_ReportsHandlerErrors(t *testing.T) {
	stub := &stubExec{bidErr: errors.New("bid too low")}

	printed := runScript(t, stub, "bid a1\nhome\nexit\n")

	// Loop survives a failed command.
	assert.Equal(t, []string{"bid a1", "home"}, stub.calls)
	assert.Contains(t, strings.Join(printed, ""), "bid too low")
}

func TestRunREPL_HelpVariesByLoginState(t *testing.T) {
	out := strings.Join(runScript(t, &stubExec{loggedIn: false}, "help\nexit\n"), "")
	assert.Contains(t, out, "login")
	assert.NotContains(t, out, "topup")

	out = strings.Join(runScript(t, &stubExec{loggedIn: true}, "help\nexit\n"), "")
	assert.Contains(t, out, "topup")
	assert.Contains(t, out, "logout")
}

func TestRunREPL_QuitAlias(t *testing.T) {
	stub := &stubExec{}

	printed := runScript(t, stub, "quit\nhome\n")

	assert.Empty(t, stub.calls)
	assert.Contains(t, strings.Join(printed, ""), "Bye!")
}
