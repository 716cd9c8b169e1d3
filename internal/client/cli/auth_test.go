package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/irabeny89/ebbs2022-sub000/internal/client/client"
)

func stubInputs(t *testing.T, lines []string, password []byte) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword

	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		line := lines[i]
		i++
		return line, nil
	}
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		return append([]byte(nil), password...), nil
	}
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

func stubOutput(t *testing.T) (*[]string, func()) {
	t.Helper()
	orig := printlnFn
	var lines []string
	printlnFn = func(a ...any) (int, error) {
		for _, v := range a {
			if s, ok := v.(string); ok {
				lines = append(lines, s)
			}
		}
		return 0, nil
	}
	return &lines, func() { printlnFn = orig }
}

type fakeClient struct {
	loginEmail    string
	loginPassword string
	loginErr      error

	passcodeEmail string
	passcodeMsg   string
	passcodeErr   error

	registered struct{ username, password, passcode string }
	changeErr  error

	loggedOut bool
	active    bool
}

func (f *fakeClient) Login(_ context.Context, email, password string) error {
	f.loginEmail, f.loginPassword = email, password
	if f.loginErr == nil {
		f.active = true
	}
	return f.loginErr
}

func (f *fakeClient) RequestPasscode(_ context.Context, email string) (string, error) {
	f.passcodeEmail = email
	return f.passcodeMsg, f.passcodeErr
}

func (f *fakeClient) Register(_ context.Context, username, password, passcode string) error {
	f.registered.username, f.registered.password, f.registered.passcode = username, password, passcode
	f.active = true
	return nil
}

func (f *fakeClient) ChangePassword(_ context.Context, _, _ string) error {
	return f.changeErr
}

func (f *fakeClient) Me(context.Context) (*client.Profile, error) {
	return &client.Profile{Username: "tester", Audience: "USER"}, nil
}

func (f *fakeClient) Logout(context.Context) error {
	f.loggedOut = true
	f.active = false
	return nil
}

func (f *fakeClient) Active() bool { return f.active }

func TestLogin_Success(t *testing.T) {
	f := &fakeClient{}
	a := &App{client: f}

	restore := stubInputs(t, []string{"alice@example.org"}, []byte("secret password"))
	defer restore()
	out, restoreOut := stubOutput(t)
	defer restoreOut()

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if f.loginEmail != "alice@example.org" || f.loginPassword != "secret password" {
		t.Fatalf("unexpected credentials passed: %q %q", f.loginEmail, f.loginPassword)
	}
	if len(*out) == 0 || (*out)[len(*out)-1] != "Success!" {
		t.Fatalf("expected success message, got %v", *out)
	}
}

func TestLogin_ReportsFailure(t *testing.T) {
	f := &fakeClient{loginErr: errors.New("authentication required: Authentication failed!")}
	a := &App{client: f}

	restore := stubInputs(t, []string{"alice@example.org"}, []byte("wrong"))
	defer restore()
	out, restoreOut := stubOutput(t)
	defer restoreOut()

	if err := a.Login(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	if len(*out) == 0 {
		t.Fatal("expected the failure to be printed")
	}
}

func TestRegister_PassesAllInputs(t *testing.T) {
	f := &fakeClient{}
	a := &App{client: f}

	restore := stubInputs(t, []string{"newcomer", "a1b2c3d4e5f60718"}, []byte("long enough"))
	defer restore()
	_, restoreOut := stubOutput(t)
	defer restoreOut()

	if err := a.Register(context.Background()); err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if f.registered.username != "newcomer" {
		t.Fatalf("username not passed: %q", f.registered.username)
	}
	if f.registered.passcode != "a1b2c3d4e5f60718" {
		t.Fatalf("passcode not passed: %q", f.registered.passcode)
	}
	if a.username != "newcomer" {
		t.Fatalf("prompt username not updated: %q", a.username)
	}
}

func TestRequestPasscode_PrintsConfirmation(t *testing.T) {
	f := &fakeClient{passcodeMsg: "Passcode sent! Check your inbox and spam folder."}
	a := &App{client: f}

	restore := stubInputs(t, []string{"alice@example.org"}, nil)
	defer restore()
	out, restoreOut := stubOutput(t)
	defer restoreOut()

	if err := a.RequestPasscode(context.Background()); err != nil {
		t.Fatalf("RequestPasscode err: %v", err)
	}
	if f.passcodeEmail != "alice@example.org" {
		t.Fatalf("email not passed: %q", f.passcodeEmail)
	}
	if (*out)[len(*out)-1] != f.passcodeMsg {
		t.Fatalf("confirmation not printed: %v", *out)
	}
}

func TestLogout_ClearsPrompt(t *testing.T) {
	f := &fakeClient{active: true}
	a := &App{client: f, username: "tester"}

	_, restoreOut := stubOutput(t)
	defer restoreOut()

	if err := a.Logout(context.Background()); err != nil {
		t.Fatalf("Logout err: %v", err)
	}
	if !f.loggedOut {
		t.Fatal("client logout not called")
	}
	if a.username != "" || a.isLoggedIn() {
		t.Fatal("session state not cleared")
	}
}
