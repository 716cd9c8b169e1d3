package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/irabeny89/ebbs2022-sub000/internal/client/client"
	"github.com/irabeny89/ebbs2022-sub000/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and starts a session. The password bytes
// are wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.client.Login(ctx, email, string(password)); err != nil {
		printlnFn(errorText(err))
		return err
	}

	a.username = ""
	printlnFn("Success!")
	return nil
}

// RequestPasscode asks the server to email a one-time code. The code itself
// never passes through this client; only the confirmation message does.
func (a *App) RequestPasscode(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	msg, err := a.client.RequestPasscode(ctx, email)
	if err != nil {
		printlnFn(errorText(err))
		return err
	}

	printlnFn(msg)
	return nil
}

// Register completes signup with the emailed passcode and logs in.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	passcode, err := getSimpleText(a.reader, "Enter the passcode from your email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Choose a password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.client.Register(ctx, username, string(password), passcode); err != nil {
		printlnFn(errorText(err))
		return err
	}

	a.username = username
	printlnFn("Success!")
	return nil
}

// ChangePassword completes passcode recovery and starts a fresh session.
func (a *App) ChangePassword(ctx context.Context) error {
	passcode, err := getSimpleText(a.reader, "Enter the passcode from your email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Choose a new password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.client.ChangePassword(ctx, passcode, string(password)); err != nil {
		printlnFn(errorText(err))
		return err
	}

	printlnFn("Password changed.")
	return nil
}

// WhoAmI shows the server's view of the current session.
func (a *App) WhoAmI(ctx context.Context) error {
	profile, err := a.client.Me(ctx)
	if err != nil {
		printlnFn(errorText(err))
		return err
	}

	a.username = profile.Username
	printlnFn(fmt.Sprintf("%s (%s)", profile.Username, profile.Audience))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		printlnFn(errorText(err))
		return err
	}

	a.username = ""
	printlnFn("Logged out.")
	return nil
}

// errorText turns client sentinel errors into short user-facing lines.
func errorText(err error) string {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable, try again later."
	default:
		return err.Error()
	}
}
