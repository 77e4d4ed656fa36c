package cli

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/signage/internal/client/session"
	"github.com/dmitrijs2005/signage/internal/common"
)

// begin asks the server whether a credential exists and moves the gate out
// of its initial state. On a connection failure the gate stays at
// checking-auth so a later command can retry via Status.
func (a *App) begin(ctx context.Context) {
	if a.gate.State() != session.StateCheckingAuth {
		return
	}

	has, err := a.api.HasPassword(ctx)
	if err != nil {
		printlnFn("Server unavailable:", err)
		return
	}

	if err := a.gate.Begin(has); err != nil {
		printlnFn(err)
		return
	}

	if has {
		printlnFn("Password is set. Use 'login' to start a session.")
	} else {
		printlnFn("No password configured yet. Use 'setup' to create one.")
	}
}

// Status re-checks the server and reports the gate state.
func (a *App) Status(ctx context.Context) error {
	a.begin(ctx)
	printlnFn("State:", a.gate.State().String())
	return nil
}

// Setup creates the admin password on a fresh deployment.
func (a *App) Setup(ctx context.Context) error {
	if a.gate.State() != session.StateSettingUp {
		printlnFn("Setup is only available before a password exists.")
		return nil
	}

	pw, err := GetPassword("Choose a password: ", os.Stdout)
	if err != nil {
		return err
	}

	token, err := a.api.SetupPassword(ctx, pw)
	if err != nil {
		if errors.Is(err, common.ErrWeakPassword) {
			printlnFn("Password must be at least 4 characters.")
			return nil
		}
		printlnFn("Setup failed:", err)
		return err
	}

	if err := a.gate.SetupSucceeded(token); err != nil {
		return err
	}
	printlnFn("Password set. You are logged in.")
	return nil
}

// Login starts a session.
func (a *App) Login(ctx context.Context) error {
	if a.gate.State() != session.StateAwaitingLogin {
		printlnFn("Login is not available right now.")
		return nil
	}

	pw, err := GetPassword("Enter password: ", os.Stdout)
	if err != nil {
		return err
	}

	token, err := a.api.Login(ctx, pw)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			_ = a.gate.LoginFailed()
			printlnFn("Invalid password.")
			return nil
		}
		printlnFn("Login failed:", err)
		return err
	}

	if err := a.gate.LoginSucceeded(token); err != nil {
		return err
	}
	printlnFn("Logged in.")
	return nil
}

// Logout ends the session. The token is only dropped client-side; the
// server keeps no session state beyond the token's own expiry.
func (a *App) Logout(ctx context.Context) error {
	if err := a.gate.Logout(); err != nil {
		printlnFn(err)
		return nil
	}
	printlnFn("Logged out.")
	return nil
}

// Upload reads an image file from disk and publishes it as a screen's menu.
func (a *App) Upload(ctx context.Context) error {
	screenID, err := GetSimpleText(a.reader, "Screen ID:", os.Stdout)
	if err != nil {
		return err
	}
	path, err := GetSimpleText(a.reader, "Path to image file:", os.Stdout)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		printlnFn("Cannot read file:", err)
		return nil
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	url, err := a.api.Upload(ctx, a.gate.Token(), screenID, filepath.Base(path), mimeType, data)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidType):
			printlnFn("File must be an image.")
		case errors.Is(err, common.ErrTooLarge):
			printlnFn("File size must be less than 5MB.")
		case errors.Is(err, common.ErrNoScreenID):
			printlnFn("Screen ID is required.")
		case errors.Is(err, common.ErrUnauthorized):
			printlnFn("Session expired, log in again.")
		default:
			printlnFn("Upload failed:", err)
		}
		return nil
	}

	printlnFn("Uploaded:", url)
	return nil
}

// Resolve shows the current menu reference for a screen.
func (a *App) Resolve(ctx context.Context) error {
	screenID, err := GetSimpleText(a.reader, "Screen ID:", os.Stdout)
	if err != nil {
		return err
	}

	url, err := a.api.ResolveMenu(ctx, screenID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			printlnFn(fmt.Sprintf("No menu uploaded for screen %s.", screenID))
			return nil
		}
		printlnFn("Resolve failed:", err)
		return nil
	}

	printlnFn("Current menu:", url)
	return nil
}

// Screens lists the configured screen roster.
func (a *App) Screens(ctx context.Context) error {
	list, err := a.api.Screens(ctx, 8)
	if err != nil {
		printlnFn("Cannot list screens:", err)
		return nil
	}

	for _, s := range list {
		state := "active"
		if !s.Active {
			state = "inactive"
		}
		printlnFn(fmt.Sprintf("%s  %s (%s)", s.ID, s.Name, state))
	}
	return nil
}

// Rotate replaces the admin password, keeping the current session.
func (a *App) Rotate(ctx context.Context) error {
	oldPw, err := GetPassword("Current password: ", os.Stdout)
	if err != nil {
		return err
	}
	newPw, err := GetPassword("New password: ", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.Rotate(ctx, a.gate.Token(), oldPw, newPw); err != nil {
		switch {
		case errors.Is(err, common.ErrUnauthorized):
			printlnFn("Current password is incorrect.")
		case errors.Is(err, common.ErrWeakPassword):
			printlnFn("Password must be at least 4 characters.")
		default:
			printlnFn("Rotation failed:", err)
		}
		return nil
	}

	printlnFn("Password rotated.")
	return nil
}
