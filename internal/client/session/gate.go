// Package session tracks the admin session lifecycle on the client side.
// The gate is an explicit state machine: every transition is named, and
// transitions that do not apply to the current state are rejected.
package session

import (
	"fmt"
	"sync"
)

type State int

const (
	// StateCheckingAuth is the initial state, before the server has been
	// asked whether a credential exists.
	StateCheckingAuth State = iota
	// StateSettingUp means no credential exists yet: the first password
	// supplied becomes the credential.
	StateSettingUp
	// StateAwaitingLogin means a credential exists and a password is needed.
	StateAwaitingLogin
	// StateAuthenticated means a session token is held.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateCheckingAuth:
		return "checking-auth"
	case StateSettingUp:
		return "setting-up"
	case StateAwaitingLogin:
		return "awaiting-login"
	case StateAuthenticated:
		return "authenticated"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Gate holds the current session state and token. The session lives only in
// memory: a process restart always starts over at StateCheckingAuth.
type Gate struct {
	mu    sync.Mutex
	state State
	token string
}

func NewGate() *Gate {
	return &Gate{state: StateCheckingAuth}
}

func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Token returns the held session token, or "" outside StateAuthenticated.
func (g *Gate) Token() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateAuthenticated {
		return ""
	}
	return g.token
}

func (g *Gate) transitionErr(op string) error {
	return fmt.Errorf("%s not allowed in state %s", op, g.state)
}

// Begin records the result of the initial credential check and moves the
// gate out of StateCheckingAuth.
func (g *Gate) Begin(hasPassword bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateCheckingAuth {
		return g.transitionErr("begin")
	}

	if hasPassword {
		g.state = StateAwaitingLogin
	} else {
		g.state = StateSettingUp
	}
	return nil
}

// SetupSucceeded records a successful first-time credential setup. Setup
// implies an immediate session.
func (g *Gate) SetupSucceeded(token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateSettingUp {
		return g.transitionErr("setup")
	}

	g.state = StateAuthenticated
	g.token = token
	return nil
}

// LoginSucceeded records a successful login.
func (g *Gate) LoginSucceeded(token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateAwaitingLogin {
		return g.transitionErr("login")
	}

	g.state = StateAuthenticated
	g.token = token
	return nil
}

// LoginFailed keeps the gate at StateAwaitingLogin. It exists so callers do
// not have to special-case a rejected password; nothing is retained from the
// failed attempt.
func (g *Gate) LoginFailed() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateAwaitingLogin {
		return g.transitionErr("login")
	}
	return nil
}

// Logout drops the token and returns the gate to StateAwaitingLogin.
func (g *Gate) Logout() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateAuthenticated {
		return g.transitionErr("logout")
	}

	g.state = StateAwaitingLogin
	g.token = ""
	return nil
}
