package ui

import (
	"chronos/internal/auth"
	"chronos/internal/keeper"
)

type viewMsg keeper.View

type layoutMsg []keeper.View

type completedMsg string

type clearAlertMsg string

type statusMsg string

type errMsg struct{ err error }

// confirmRequestMsg opens the modal. The answer goes back on reply.
type confirmRequestMsg struct {
	prompt string
	reply  chan bool
}

// UserChangedMsg tells the model who is signed in; nil means nobody.
type UserChangedMsg struct {
	User *auth.User
}
