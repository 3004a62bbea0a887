// Package ui is the terminal front end of the chronos client.
//
// The Model owns nothing but presentation state. Every intent is executed
// as a tea.Cmd so the session can call back into the Bridge, which turns
// render and confirmation requests into messages for the running program.
package ui
