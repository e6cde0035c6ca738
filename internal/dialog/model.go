// Package dialog implements the interaction gate: the single pending confirm or
// prompt request that destructive and money-affecting operations wait behind.
package dialog

import "context"

type Mode string

const (
	ModeNone    Mode = ""
	ModeConfirm Mode = "confirm"
	ModePrompt  Mode = "prompt"
)

// ConfirmFunc runs when a confirm request is accepted.
type ConfirmFunc func(ctx context.Context) error

// PromptFunc runs with the operator's answer when a prompt request is accepted.
type PromptFunc func(ctx context.Context, value string) error

// Request is the read-only view of the pending request.
type Request struct {
	// Seq identifies the request; every new request gets the next number.
	Seq     uint64 `json:"seq"`
	Mode    Mode   `json:"mode"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Danger  bool   `json:"danger,omitempty"`
	Initial string `json:"initial,omitempty"`
}

// pending is the sum type held by the gate: exactly one of confirm or prompt is set.
type pending struct {
	Request
	confirm ConfirmFunc
	prompt  PromptFunc
}
