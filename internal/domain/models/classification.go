package models

import "time"

type ClassificationKind int

const (
	ClassificationPlainText ClassificationKind = iota
	ClassificationStructured
)

// Classification is the classifier's verdict: either a structured action
// request or free text to relay to the user.
type Classification struct {
	Kind    ClassificationKind
	Request ActionRequest
	Text    string
}

func Structured(req ActionRequest) Classification {
	if req.Data == nil {
		req.Data = map[string]any{}
	}
	return Classification{Kind: ClassificationStructured, Request: req}
}

func PlainText(text string) Classification {
	return Classification{Kind: ClassificationPlainText, Text: text}
}

func (c Classification) IsStructured() bool {
	return c.Kind == ClassificationStructured
}

// Credentials are the per-request secrets. Empty fields fall back to the
// configured defaults.
type Credentials struct {
	GitHubToken string
	AIKey       string
}

// Merge returns c with empty fields taken from defaults.
func (c Credentials) Merge(defaults Credentials) Credentials {
	if c.GitHubToken == "" {
		c.GitHubToken = defaults.GitHubToken
	}
	if c.AIKey == "" {
		c.AIKey = defaults.AIKey
	}
	return c
}

type DispatchRequest struct {
	Input       string
	Repo        string
	Credentials Credentials
}

type Outcome string

const (
	OutcomeSuccess        Outcome = "success"
	OutcomeFailure        Outcome = "failure"
	OutcomeRejected       Outcome = "rejected"
	OutcomeNotFound       Outcome = "not_found"
	OutcomeConversational Outcome = "conversational"
	OutcomeHelp           Outcome = "help"
)

type DispatchResult struct {
	Response string
	Action   ActionKind
	Outcome  Outcome
}

// AuditEntry records one dispatched request. It never carries credentials
// or the user's text.
type AuditEntry struct {
	ID        string
	Timestamp time.Time
	Repo      string
	Action    ActionKind
	Outcome   Outcome
	Detail    string
}
