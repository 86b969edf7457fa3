package models

const IssueStateClosed = "closed"

type Issue struct {
	Number int
	Title  string
	Body   string
	State  string
	URL    string
}

// CloseResult is the outcome of closing one issue during a bulk close.
type CloseResult struct {
	IssueNumber int
	Issue       *Issue
	Err         error
}

// Closed reports whether the backend confirmed the issue as closed.
func (r CloseResult) Closed() bool {
	return r.Err == nil && r.Issue != nil && r.Issue.State == IssueStateClosed
}

type RepoInfo struct {
	Name        string
	FullName    string
	Description string
	Stars       int
	Language    string
	URL         string
}

// CommitResult describes the commit created by a README update.
type CommitResult struct {
	SHA     string
	Message string
	Path    string
}
