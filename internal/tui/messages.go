package tui

import "github.com/fabrizia2/blogfocus/internal/blog"

// displayMsg carries the slice the session wants rendered.
type displayMsg struct {
	slice []blog.Record
}

// loadingMsg toggles the loading indicator.
type loadingMsg struct {
	active bool
}

// loadErrMsg carries the single user-visible load failure message.
type loadErrMsg struct {
	message string
}

// searchCommitMsg is emitted by the debouncer after the quiet window.
type searchCommitMsg struct {
	term string
}

// refreshDoneMsg signals that a Refresh call returned.
type refreshDoneMsg struct{}
