package quiz

import "errors"

// ErrNoOpenQuestion is returned by GiveUp and CheckAnswer when the session
// has no question pending. A usage error, not a failure: front ends are
// expected to recover with a friendly prompt.
var ErrNoOpenQuestion = errors.New("no open question for session")
