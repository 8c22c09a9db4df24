package repl

import "errors"

// ErrExit is returned by Execute for a `.exit` statement; callers
// should stop the session loop on receiving it rather than print it as
// a failure.
var ErrExit = errors.New("exit requested")
