package tui

import "time"

// flashMsg fires when the result panel may drop its highlight.
type flashMsg time.Time
