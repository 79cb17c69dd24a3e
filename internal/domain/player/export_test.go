package player

import "time"

// SetHideDelay bypasses the MinHideDelay floor so tests can use short delays.
func (c *Coordinator) SetHideDelay(d time.Duration) { c.hide.SetDelay(d) }

func (c *Coordinator) HidePending() bool { return c.hide.Pending() }
