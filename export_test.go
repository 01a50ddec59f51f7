package smalliter

// StubReleaseHook lets tests observe the release of backing allocations.
func StubReleaseHook(fn func(allocLen int)) (restore func()) {
	previous := releaseHook
	releaseHook = fn
	return func() { releaseHook = previous }
}
