package deadlock

import (
	"go.uber.org/fx"
)

// Module provides the deadlock detector and hooks it into the app lifecycle.
// Components contribute roots through the "deadlockDetectorRoots" value group.
var Module = fx.Options(
	fx.Provide(NewDeadlockDetector),
	fx.Invoke(func(lc fx.Lifecycle, dd *deadlockDetector) {
		lc.Append(fx.StartStopHook(dd.Start, dd.Stop))
	}),
)
