package stress

import (
	"go.uber.org/fx"

	"github.com/motioncore/fibersync/deadlock"
)

// Module provides the stress host, registers it with the deadlock detector
// and hooks it into the app lifecycle.
var Module = fx.Options(
	fx.Provide(NewHost),
	fx.Provide(fx.Annotate(
		func(h *Host) deadlock.Pingable { return h },
		fx.ResultTags(`group:"deadlockDetectorRoots"`),
	)),
	fx.Invoke(func(lc fx.Lifecycle, h *Host) {
		lc.Append(fx.StartStopHook(h.Start, h.Stop))
	}),
)
