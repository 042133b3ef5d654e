// Command engine is a minimal host for the engine runtime core: it wires a
// Runtime, connects one placeholder tick handler, and runs the frame loop
// until interrupted. It exists only so the module has something runnable to
// demonstrate C1-C6 wired together; a real host application owns its own
// entry point and calls into runtime.New the same way.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forgecore/engine/internal/runtime"
	"github.com/forgecore/engine/internal/tick"
	"github.com/forgecore/engine/internal/world"
)

func main() {
	os.Exit(run())
}

func run() int {
	frameRate := flag.Int("fps", 60, "target ticks per second")
	flag.Parse()

	rt := runtime.New()
	defer rt.Close()

	rt.RegisterTypes()

	if err := rt.Connect(tick.NewFunc(tick.OrderDefault, logEveryTick(rt))); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to connect tick handler: %v\n", err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	period := time.Second / time.Duration(*frameRate)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return 0
		case <-ticker.C:
			rt.Step(ctx)
		}
	}
}

func logEveryTick(rt *runtime.Runtime) func(context.Context, *world.World, time.Duration) {
	return func(_ context.Context, _ *world.World, dt time.Duration) {
		rt.Log.Debug("tick dt=%s entities=%d", dt, rt.Scene.EntityCount())
	}
}
