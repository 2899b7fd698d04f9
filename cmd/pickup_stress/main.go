// Headless stress run: one player grabbing, spinning and dropping a crate
// while a growing field of loose bodies is simulated around it.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"pickup3d/internal/components"
	"pickup3d/internal/engine"
	"pickup3d/internal/input"
	"pickup3d/internal/logging"
	"pickup3d/internal/scripts"
	"pickup3d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

const dt = 1.0 / 60

func main() {
	frames := flag.Int("frames", 600, "frames simulated per run")
	level := flag.String("log", "warn", "log level")
	flag.Parse()

	lvl, err := logging.ParseLevel(*level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log, _, err := logging.New(lvl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	for _, count := range []int{100, 500, 1000, 2000} {
		run(log, count, *frames)
	}
}

func run(log *zap.Logger, count, frames int) {
	latch := &input.Latch{}
	w := world.New(latch, log.Named("world"))
	rng := rand.New(rand.NewSource(42))

	floor := engine.NewGameObject("Floor")
	floor.Transform.Position = rl.Vector3{Y: -0.5}
	floor.AddComponent(components.NewBoxCollider(rl.Vector3{X: 200, Y: 1, Z: 200}))
	w.SpawnObject(floor)

	player := engine.NewGameObject("Player")
	player.AddComponent(components.NewFPSController(latch))
	player.AddComponent(components.NewCamera())
	m := scripts.NewManipulator()
	m.Input = latch
	m.Log = log.Named("manipulator")
	player.AddComponent(m)
	w.SpawnObject(player)

	target := crate("Target", rl.Vector3{Y: 1.6, Z: -2})
	target.Tags = []string{scripts.InteractableTag}
	// Floats where it is dropped so every cycle can grab it again.
	engine.GetComponent[*components.Rigidbody](target).UseGravity = false
	w.SpawnObject(target)

	spread := float32(20) + float32(count)/50
	for i := range count {
		pos := rl.Vector3{
			X: rng.Float32()*spread - spread/2,
			Y: 0.5 + rng.Float32()*4,
			Z: -6 - rng.Float32()*spread,
		}
		w.SpawnObject(crate(fmt.Sprintf("Crate%d", i), pos))
	}

	grabs := 0
	m.OnPickUp.AddListener(func(*engine.GameObject) { grabs++ })

	start := time.Now()
	for f := range frames {
		var in input.State
		switch f % 120 {
		case 0, 90:
			in = in.WithPressed(input.ActionPrimary)
		default:
			in = in.WithHeld(input.ActionRotateYPositive).WithAxis(input.AxisScrollWheel, 0.01)
		}
		latch.Store(in)
		w.Update(dt)
	}
	elapsed := time.Since(start)

	fmt.Printf("%5d bodies: %8v/frame | %3d grabs | %s\n",
		count, (elapsed / time.Duration(frames)).Round(time.Microsecond), grabs, m.State())
}

func crate(name string, pos rl.Vector3) *engine.GameObject {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	g.AddComponent(components.NewBoxCollider(rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}))
	g.AddComponent(components.NewRigidbody())
	return g
}
