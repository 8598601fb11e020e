package demo

import (
	"fmt"
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/grayrock-games/ecscore/internal/core/ecs"
)

const ticksPerSecond = 60

// Game drives a World and its registered Systems one scheduler run per
// ebiten frame. It exists to give the runtime a real, runnable consumer
// rather than leaving the scheduler exercised only from tests.
type Game struct {
	world   *ecs.World
	systems *ecs.Systems
	spawns  chan spawnRequest
	tick    int
}

// NewGame returns a Game with its component types registered and an initial
// batch of spawn requests queued; spawnSystem turns them into wandering
// entities on the first Update. The spawn channel holds 64 requests and
// spawnRandom drops any request that does not fit.
func NewGame() *Game {
	world := ecs.NewWorld()
	ecs.RegisterComponent[Position](world.Store(), ecs.Dense)
	ecs.RegisterComponent[Velocity](world.Store(), ecs.Dense)
	ecs.RegisterComponent[Wander](world.Store(), ecs.Singleton)

	spawns := make(chan spawnRequest, 64)
	systems := ecs.NewSystems(world, 4)
	systems.Add(&spawnSystem{requests: spawns})
	systems.Add(&movementSystem{dt: 1.0 / ticksPerSecond})

	g := &Game{world: world, systems: systems, spawns: spawns}
	for i := 0; i < 200; i++ {
		g.spawnRandom()
	}
	return g
}

func (g *Game) spawnRandom() {
	req := spawnRequest{
		pos: Position{X: rand.Float64() * screenWidth, Y: rand.Float64() * screenHeight},
		vel: Velocity{DX: (rand.Float64()*2 - 1) * 120, DY: (rand.Float64()*2 - 1) * 120},
	}
	select {
	case g.spawns <- req:
	default:
	}
}

// Update runs every registered system exactly once for this frame.
func (g *Game) Update() error {
	g.tick++
	if g.tick%ticksPerSecond == 0 {
		g.spawnRandom()
	}
	g.systems.Run()
	return nil
}

// Draw renders every entity with a Position as a single pixel and prints a
// status line with the live entity count.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 16, G: 16, B: 24, A: 255})

	pos := ecs.NewRead[Position](g.world.Store())
	count := 0
	g.world.IterMask(pos.Mask(), func(e ecs.Entity) bool {
		p, ok := pos.Get(e)
		if !ok {
			return true
		}
		count++
		screen.Set(int(p.X), int(p.Y), color.RGBA{R: 220, G: 220, B: 255, A: 255})
		return true
	})

	ebitenutil.DebugPrint(screen, fmt.Sprintf("tick %d entities %d", g.tick, count))
}

// Layout reports a fixed logical resolution.
func (g *Game) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}

// Run opens the window and blocks until it is closed.
func (g *Game) Run() error {
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("ecscore demo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ticksPerSecond)
	return ebiten.RunGame(g)
}
