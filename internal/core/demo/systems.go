package demo

import "github.com/grayrock-games/ecscore/internal/core/ecs"

const (
	screenWidth  = 1280
	screenHeight = 720
)

// movementSystem advances every entity's Position by its Velocity, clamping
// entities marked Wander to the window edges. Velocity is left unchanged.
type movementSystem struct {
	dt float64
}

func (s *movementSystem) Access() []ecs.CType {
	return []ecs.CType{
		ecs.WriteAccess[Position](),
		ecs.ReadAccess[Velocity](),
		ecs.ReadAccess[Wander](),
	}
}

func (s *movementSystem) Run(ctx *ecs.RunContext) {
	pos := ecs.NewWrite[Position](ctx.Store())
	vel := ecs.NewRead[Velocity](ctx.Store())
	wander := ecs.NewRead[Wander](ctx.Store())

	group := ecs.NewParGroup2[Position, Velocity](ctx.Entities(), pos, vel)
	group.ForEach(4, func(e ecs.Entity, p *Position, v *Velocity) {
		p.X += v.DX * s.dt
		p.Y += v.DY * s.dt

		if _, ok := wander.Get(e); !ok {
			return
		}
		if p.X < 0 || p.X > screenWidth {
			p.X = clamp(p.X, 0, screenWidth)
		}
		if p.Y < 0 || p.Y > screenHeight {
			p.Y = clamp(p.Y, 0, screenHeight)
		}
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// spawnSystem drains a channel of pending spawn requests once per tick,
// keeping all entity creation disciplined by the same access-set model as
// every other system rather than happening outside Systems.Run.
type spawnSystem struct {
	requests <-chan spawnRequest
}

type spawnRequest struct {
	pos Position
	vel Velocity
}

func (s *spawnSystem) Access() []ecs.CType {
	return []ecs.CType{
		ecs.WriteAccess[Position](),
		ecs.WriteAccess[Velocity](),
		ecs.WriteAccess[Wander](),
	}
}

func (s *spawnSystem) Run(ctx *ecs.RunContext) {
	pos := ecs.NewWrite[Position](ctx.Store())
	vel := ecs.NewWrite[Velocity](ctx.Store())
	wander := ecs.NewWrite[Wander](ctx.Store())

	for {
		select {
		case req := <-s.requests:
			e := ctx.Entities().NewEntity()
			pos.Add(e, req.pos)
			vel.Add(e, req.vel)
			wander.Add(e, Wander{})
		default:
			return
		}
	}
}
