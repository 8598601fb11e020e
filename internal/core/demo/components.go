package demo

// Position is the dense, widely-populated component driving the demo's
// movement system.
type Position struct {
	X, Y float64
}

// Velocity is read-only from the movement system's perspective; nothing in
// this demo ever mutates it after spawn.
type Velocity struct {
	DX, DY float64
}

// Wander is a marker component: entities that have it are held at the
// window edges instead of drifting off-screen.
type Wander struct{}
