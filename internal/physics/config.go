package physics

import "math"

// Forces are the constant pushes applied per tick, in mass-yards/s².
type Forces struct {
	Run      float64 `json:"run"`
	Pursuit  float64 `json:"pursuit"`
	Dropback float64 `json:"dropback"`
	Route    float64 `json:"route"`
	Cover    float64 `json:"cover"`
	YAC      float64 `json:"yac"`
}

// Config holds every tunable constant of the play simulator.
type Config struct {
	Dt       float64 `json:"dt"`
	Ticks    int     `json:"ticks"`
	MaxTicks int     `json:"maxTicks"`

	Mass    float64 `json:"mass"`
	Damping float64 `json:"damping"`
	Gravity float64 `json:"gravity"`

	FieldLength float64 `json:"fieldLength"`
	FieldWidth  float64 `json:"fieldWidth"`

	PassSpeed     float64 `json:"passSpeed"`
	ThrowPhase    float64 `json:"throwPhase"`
	CarryAltitude float64 `json:"carryAltitude"`
	ThrowAltitude float64 `json:"throwAltitude"`

	InterceptCeiling   float64 `json:"interceptCeiling"`
	InterceptRadius    float64 `json:"interceptRadius"`
	MaxInterceptChance float64 `json:"maxInterceptChance"`
	CatchMin           float64 `json:"catchMin"`
	CatchMax           float64 `json:"catchMax"`
	CatchRadius        float64 `json:"catchRadius"`

	TrailLength int `json:"trailLength"`

	ScaleX float64 `json:"scaleX"`
	ScaleY float64 `json:"scaleY"`
	ScaleZ float64 `json:"scaleZ"`

	Forces Forces `json:"forces"`
}

// DefaultConfig returns the tuned constants.
func DefaultConfig() Config {
	return Config{
		Dt:       0.02,
		Ticks:    120,
		MaxTicks: 600,

		Mass:    100,
		Damping: 0.5,
		Gravity: -32,

		FieldLength: 100,
		FieldWidth:  53.3,

		PassSpeed:     45,
		ThrowPhase:    0.3,
		CarryAltitude: 0.8,
		ThrowAltitude: 2.0,

		InterceptCeiling:   4,
		InterceptRadius:    2,
		MaxInterceptChance: 0.3,
		CatchMin:           0.5,
		CatchMax:           3,
		CatchRadius:        1.5,

		TrailLength: 15,

		ScaleX: 1.0 / 50.0,
		ScaleY: 0.42 / 26.65,
		ScaleZ: 0.1,

		Forces: Forces{
			Run:      40000,
			Pursuit:  30000,
			Dropback: 10000,
			Route:    30000,
			Cover:    25000,
			YAC:      35000,
		},
	}
}

// normalized fills zero or invalid fields from DefaultConfig.
func (c Config) normalized() Config {
	d := DefaultConfig()
	pos := func(v *float64, def float64) {
		if *v <= 0 || math.IsNaN(*v) {
			*v = def
		}
	}
	pos(&c.Dt, d.Dt)
	pos(&c.Mass, d.Mass)
	pos(&c.Damping, d.Damping)
	pos(&c.FieldLength, d.FieldLength)
	pos(&c.FieldWidth, d.FieldWidth)
	pos(&c.PassSpeed, d.PassSpeed)
	pos(&c.CarryAltitude, d.CarryAltitude)
	pos(&c.ThrowAltitude, d.ThrowAltitude)
	pos(&c.InterceptCeiling, d.InterceptCeiling)
	pos(&c.InterceptRadius, d.InterceptRadius)
	pos(&c.CatchMax, d.CatchMax)
	pos(&c.CatchRadius, d.CatchRadius)
	pos(&c.ScaleX, d.ScaleX)
	pos(&c.ScaleY, d.ScaleY)
	pos(&c.ScaleZ, d.ScaleZ)
	if c.Gravity >= 0 {
		c.Gravity = d.Gravity
	}
	if c.Ticks <= 0 {
		c.Ticks = d.Ticks
	}
	if c.MaxTicks < c.Ticks {
		c.MaxTicks = c.Ticks
	}
	if c.TrailLength <= 0 {
		c.TrailLength = d.TrailLength
	}
	if c.ThrowPhase < 0 || c.ThrowPhase >= 1 {
		c.ThrowPhase = d.ThrowPhase
	}
	if c.CatchMin < 0 || c.CatchMin >= c.CatchMax {
		c.CatchMin = d.CatchMin
	}
	if c.MaxInterceptChance < 0 || c.MaxInterceptChance > 1 {
		c.MaxInterceptChance = d.MaxInterceptChance
	}
	if c.Forces == (Forces{}) {
		c.Forces = d.Forces
	}
	return c
}
