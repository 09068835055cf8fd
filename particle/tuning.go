package particle

import "time"

const (
	CountReduced       = 60
	CountFull          = 120
	SmallViewportWidth = 768.0
	LowEndCores        = 4

	SpawnSpeed     = 0.5 // per-axis velocity range is [-SpawnSpeed, SpawnSpeed]
	RadiusMin      = 1.5
	RadiusSpread   = 2.0
	FrameInterval  = 16670 * time.Microsecond
	AttractRange   = 500.0
	AttractNear    = 0.002  // at distance 0
	AttractFar     = 0.0003 // at AttractRange
	ImpulseWindow  = 500 * time.Millisecond
	ImpulseRange   = 200.0
	ImpulseForce   = 3.0
	ContractForce  = 0.015
	Damping        = 0.99
	JitterSpan     = 0.01 // jitter is uniform in [-JitterSpan/2, JitterSpan/2]
	MaxVelocity    = 2.5
	NeighborsMin   = 3
	NeighborsExtra = 3    // neighbours chosen in [NeighborsMin, NeighborsMin+NeighborsExtra)
	LinkCutoff     = 10000.0
	AlphaIdle      = 0.6
	AlphaHovered   = 0.8
)
