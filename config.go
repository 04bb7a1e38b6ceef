package main

import "time"

// Runtime constants for the front ends. Solver tuning lives in the YAML
// configuration.
const (
	defaultTPS            = 60
	statsLogInterval      = 5 * time.Second
	pgoRecordDuration     = 15 * time.Second
	pgoOutputPath         = "default.pgo"
	terminalLogPath       = "fluidbg.log"
	defaultSnapshotFrames = 240
	defaultSnapshotPath   = "fluidbg.png"
)
