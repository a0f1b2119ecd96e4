package engine

import (
	"time"

	"github.com/playperu/geoguess/internal/geoguess"
)

// Command is an input to Engine.Apply. User actions and timer callbacks are
// both commands; timer commands carry the round they were armed for.
type Command interface{ command() }

type (
	InitializeGame struct{ Settings geoguess.Settings }
	OpenSetup      struct{}
	BackToStart    struct{}
	StartRound     struct{}
	SelectAnswer   struct{ Option int }
	Reset          struct{}

	AddPlayer            struct{ Name string }
	RemovePlayer         struct{ ID string }
	SetCollaborativeMode struct{ Enabled bool }
	SetTeamMode          struct{ Enabled bool }

	Tick          struct{ Round uint64 }
	Timeout       struct{ Round uint64 }
	RevealElapsed struct{ Round uint64 }
)

func (InitializeGame) command()       {}
func (OpenSetup) command()            {}
func (BackToStart) command()          {}
func (StartRound) command()           {}
func (SelectAnswer) command()         {}
func (Reset) command()                {}
func (AddPlayer) command()            {}
func (RemovePlayer) command()         {}
func (SetCollaborativeMode) command() {}
func (SetTeamMode) command()          {}
func (Tick) command()                 {}
func (Timeout) command()              {}
func (RevealElapsed) command()        {}

// Effect asks the runtime driving the engine to manage a timer.
type Effect interface{ effect() }

type (
	// ArmTick schedules a Tick for Round one interval from now.
	ArmTick struct{ Round uint64 }
	// StopTick cancels any pending Tick.
	StopTick struct{}
	// ArmReveal schedules RevealElapsed for Round after the delay.
	ArmReveal struct {
		Round uint64
		After time.Duration
	}
	// CancelReveal cancels any pending RevealElapsed.
	CancelReveal struct{}
	// GameFinished reports that the pool ran out.
	GameFinished struct{}
)

func (ArmTick) effect()      {}
func (StopTick) effect()     {}
func (ArmReveal) effect()    {}
func (CancelReveal) effect() {}
func (GameFinished) effect() {}
