package core

// RuntimeConfig is what the platform knows when a round starts: the terminal
// size, the tick rate and the seed. A zero Seed means the platform picks one.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic rounds
}

// GameState is the platform's view of a round.
type GameState struct {
	Score    int  // Whole seconds survived
	GameOver bool // The round has ended
	Paused   bool
}

// StepResult is returned by each simulation tick. Events are drained, so
// each one is reported exactly once.
type StepResult struct {
	State  GameState
	Events []Event
}
