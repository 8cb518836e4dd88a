package core

// EventKind identifies a gameplay event reported to the platform.
type EventKind int

const (
	EventRoundLost EventKind = iota
	EventRoundWon
	EventBossEncounterRequested
	EventDuplicateBallStateChanged
	EventFullyPoweredAchieved
	EventGravityFlipToggled
	EventBossVictoryNoDamageTaken
	EventBossFightLost
)

var eventNames = map[EventKind]string{
	EventRoundLost:                 "round_lost",
	EventRoundWon:                  "round_won",
	EventBossEncounterRequested:    "boss_encounter_requested",
	EventDuplicateBallStateChanged: "duplicate_ball_state_changed",
	EventFullyPoweredAchieved:      "fully_powered_achieved",
	EventGravityFlipToggled:        "gravity_flip_toggled",
	EventBossVictoryNoDamageTaken:  "boss_victory_no_damage_taken",
	EventBossFightLost:             "boss_fight_lost",
}

// String returns the snake_case name of the event kind.
func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is a one-shot notification emitted by a simulation step.
// Active carries the new state for toggle events (duplicate ball, gravity flip).
type Event struct {
	Kind   EventKind `msgpack:"kind"`
	Active bool      `msgpack:"active,omitempty"`
}

// On returns an event with Active set.
func On(k EventKind) Event {
	return Event{Kind: k, Active: true}
}
