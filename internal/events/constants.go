package events

const (
	// EventTypeAny subscribes a listener to every event type
	EventTypeAny EventType = "*"

	// Roster events
	EventTypeCharacterCreated EventType = "character_created"
	EventTypeCreatureSpawned  EventType = "creature_spawned"
	EventTypeGameReset        EventType = "game_reset"

	// Attack events
	EventTypeCreatureDamaged  EventType = "creature_damaged"
	EventTypeCreatureKilled   EventType = "creature_killed"
	EventTypeCharacterKilled  EventType = "character_killed"
	EventTypeCharacterDamaged EventType = "character_damaged"

	// Spell events
	EventTypeCharacterHealed      EventType = "character_healed"
	EventTypeCreatureWeakened     EventType = "creature_weakened"
	EventTypeCharacterResurrected EventType = "character_resurrected"

	// Evolution events
	EventTypeEvolutionStarted  EventType = "evolution_started"
	EventTypeStrengthEvolved   EventType = "strength_evolved"
	EventTypeStrengthUnchanged EventType = "strength_unchanged"
	EventTypeLifeEvolved       EventType = "life_evolved"
	EventTypeLifeUnchanged     EventType = "life_unchanged"
)
