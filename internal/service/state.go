package service

// State names the backend-selection state a sync core is in.
type State string

const (
	// StateAnonymous: no signed-in identity; the local store is the
	// source of truth and operations write to it directly.
	StateAnonymous State = "anonymous"

	// StateMigrating: a sign-in arrived with local data present; the
	// one-time migration batch is in flight.
	StateMigrating State = "migrating"

	// StateSynced: the remote store is the source of truth; canonical
	// state mirrors it through subscriptions.
	StateSynced State = "synced"
)
