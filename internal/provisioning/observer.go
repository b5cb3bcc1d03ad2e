package provisioning

import (
	"time"

	"github.com/rs/zerolog"
)

// Observer receives structured events as a run progresses. Events
// never carry passphrases or API keys.
type Observer interface {
	// Event emits a structured event.
	Event(event Event)

	// Progress reports how many users have been processed so far.
	Progress(current, total int)
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType
	Username  string
	Message   string
	Timestamp time.Time
	Fields    map[string]string
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventRunStarted indicates a run has started.
	EventRunStarted EventType = "run.started"
	// EventRunCompleted indicates a run finished processing all users.
	EventRunCompleted EventType = "run.completed"
	// EventRunAborted indicates a fatal error or cancellation stopped the run.
	EventRunAborted EventType = "run.aborted"

	// EventCapabilitiesProbed indicates the server was probed successfully.
	EventCapabilitiesProbed EventType = "capabilities.probed"
	// EventLibrariesResolved indicates the library selector resolved.
	EventLibrariesResolved EventType = "libraries.resolved"

	// EventAccountCreating indicates account creation is starting.
	EventAccountCreating EventType = "account.creating"
	// EventAccountCreated indicates an account was created.
	EventAccountCreated EventType = "account.created"
	// EventAccountExists indicates the username was already taken.
	EventAccountExists EventType = "account.exists"
	// EventAccountFailed indicates account creation failed.
	EventAccountFailed EventType = "account.failed"

	// EventStepFailed indicates a post-creation step was rejected.
	EventStepFailed EventType = "step.failed"
	// EventAvatarFallback indicates a generated avatar replaced the
	// record's own avatar source.
	EventAvatarFallback EventType = "avatar.fallback"
)

// LogObserver implements Observer on a structured logger.
type LogObserver struct {
	logger zerolog.Logger
}

// NewLogObserver creates an Observer that writes events to logger.
func NewLogObserver(logger zerolog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

// Event implements Observer.
func (o *LogObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	entry := o.logger.Info()
	switch event.Type {
	case EventAccountFailed, EventStepFailed, EventRunAborted:
		entry = o.logger.Error()
	case EventAvatarFallback, EventAccountExists:
		entry = o.logger.Warn()
	}

	entry = entry.Str("event", string(event.Type))
	if event.Username != "" {
		entry = entry.Str("user", event.Username)
	}
	for k, v := range event.Fields {
		entry = entry.Str(k, v)
	}
	entry.Msg(event.Message)
}

// Progress implements Observer.
func (o *LogObserver) Progress(current, total int) {
	o.logger.Info().Int("current", current).Int("total", total).Msg("progress")
}

// NopObserver discards all events.
type NopObserver struct{}

// Event implements Observer.
func (NopObserver) Event(Event) {}

// Progress implements Observer.
func (NopObserver) Progress(int, int) {}
