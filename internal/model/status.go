package model

// Outcome is the terminal result of a break session
type Outcome string

const (
	// OutcomePending means the break is still on screen
	OutcomePending Outcome = "pending"

	// OutcomeCompleted means the countdown ran to zero
	OutcomeCompleted Outcome = "completed"

	// OutcomeEscaped means the user dismissed the break early
	OutcomeEscaped Outcome = "escaped"
)

// String returns the string representation of Outcome
func (o Outcome) String() string {
	return string(o)
}

// IsFinished returns true once the session has a terminal outcome
func (o Outcome) IsFinished() bool {
	return o == OutcomeCompleted || o == OutcomeEscaped
}

// SchedulerState is the observable state of the break scheduler
type SchedulerState string

const (
	// SchedulerIdle means paused or outside active hours
	SchedulerIdle SchedulerState = "Idle"

	// SchedulerArmed means a next fire time is set and pending
	SchedulerArmed SchedulerState = "Armed"

	// SchedulerPreWarned means the pre-warning for the current fire time was shown
	SchedulerPreWarned SchedulerState = "PreWarned"

	// SchedulerSnoozed means the break was postponed until a snooze deadline
	SchedulerSnoozed SchedulerState = "Snoozed"

	// SchedulerFired means the trigger callback ran on the last tick
	SchedulerFired SchedulerState = "Fired"
)

// String returns the string representation of SchedulerState
func (s SchedulerState) String() string {
	return string(s)
}

// IsActive returns true if the scheduler is counting toward a break
func (s SchedulerState) IsActive() bool {
	return s == SchedulerArmed || s == SchedulerPreWarned || s == SchedulerSnoozed
}
