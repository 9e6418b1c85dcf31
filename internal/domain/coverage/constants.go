package coverage

const (
	StatusPendingHR            = "pending_hr"
	StatusSeekingCoverage      = "seeking_coverage"
	StatusAwaitingFinalization = "awaiting_finalization"
	StatusCovered              = "covered"
	StatusCancelled            = "cancelled"
)

const (
	CompensationExtraHour   = "extra_hour"
	CompensationVacationDay = "vacation_day"
)

const (
	AbsenceTypeCovered = "covered_shift"
)
