package notifications

const (
	TypeCoverageReported  = "coverage_reported"
	TypeCoverageOffer     = "coverage_offer"
	TypeCoverageAccepted  = "coverage_accepted"
	TypeCoverageTaken     = "coverage_offer_taken"
	TypeCoverageFinalized = "coverage_finalized"
	TypeCoverageCancelled = "coverage_cancelled"
)
