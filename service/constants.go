package service

import "time"

const (
	// MaxSelectedLoans caps a single renegotiation request.
	MaxSelectedLoans = 50

	// registryCacheTTL bounds how long a snapshot stays quotable as
	// "last known" by the offline CLI path.
	registryCacheTTL = 15 * time.Minute
)
