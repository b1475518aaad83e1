package lead

import "errors"

var (
	ErrLeadNotFound = errors.New("lead not found")
	ErrJobNotFound  = errors.New("job not found")
)
