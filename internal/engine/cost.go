package engine

// Cost table, spec.md §6. Every accounting delta applied by the fault
// handler uses exactly one of these constants.
const (
	costRefHit    = 1
	costCtxSwitch = 130
	costExit      = 400
	costMap       = 300
	costUnmap     = 400
	costIn        = 3200
	costOut       = 3000
	costFin       = 1500
	costFout      = 1523
	costZero      = 140
	costSegV      = 444
	costSegProt   = 340
)
