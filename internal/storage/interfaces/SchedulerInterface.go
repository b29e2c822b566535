package interfaces

import "informant/internal/services"

type SchedulerInterface interface {
	Init()
	Stop()
	Restore() error
	Persist() error
	Reload() (*services.LoadReport, error)
}
