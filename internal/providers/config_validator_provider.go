package providers

import (
	"fmt"

	"informant/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate checks each config section against its struct tags.
func (cv *CnfValidator) Validate() error {
	sections := []struct {
		name string
		data interface{}
	}{
		{"webServer", &cv.conf.WebServer},
		{"persistence", &cv.conf.Persistence},
		{"logger", &cv.conf.Logger},
		{"workrave", &cv.conf.Workrave},
	}
	for _, s := range sections {
		v := validate.Struct(s.data)
		if !v.Validate() {
			return fmt.Errorf("invalid %s config: %w", s.name, v.Errors)
		}
	}

	if _, err := cv.conf.Workrave.TimeLocation(); err != nil {
		return fmt.Errorf("invalid workrave config: %w", err)
	}
	if cv.conf.Cache.Enabled && cv.conf.Cache.Size <= 0 {
		return fmt.Errorf("invalid cache config: size must be positive when enabled")
	}
	return nil
}
