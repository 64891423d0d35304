package controllers

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"jobboard/internal/sources"
	"jobboard/pkg/utils"
)

var validationOnce sync.Once

// SetupValidation registers the custom binding tags on gin's validator. Safe
// to call more than once.
func SetupValidation() error {
	var err error
	validationOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		err = utils.RegisterValidators(v, sources.MuseCategories, sources.MuseLevels)
	})
	return err
}
