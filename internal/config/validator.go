package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	reweaveerrors "github.com/reweave/reweave/pkg/errors"
)

// weightTolerance bounds the acceptable floating-point drift when checking
// that scorer weights sum to 1.0.
const weightTolerance = 1e-9

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("ratio_candidate", func(fl validator.FieldLevel) bool {
			value := fl.Field().Float()
			for _, ratio := range CandidateRatios {
				if math.Abs(value-ratio) < 1e-9 {
					return true
				}
			}
			return false
		})

		validateInst = v
	})

	return validateInst
}

// Validate performs schema and cross-field validation on the configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return reweaveerrors.NewValidationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	if math.Abs(cfg.Weights.Sum()-1.0) > weightTolerance {
		return reweaveerrors.NewValidationError("weights",
			fmt.Sprintf("weights must sum to 1.0, got %.12f", cfg.Weights.Sum()), nil)
	}

	if cfg.Typography.MinLineHeight > cfg.Typography.MaxLineHeight {
		return reweaveerrors.NewValidationError("typography.min_line_height",
			"minimum line height exceeds maximum", nil)
	}

	if cfg.Typography.MinSmallSize > cfg.Typography.MinBodySize {
		return reweaveerrors.NewValidationError("typography.min_small_size",
			"small size floor exceeds body size floor", nil)
	}

	if cfg.Contrast.NormalText < cfg.Contrast.LargeText {
		return reweaveerrors.NewValidationError("contrast.normal_text",
			"normal text threshold below large text threshold", nil)
	}

	return nil
}

func convertValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return reweaveerrors.NewValidationError("config", err.Error(), err)
	}

	fe := fieldErrs[0]
	field := strings.ToLower(strings.TrimPrefix(fe.Namespace(), "Config."))
	return reweaveerrors.NewValidationError(field,
		fmt.Sprintf("failed %q constraint", fe.Tag()), err)
}
