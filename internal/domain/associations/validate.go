package associations

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidPolicy = errors.New("invalid association policy")

var validate = validator.New()

type policyInput struct {
	PermitRuleType    *string `validate:"omitempty,oneof=per_unit per_bedroom"`
	PermitsPerCount   *int    `validate:"omitempty,gte=0"`
	MaxPermitsPerUnit *int    `validate:"omitempty,gt=0"`
	MaxVisitorPermits *int    `validate:"omitempty,gte=0"`
}

// ValidatePolicy rejects policies the calculator would otherwise have to
// guess about: unknown rule types and negative counts. Absent fields are fine.
func ValidatePolicy(p Policy) error {
	in := policyInput{
		PermitRuleType:    p.PermitRuleType,
		PermitsPerCount:   p.PermitsPerCount,
		MaxPermitsPerUnit: p.MaxPermitsPerUnit,
		MaxVisitorPermits: p.MaxVisitorPermits,
	}
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidPolicy, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}
	return nil
}
