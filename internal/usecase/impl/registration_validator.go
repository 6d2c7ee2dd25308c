package impl

import (
	"fmt"
	"strings"

	"noteful/config"
	domainerrors "noteful/internal/domain/errors"
	"noteful/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const (
	tagPresent   = "present"
	tagBcryptLen = "bcryptlen"

	// bcrypt ignores input past 72 bytes and x/crypto refuses it outright.
	maxBcryptPasswordBytes = 72

	// users.username and users.fullname are varchar(255).
	columnLengthRule = "max=255"
)

// registrationStep is one check of the registration pipeline. Steps run in
// order and the first failure wins.
type registrationStep func(input *usecase.RegisterInput) error

// registrationValidator runs the registration pipeline: presence of username,
// presence of password, then the username, password and fullname rules.
type registrationValidator struct {
	validate *validator.Validate
	steps    []registrationStep
}

func newRegistrationValidator(cfg config.RegistrationConfig) (*registrationValidator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation(tagPresent, func(fl validator.FieldLevel) bool {
		return isPresent(fl.Field().String())
	}); err != nil {
		return nil, errors.Wrap(err, "register present validation")
	}
	if err := validate.RegisterValidation(tagBcryptLen, func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxBcryptPasswordBytes
	}); err != nil {
		return nil, errors.Wrap(err, "register bcryptlen validation")
	}

	v := &registrationValidator{validate: validate}

	usernameRules := joinRules(columnLengthRule, cfg.UsernameRules)
	passwordRules := joinRules(tagBcryptLen, cfg.PasswordRules)
	for _, rules := range []string{usernameRules, passwordRules} {
		if err := v.checkRules(rules); err != nil {
			return nil, err
		}
	}

	v.steps = []registrationStep{
		v.presence("username", func(in *usecase.RegisterInput) string { return in.Username }),
		v.presence("password", func(in *usecase.RegisterInput) string { return in.Password }),
		v.rules("username", usernameRules, func(in *usecase.RegisterInput) string { return in.Username }),
		v.rules("password", passwordRules, func(in *usecase.RegisterInput) string { return in.Password }),
		v.rules("fullname", columnLengthRule, func(in *usecase.RegisterInput) string { return in.Fullname }),
	}

	return v, nil
}

// Validate runs every step in order and returns the first failure.
func (v *registrationValidator) Validate(input *usecase.RegisterInput) error {
	for _, step := range v.steps {
		if err := step(input); err != nil {
			return err
		}
	}

	return nil
}

func (v *registrationValidator) presence(field string, value func(*usecase.RegisterInput) string) registrationStep {
	return func(input *usecase.RegisterInput) error {
		if err := v.validate.Var(value(input), tagPresent); err != nil {
			return errors.WithStack(domainerrors.ErrMissingField(field))
		}

		return nil
	}
}

func (v *registrationValidator) rules(field, rules string, value func(*usecase.RegisterInput) string) registrationStep {
	return func(input *usecase.RegisterInput) error {
		if rules == "" {
			return nil
		}

		err := v.validate.Var(value(input), rules)
		if err == nil {
			return nil
		}

		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(describeRule(field, fieldErrs[0])))
		}

		return errors.Wrapf(err, "validate %s", field)
	}
}

// checkRules rejects rule strings that name unknown validators. validator
// panics on those at validation time, so they are caught at startup instead.
func (v *registrationValidator) checkRules(rules string) (err error) {
	if rules == "" {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("invalid registration rules %q: %v", rules, r)
		}
	}()

	_ = v.validate.Var("", rules)

	return nil
}

func describeRule(field string, fe validator.FieldError) string {
	if fe.Param() == "" {
		return fmt.Sprintf("%s failed rule '%s'", field, fe.Tag())
	}

	return fmt.Sprintf("%s failed rule '%s=%s'", field, fe.Tag(), fe.Param())
}

func joinRules(base, extra string) string {
	extra = strings.TrimSpace(extra)
	if extra == "" {
		return base
	}

	return base + "," + extra
}
