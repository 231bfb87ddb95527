package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// field pairs a task-file parameter name with whether it was supplied.
type field struct {
	name string
	set  bool
}

// validateStruct runs the struct-tag rules and rewrites the first violation
// into a task-parameter error message.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	ferr := verrs[0]
	switch ferr.Tag() {
	case "required":
		return requiredError(paramName(ferr.Field()))
	case "oneof":
		return configError(fmt.Sprintf("invalid %q value %v; choose one of: %s",
			paramName(ferr.Field()), ferr.Value(), strings.ReplaceAll(ferr.Param(), " ", ", ")))
	default:
		return configError(fmt.Sprintf("invalid %q value %v", paramName(ferr.Field()), ferr.Value()))
	}
}

// paramName maps a Go struct field name back to its task-file parameter name.
func paramName(goField string) string {
	switch goField {
	case "ProjectID":
		return "project_id"
	case "State":
		return "state"
	case "PlanID":
		return "plan_id"
	case "VolumeID":
		return "storage_volume_id"
	default:
		return strings.ToLower(goField)
	}
}

// mutuallyExclusive fails when more than one of the fields is set.
func mutuallyExclusive(fields ...field) error {
	var set []string
	for _, f := range fields {
		if f.set {
			set = append(set, f.name)
		}
	}
	if len(set) > 1 {
		return configError(fmt.Sprintf("parameters %s are mutually exclusive", strings.Join(quoted(set), " and ")))
	}
	return nil
}

// requireOneOf fails when none of the fields is set.
func requireOneOf(fields ...field) error {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.set {
			return nil
		}
		names = append(names, f.name)
	}
	return configError(fmt.Sprintf("one of %s is required", strings.Join(quoted(names), ", ")))
}

// requireAll fails on the first unset field.
func requireAll(fields ...field) error {
	for _, f := range fields {
		if !f.set {
			return requiredError(f.name)
		}
	}
	return nil
}

func requiredError(name string) error {
	return configError(fmt.Sprintf("%q parameter is required", name))
}

func configError(msg string) error {
	return errors.New(msg)
}

func quoted(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = fmt.Sprintf("%q", n)
	}
	return out
}
