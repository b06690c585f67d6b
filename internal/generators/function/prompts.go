package function

import (
	"github.com/simonhull/firebird-suite/plume/internal/generator"
	"github.com/simonhull/firebird-suite/plume/internal/input"
)

// Question keys, also used in answers files.
const (
	KeyName        = "name"
	KeyTrigger     = "trigger"
	KeyDocPath     = "document"
	KeyRegion      = "region"
	KeyFields      = "fields"
	KeyRequireAuth = "require_auth"
	KeyRoles       = "roles"
)

// Ask runs the function interview on top of base, which carries the
// configured region, runtime and output dir. Questions that do not apply to
// the chosen trigger are not asked.
func Ask(s *input.Session, base Options) (Options, error) {
	opts := base

	name, err := s.Text(input.Question{Key: KeyName, Message: "Function name (e.g. send-welcome)"})
	if err != nil {
		return opts, err
	}
	if name == "" {
		return opts, &generator.InputError{Field: KeyName, Message: "function name is required"}
	}
	opts.Name = name

	if opts.Trigger, err = s.Choose(input.Question{
		Key:     KeyTrigger,
		Message: "Trigger",
		Default: DefaultTrigger,
	}, Triggers); err != nil {
		return opts, err
	}

	if opts.Trigger == TriggerFirestore {
		if opts.DocPath, err = s.Text(input.Question{
			Key:     KeyDocPath,
			Message: "Document path",
			Default: DefaultDocPath(name),
		}); err != nil {
			return opts, err
		}
	}

	region := base.Region
	if region == "" {
		region = DefaultRegion
	}
	if opts.Region, err = s.Text(input.Question{Key: KeyRegion, Message: "Region", Default: region}); err != nil {
		return opts, err
	}

	if opts.Fields, err = s.List(input.Question{
		Key:     KeyFields,
		Message: "Required fields (comma separated)",
	}); err != nil {
		return opts, err
	}

	if opts.Trigger == TriggerFirestore {
		return opts, nil
	}

	if opts.RequireAuth, err = s.Confirm(input.Question{Key: KeyRequireAuth, Message: "Require authentication?"}); err != nil {
		return opts, err
	}
	if opts.RequireAuth {
		if opts.Roles, err = s.List(input.Question{
			Key:     KeyRoles,
			Message: "Allowed roles (comma separated, blank for any signed-in user)",
		}); err != nil {
			return opts, err
		}
	}

	return opts, nil
}
