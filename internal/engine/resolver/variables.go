package resolver

import (
	"regexp"

	"go.trai.ch/tasker/internal/core/domain"
	"go.trai.ch/zerr"
)

// placeholderPattern matches ${NAME}; names are at least two characters long.
var placeholderPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]+)\}`)

// ResolveVariables substitutes ${NAME} placeholders in the commands of every
// queued task, in place. Substitution is textual and not recursive. A command
// is only rewritten once all of its placeholders resolved.
func ResolveVariables(doc *domain.Document, queue []*domain.Task) error {
	for _, task := range queue {
		if len(task.Commands) == 0 {
			return zerr.With(domain.NewInternalError("task reached variable resolution without commands", nil), "task", task.Name)
		}
		for i, cmd := range task.Commands {
			resolved, err := substitute(doc, cmd)
			if err != nil {
				return zerr.With(zerr.With(err, "task", task.Name), "command", cmd)
			}
			task.Commands[i] = resolved
		}
	}
	return nil
}

func substitute(doc *domain.Document, cmd string) (string, error) {
	var firstErr error
	out := placeholderPattern.ReplaceAllStringFunc(cmd, func(match string) string {
		if firstErr != nil {
			return match
		}
		name := placeholderPattern.FindStringSubmatch(match)[1]
		v, err := doc.Variable(name)
		if err != nil {
			firstErr = err
			return match
		}
		return v.Value
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}
