package automerge

import (
	"errors"
	"fmt"
)

// UpdateKind distinguishes the kinds of dependency-update pull requests that
// can be merged automatically.
type UpdateKind int

const (
	// UpdateKindLibrary is a version bump of a single named library.
	UpdateKindLibrary UpdateKind = iota
	// UpdateKindNonMajor is the batched update of all non-major dependencies.
	UpdateKindNonMajor
	// UpdateKindPnpm is the pnpm major version upgrade, the only kind that
	// needs repairs of the pull request branch before merging.
	UpdateKindPnpm
)

const renovateWorkflowFile = "renovate.yml"

// pnpmVersionMajor is the pnpm major version that pnpm upgrade pull requests
// move the repositories to.
const pnpmVersionMajor = "9"

const (
	// SelectorNonMajor selects the all-non-major-dependencies update.
	SelectorNonMajor = "non-major"
	// SelectorPnpm selects the pnpm upgrade.
	SelectorPnpm = "pnpm"
)

// Update describes one kind of update pull request.
// It is resolved once at startup from the command line selector, all later
// stages only read the plain fields.
type Update struct {
	Kind UpdateKind
	// TitlePrefix is the start of the title of matching pull requests.
	TitlePrefix string
	// WorkflowFileName is the file name of the github actions workflow that
	// generates the pull requests, it is retriggered when no pull request
	// exists.
	WorkflowFileName string
	// CheckMergedAge defines if an already merged matching pull request only
	// counts when it was merged recently.
	// It is set for recurring updates, an old merged batch does not satisfy
	// the current run.
	CheckMergedAge bool
}

// ResolveUpdate derives the Update from the command line selector.
// selector is either [SelectorNonMajor], [SelectorPnpm] or a version string
// like "v11", the latter requires library to be set to the dependency name.
func ResolveUpdate(selector, library string) (*Update, error) {
	switch selector {
	case "":
		return nil, errors.New("update selector is empty")

	case SelectorNonMajor:
		return &Update{
			Kind:             UpdateKindNonMajor,
			TitlePrefix:      "chore(deps): update all non-major dependencies",
			WorkflowFileName: renovateWorkflowFile,
			CheckMergedAge:   true,
		}, nil

	case SelectorPnpm:
		return &Update{
			Kind:             UpdateKindPnpm,
			TitlePrefix:      "chore(deps): update pnpm to v" + pnpmVersionMajor,
			WorkflowFileName: renovateWorkflowFile,
		}, nil

	default:
		if library == "" {
			return nil, fmt.Errorf("update selector %q is a library version, a library name must be passed too", selector)
		}

		return &Update{
			Kind:             UpdateKindLibrary,
			TitlePrefix:      fmt.Sprintf("fix(deps): update dependency %s to %s", library, selector),
			WorkflowFileName: renovateWorkflowFile,
		}, nil
	}
}
