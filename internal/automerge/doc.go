// Package automerge merges dependency-update pull requests automatically.
//
// For every repository one pipeline run is executed:
//
//  1. archived repositories and repositories with the opt-out topic are
//     skipped,
//  2. the pull request matching the expected title is located among all pull
//     requests of the repository,
//  3. for pnpm upgrades the pull request branch is repaired first,
//  4. a status snapshot (CI rollup, mergeable state, review decision, caller
//     capabilities) decides if the pull request is approved and merged,
//  5. when no pull request exists, the workflow that generates the updates is
//     retriggered, throttled to once per 30 minutes.
//
// Nothing is persisted between runs, every decision is derived from live API
// reads.
package automerge
