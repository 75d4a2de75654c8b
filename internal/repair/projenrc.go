// Package repair contains pure text-rewrite rules that fix up files on
// build-tool upgrade pull request branches.
// Every rule takes the old file content and returns the new one plus a flag
// if anything changed. Running a rule on its own output is a no-op.
package repair

import (
	"regexp"
	"strings"
)

// DeprecatedPackageManagerMarker identifies a .projenrc.ts that still
// configures the package manager explicitly. The option became redundant, it
// is the projen default now, and keeping it pins the old pnpm major version.
const DeprecatedPackageManagerMarker = "NodePackageManager.PNPM"

// DefaultPnpmVersionPin is the pnpmVersion value projen generated by default.
// Finding any other pinned value is unexpected and worth a warning.
const DefaultPnpmVersionPin = "8"

const importedSymbol = "NodePackageManager"

var (
	packageManagerOptionRe = regexp.MustCompile(`(?m)^[ \t]*packageManager:\s*(?:javascript\.)?NodePackageManager\.PNPM,?[ \t]*\r?\n`)
	pnpmVersionPinRe       = regexp.MustCompile(`(?m)^[ \t]*pnpmVersion:\s*["']([^"']*)["'],?[ \t]*\r?\n`)
	packageManagerImportRe = regexp.MustCompile(`(?m)^import\s+\{\s*NodePackageManager\s*\}\s+from\s+["']projen(?:/lib/javascript)?["'];?[ \t]*\r?\n`)
)

var (
	blankLineRunRe     = regexp.MustCompile(`\n([ \t]*\n){3,}`)
	blankAfterOpenRe   = regexp.MustCompile(`([{\[(][ \t]*\n)(?:[ \t]*\n)+`)
	blankAfterCommaRe  = regexp.MustCompile(`(,[ \t]*\n)(?:[ \t]*\n)+`)
	blankBeforeCloseRe = regexp.MustCompile(`\n(?:[ \t]*\n)+([ \t]*[}\])])`)
)

// CleanProjenrc removes the deprecated packageManager option and the
// accompanying pnpmVersion pin from a .projenrc.ts.
// It returns the rewritten content, the pinned pnpm version that was found
// (empty when no pin line existed) and whether the content changed.
// Content without the deprecation marker is returned unchanged.
func CleanProjenrc(content string) (result string, pinnedVersion string, changed bool) {
	if !strings.Contains(content, DeprecatedPackageManagerMarker) {
		return content, "", false
	}

	result = packageManagerOptionRe.ReplaceAllString(content, "")

	if match := pnpmVersionPinRe.FindStringSubmatch(result); match != nil {
		pinnedVersion = match[1]
		result = pnpmVersionPinRe.ReplaceAllString(result, "")
	}

	result = removeUnusedImport(result)
	result = normalizeBlankLines(result)

	return result, pinnedVersion, result != content
}

// removeUnusedImport deletes the NodePackageManager import line, but only
// when the symbol is not referenced anywhere else in the file.
func removeUnusedImport(content string) string {
	loc := packageManagerImportRe.FindStringIndex(content)
	if loc == nil {
		return content
	}

	remainder := content[:loc[0]] + content[loc[1]:]
	if strings.Contains(remainder, importedSymbol) {
		return content
	}

	return remainder
}

// normalizeBlankLines cleans up the holes that line removal leaves behind:
// runs of three or more blank lines become one, blank lines directly after an
// opening brace/bracket/paren or a trailing comma and directly before a
// closing brace/bracket/paren are dropped.
func normalizeBlankLines(content string) string {
	content = blankLineRunRe.ReplaceAllString(content, "\n\n")
	content = blankAfterOpenRe.ReplaceAllString(content, "$1")
	content = blankAfterCommaRe.ReplaceAllString(content, "$1")
	content = blankBeforeCloseRe.ReplaceAllString(content, "\n$1")

	return content
}
