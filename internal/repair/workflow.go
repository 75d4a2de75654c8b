package repair

import "regexp"

// pnpmSetupVersionRe matches the quoted version field of a pnpm/action-setup
// stanza in a workflow definition:
//
//	- uses: pnpm/action-setup@v2.2.4
//	  with:
//	    version: "7"
//
// Only a quoted value matches, the rewrite result is unquoted and therefore
// not matched again.
var pnpmSetupVersionRe = regexp.MustCompile(`(uses:[ \t]*pnpm/action-setup\S*[ \t]*\r?\n[ \t]*with:[ \t]*\r?\n[ \t]*version:[ \t]*)"([^"]*)"`)

// SetPnpmActionVersion replaces the quoted pnpm version of all
// pnpm/action-setup stanzas in a workflow file with the unquoted newVersion.
func SetPnpmActionVersion(content, newVersion string) (result string, changed bool) {
	result = pnpmSetupVersionRe.ReplaceAllString(content, "${1}"+newVersion)
	return result, result != content
}
