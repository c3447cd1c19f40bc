package meta

import "strings"

// ExplicitSeparator joins contract and member names of explicit
// implementations: Greeter_Baz implements Baz of contract Greeter only.
const ExplicitSeparator = "_"

// ExplicitName returns the mangled method name implementing member of contract.
func ExplicitName(contract, member string) string {
	return contract + ExplicitSeparator + member
}

// ParseExplicitName splits a mangled name at the first separator. Both sides
// must be non-empty and the contract must start with a letter.
func ParseExplicitName(name string) (contract, member string, ok bool) {
	contract, member, found := strings.Cut(name, ExplicitSeparator)
	if !found || contract == "" || member == "" {
		return "", "", false
	}

	c := contract[0]
	if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
		return "", "", false
	}

	return contract, member, true
}
