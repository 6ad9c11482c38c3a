package cpg

import "strings"

// IsUserDefined reports whether a node's attributes describe a user-defined
// method, as opposed to external, compiler-synthesized, or include-driven
// ones. Missing attributes compare as empty strings; a missing IS_EXTERNAL is
// treated as "false".
func IsUserDefined(attrs map[string]string) bool {
	if attrs[AttrLabel] != LabelMethod {
		return false
	}
	if strings.EqualFold(attrs[AttrIsExternal], "true") {
		return false
	}

	name := attrs[AttrName]
	fullName := attrs[AttrFullName]
	if strings.HasPrefix(name, "<operator>") || strings.HasPrefix(fullName, "<operator>") {
		return false
	}
	if name == "<clinit>" || name == "<global>" {
		return false
	}

	switch attrs[AttrFilename] {
	case "<includes>", "<empty>", "":
		return false
	}
	if strings.Contains(attrs[AttrASTParentFullName], "<includes>") {
		return false
	}
	return true
}

// SeedSet returns the ids of all nodes in g classified as user-defined
// methods.
func SeedSet(g *Graph) map[string]bool {
	seeds := make(map[string]bool)
	for id, n := range g.Nodes {
		if IsUserDefined(n.Attrs) {
			seeds[id] = true
		}
	}
	return seeds
}
