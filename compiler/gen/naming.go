package gen

import (
	"path"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

// Ident returns the exported Go identifier for an OData name, e.g.
// "Last_Date_Modified" becomes "LastDateModified".
func Ident(name string) string {
	clean := strings.Map(func(r rune) rune {
		if isAlnum(r) {
			return r
		}
		return '_'
	}, name)
	id := inflect.Camelize(clean)
	switch {
	case id == "":
		return "X"
	case unicode.IsDigit([]rune(id)[0]):
		return "X" + id
	}
	return id
}

// FileName returns the artifact file name for an entity: the entity name
// with non-alphanumeric characters stripped, lowercased, with a ".go" suffix.
// It returns "" if nothing is left after stripping.
func FileName(entity string) string {
	base := strings.ToLower(stripNonAlnum(entity))
	if base == "" {
		return ""
	}
	return base + ".go"
}

// PackageName derives a Go package name from a target directory.
func PackageName(dir string) string {
	name := strings.ToLower(stripNonAlnum(path.Base(strings.ReplaceAll(dir, "\\", "/"))))
	if name == "" || unicode.IsDigit([]rune(name)[0]) {
		return "entities"
	}
	return name
}

// pkgName returns the default package name for an import path, dropping
// major version suffixes such as "/v10".
func pkgName(importPath string) string {
	base := path.Base(importPath)
	if len(base) > 1 && base[0] == 'v' && strings.Trim(base[1:], "0123456789") == "" {
		base = path.Base(path.Dir(importPath))
	}
	return strings.ReplaceAll(base, "-", "")
}

func stripNonAlnum(s string) string {
	return strings.Map(func(r rune) rune {
		if isAlnum(r) {
			return r
		}
		return -1
	}, s)
}

func isAlnum(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
}
