package colorname

import (
	"fmt"
	"strconv"
	"strings"
)

// NumCategories is the number of color name categories in a table row.
const NumCategories = 11

// Category identifies a color name. Valid ids are 1..NumCategories; the zero
// value is Unknown and comes from table rows whose weights are all zero.
type Category uint8

const (
	Unknown Category = iota
	Black
	Blue
	Brown
	Grey
	Green
	Orange
	Pink
	Purple
	Red
	White
	Yellow
)

var categoryNames = [NumCategories + 1]string{
	"unknown",
	"black",
	"blue",
	"brown",
	"grey",
	"green",
	"orange",
	"pink",
	"purple",
	"red",
	"white",
	"yellow",
}

// Valid reports whether c is one of the named categories.
func (c Category) Valid() bool {
	return c >= Black && c <= Yellow
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

// ParseCategory resolves a color name (case-insensitive, "gray" accepted) or
// a numeric id to its Category.
func ParseCategory(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "gray" {
		name = "grey"
	}
	for i, n := range categoryNames {
		if n == name && i > 0 {
			return Category(i), nil
		}
	}
	if id, err := strconv.Atoi(name); err == nil && id >= 1 && id <= NumCategories {
		return Category(id), nil
	}
	return Unknown, fmt.Errorf("unknown color category %q", s)
}

// Categories returns the named categories in id order.
func Categories() []Category {
	out := make([]Category, 0, NumCategories)
	for c := Black; c <= Yellow; c++ {
		out = append(out, c)
	}
	return out
}
