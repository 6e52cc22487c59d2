package plate

import "strings"

// MaxCompounds is the number of compound name slots offered to the user.
const MaxCompounds = 4

// CompoundList holds the user-defined compound names in slot order.
type CompoundList [MaxCompounds]string

// Choices returns the non-blank names in slot order.
func (l CompoundList) Choices() []string {
	choices := make([]string, 0, MaxCompounds)
	for _, name := range l {
		if strings.TrimSpace(name) == "" {
			continue
		}
		choices = append(choices, name)
	}
	return choices
}

// CompoundListOf fills a list from names; extra names are dropped.
func CompoundListOf(names ...string) CompoundList {
	var l CompoundList
	copy(l[:], names)
	return l
}
