package extract

import "fmt"

// SortOption selects the ordering of kept comments.
type SortOption int

const (
	SortLikes SortOption = iota
	SortDateNewest
	SortDateOldest
)

var sortNames = map[SortOption]string{
	SortLikes:      "likes",
	SortDateNewest: "date_desc",
	SortDateOldest: "date_asc",
}

var sortDisplayNames = map[SortOption]string{
	SortLikes:      "Likes",
	SortDateNewest: "Date (Newest)",
	SortDateOldest: "Date (Oldest)",
}

func (s SortOption) String() string {
	if name, ok := sortNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SortOption(%d)", int(s))
}

// DisplayName is the human-readable form used in CLI output.
func (s SortOption) DisplayName() string {
	if name, ok := sortDisplayNames[s]; ok {
		return name
	}
	return s.String()
}

// ParseSortOption accepts both the wire name and the display name.
func ParseSortOption(name string) (SortOption, error) {
	for opt, n := range sortNames {
		if n == name {
			return opt, nil
		}
	}
	for opt, n := range sortDisplayNames {
		if n == name {
			return opt, nil
		}
	}
	return SortLikes, fmt.Errorf("unknown sort option %q", name)
}
