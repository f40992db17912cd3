package models

import "fmt"

// Source identifies which help-center portal an article belongs to.
type Source int

const (
	None Source = iota
	Help
	Developers
	Partners
)

func (s Source) String() string {
	switch s {
	case Help:
		return "help"
	case Developers:
		return "developers"
	case Partners:
		return "partners"
	default:
		return "none"
	}
}

// ParseSource maps a CLI/JSON source name back to a Source value.
func ParseSource(name string) (Source, error) {
	switch name {
	case "help":
		return Help, nil
	case "developers":
		return Developers, nil
	case "partners":
		return Partners, nil
	default:
		return None, fmt.Errorf("unknown source %q (want help, developers or partners)", name)
	}
}
