package buf

// Flag records what the last write to a package did.
type Flag byte

const (
	FlagDelete Flag = 0
	FlagInsert Flag = 1
	FlagUpdate Flag = 2
)

// FlagOf decodes a flag byte. Unknown codes read as an insert.
func FlagOf(b byte) Flag {
	switch Flag(b) {
	case FlagDelete:
		return FlagDelete
	case FlagUpdate:
		return FlagUpdate
	default:
		return FlagInsert
	}
}

func (f Flag) String() string {
	switch f {
	case FlagDelete:
		return "delete"
	case FlagUpdate:
		return "update"
	default:
		return "insert"
	}
}
