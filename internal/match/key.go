package match

import "strings"

// Key identifies a stored match. It is derived from the metadata and is not
// unique: matches sharing date, location and opponent map to the same key.
type Key string

// UnsetDateLabel stands in for the date part of a key when no date is set.
const UnsetDateLabel = "未設定"

var keyPartReplacer = strings.NewReplacer(
	" ", "_",
	"　", "_",
	"/", "_",
	`\`, "_",
)

// KeyOf derives the storage key: date(YYYYMMDD) + "_" + location + "_" + opponent.
// Spaces (ASCII or full-width) and path separators become underscores.
func KeyOf(info MatchInfo) Key {
	date := info.Date.Compact()
	if date == "" {
		date = UnsetDateLabel
	}
	return Key(date + "_" + keyPart(info.Location) + "_" + keyPart(info.Opponent))
}

func keyPart(s string) string {
	return keyPartReplacer.Replace(s)
}

// Valid reports whether k can name a file inside the storage directory.
func (k Key) Valid() bool {
	s := string(k)
	if s == "" || s == "." || s == ".." {
		return false
	}
	if strings.HasPrefix(s, ".") {
		return false
	}
	return !strings.ContainsAny(s, `/\`+"\x00")
}

func (k Key) String() string {
	return string(k)
}
