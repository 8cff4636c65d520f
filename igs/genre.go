package igs

// Genre represents the game genre
type Genre uint32

// These cover the released PGM2 titles
const (
	Other Genre = iota
	Action
	BeatEmUp
	Shooter
	Fighting
	Puzzle
)

func (g Genre) String() string {
	strings := map[Genre]string{
		Other:    "Other",
		Action:   "Action",
		BeatEmUp: "BeatEmUp",
		Shooter:  "Shooter",
		Fighting: "Fighting",
		Puzzle:   "Puzzle",
	}

	return strings[g]
}
