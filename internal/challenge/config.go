package challenge

// Config describes how a challenge is instantiated inside a game path.
type Config struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Challenge   string      `json:"challenge" yaml:"challenge"` // id of the challenge Type
	Tasks       TaskPattern `json:"tasks" yaml:"tasks"`
	// UnlockPoints is the XP a player needs before the challenge opens.
	UnlockPoints int     `json:"unlockPoints" yaml:"unlock_points"`
	Position     *[2]int `json:"position,omitempty" yaml:"position,omitempty"`
}

// Unlocked reports whether a player with xp points may play the challenge.
func (c Config) Unlocked(xp int) bool {
	return xp >= c.UnlockPoints
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	if c.Tasks.Range != nil {
		r := *c.Tasks.Range
		out.Tasks.Range = &r
	}
	if c.Position != nil {
		p := *c.Position
		out.Position = &p
	}
	return out
}
