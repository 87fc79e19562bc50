package entities

import "time"

// Source is a fetched rulebook document kept for offline recompiles.
type Source struct {
	ID        string    `json:"id"`
	Address   string    `json:"address"`
	Format    string    `json:"format"`
	Checksum  string    `json:"checksum"`
	Content   []byte    `json:"-"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Compilation records one compile run.
type Compilation struct {
	ID         string    `json:"id"`
	Sources    []string  `json:"sources"`
	Mechanisms int       `json:"mechanisms"`
	Playbooks  int       `json:"playbooks"`
	Warnings   int       `json:"warnings"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Succeeded reports whether the run produced a rulebook.
func (c *Compilation) Succeeded() bool {
	return c.Error == ""
}
