// Package models defines data structures used across the application.
// File: models/club.go
package models

// ----------------------- club model -----------------------

// Club is one of the department's student clubs. Clubs are compiled in and never persisted.
type Club struct {
	ID          string `json:"id"`          // stable slug
	Name        string `json:"name"`        // display name
	Description string `json:"description"` // markdown
}

// clubs is the static club table, in display order.
var clubs = []Club{
	{
		ID:          "cine-club",
		Name:        "Cine Club",
		Description: "Explore the world of cinema with our Cine Club. We celebrate the art of filmmaking, organize movie screenings, discussions, and creative workshops to foster a passion for visual storytelling among students.",
	},
	{
		ID:          "quiz-club",
		Name:        "Quiz Club",
		Description: "Challenge your mind with our Quiz Club. We organize engaging quizzes, competitions, and knowledge-sharing sessions to promote intellectual growth and healthy competition among participants.",
	},
	{
		ID:          "wall-magazine",
		Name:        "Wall Magazine",
		Description: "Stay updated with our Wall Magazine. This platform showcases creative writings, articles, and artistic contributions from students, providing a space for expression and recognition of talent.",
	},
	{
		ID:          "reading-session",
		Name:        "Reading Session",
		Description: "Join our Reading Sessions and dive into the world of literature. We organize interactive reading events, book discussions, and literary appreciation sessions to cultivate a reading culture.",
	},
}

// Clubs returns a copy of the club table.
func Clubs() []Club {
	out := make([]Club, len(clubs))
	copy(out, clubs)
	return out
}

// LookupClub finds a club by id.
func LookupClub(id string) (Club, bool) {
	for _, c := range clubs {
		if c.ID == id {
			return c, true
		}
	}
	return Club{}, false
}
