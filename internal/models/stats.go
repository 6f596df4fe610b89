// ABOUTME: Derived statistics projections for users and notes.

package models

type UserStats struct {
	TotalNotes       int `json:"totalNotes"`
	TotalPublicNotes int `json:"totalPublicNotes"`
	TotalBookmarks   int `json:"totalBookmarks"`
	TotalViews       int `json:"totalViews"`
	TotalLikes       int `json:"totalLikes"`
	Followers        int `json:"followers"`
	Following        int `json:"following"`
}

type NoteStats struct {
	Views     int `json:"views"`
	Likes     int `json:"likes"`
	Bookmarks int `json:"bookmarks"`
	Comments  int `json:"comments"`
}
