package room

// Photo is one gallery image.
type Photo struct {
	URL     string `yaml:"url"`
	Caption string `yaml:"caption"`
}

// Params carries the mode-specific content for a build. Every field is
// optional; empty values produce placeholders, never errors.
type Params struct {
	// Lobby
	Categories []string

	// Gallery
	Title            string
	Description      string
	MainThumbnailURL string
	LongExtract      string
	RelatedTitles    []string
	Photos           []Photo
	Trail            []string
}

// DefaultCategories is used when a lobby is built without categories.
var DefaultCategories = []string{
	"History", "Science", "Geography", "Art", "Music", "Technology",
	"Philosophy", "Sports", "Literature", "Biology", "Mathematics", "Film",
}

// previousTitle returns the article the south door leads back to, or "" for
// the lobby.
func (p Params) previousTitle() string {
	for i := len(p.Trail) - 1; i >= 0; i-- {
		if t := p.Trail[i]; t != "" && t != p.Title {
			return t
		}
	}
	return ""
}
