package domain

// Video is a tutorial found through the video search collaborator.
type Video struct {
	ID        int64
	Title     string
	URL       string
	Duration  string
	Thumbnail string
}

type Article struct {
	ID       int64
	Title    string
	URL      string
	ReadTime string
}

// Documentation points at reference material. Type is a free form label such
// as "Official Docs" or "Tutorial".
type Documentation struct {
	ID    int64
	Title string
	URL   string
	Type  string
}
