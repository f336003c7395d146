package request

// MovieRequest is used for both create and update; update is a full
// replacement keyed by the title in the path.
type MovieRequest struct {
	Title       string   `json:"title" validate:"required,notblank,max=200"`
	Genre       string   `json:"genre" validate:"required,notblank,max=100"`
	Duration    int      `json:"duration" validate:"required,min=1,max=2147483647"`
	Rating      *float64 `json:"rating" validate:"required,min=0,max=10"`
	ReleaseYear int      `json:"releaseYear" validate:"required,min=1,max=2025"`
}
