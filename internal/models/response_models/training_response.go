package response_models

type CourseListItem struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     *string  `json:"description"`
	CoverImageURL   string   `json:"coverImageUrl"`
	PriceEur        *float64 `json:"priceEur"`
	PriceUsd        *float64 `json:"priceUsd"`
	Order           int      `json:"order"`
	TotalVideos     int64    `json:"totalVideos"`
	CompletedVideos int64    `json:"completedVideos"`
}

type CourseDetailResponse struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   *string       `json:"description"`
	CoverImageURL string        `json:"coverImageUrl"`
	Sections      []SectionItem `json:"sections"`
}

type SectionItem struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Order  int         `json:"order"`
	Videos []VideoItem `json:"videos"`
}

type VideoItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	VimeoID     string  `json:"vimeoId"`
	Duration    int     `json:"duration"`
	Order       int     `json:"order"`
	Completed   bool    `json:"completed"`
}
