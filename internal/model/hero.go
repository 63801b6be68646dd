package model

// Hero media types.
const (
	HeroTypeImage = "image"
	HeroTypeVideo = "video"
)

// HeroContent is the single landing-page hero asset. It is overwritten
// wholesale on each admin edit. URL is either an external URL or an embedded
// data URL produced by the media pipeline.
type HeroContent struct {
	Type string `json:"type"`
	URL  string `json:"url"`
	Alt  string `json:"alt"`
}

// DefaultHeroContent is served when no hero has been configured yet.
func DefaultHeroContent() HeroContent {
	return HeroContent{
		Type: HeroTypeImage,
		URL:  "https://images.unsplash.com/photo-1483985988355-763728e1935b?w=1920&q=80",
		Alt:  "Fashion Model",
	}
}
