package types

// SocialLink is one entry of the storefront's social networks list.
type SocialLink struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Icon    string `json:"icon,omitempty"`
	Emoji   string `json:"emoji,omitempty"`
	URL     string `json:"url"`
	Enabled bool   `json:"enabled"`
}

// CloneSocialLinks returns an independent copy of links.
func CloneSocialLinks(links []SocialLink) []SocialLink {
	if links == nil {
		return nil
	}
	out := make([]SocialLink, len(links))
	copy(out, links)
	return out
}
