package content

// AdCopyVariant is one platform-shaped piece of ad copy.
type AdCopyVariant struct {
	Platform       string         `json:"platform"`
	Headline       string         `json:"headline"`
	PrimaryText    string         `json:"primary_text"`
	CallToAction   string         `json:"call_to_action"`
	Description    string         `json:"description,omitempty"`
	CharacterCount map[string]int `json:"character_counts,omitempty"`
}

// AdCopySet bundles the ad copy variants produced for one run.
type AdCopySet struct {
	Variants []AdCopyVariant `json:"variants"`
}

// Count returns the number of variants.
func (s *AdCopySet) Count() int {
	if s == nil {
		return 0
	}
	return len(s.Variants)
}

// SocialCaption is one ready-to-post caption.
type SocialCaption struct {
	Platform string   `json:"platform"`
	Text     string   `json:"text"`
	Hashtags []string `json:"hashtags,omitempty"`
}

// SocialCaptionSet bundles captions across platforms.
type SocialCaptionSet struct {
	Captions []SocialCaption `json:"captions"`
}

// Count returns the number of captions.
func (s *SocialCaptionSet) Count() int {
	if s == nil {
		return 0
	}
	return len(s.Captions)
}

// ImageAsset is a creative brief for one static image.
type ImageAsset struct {
	Platform    string `json:"platform,omitempty"`
	Prompt      string `json:"prompt"`
	Style       string `json:"style,omitempty"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
	Caption     string `json:"caption,omitempty"`
}

// UgcScript is a short-form creator video script.
type UgcScript struct {
	Title           string   `json:"title"`
	Hook            string   `json:"hook"`
	Scenes          []string `json:"scenes"`
	CallToAction    string   `json:"call_to_action"`
	DurationSeconds int      `json:"duration_seconds"`
}

// EmailAsset is one email creative block.
type EmailAsset struct {
	Subject      string `json:"subject"`
	PreviewText  string `json:"preview_text,omitempty"`
	Heading      string `json:"heading"`
	Body         string `json:"body"`
	CallToAction string `json:"call_to_action"`
}
