package plugin

// Submission represents a plugins/{id}.json record submitted by a plugin author
type Submission struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Repo        string `json:"repo"`
}

// Manifest represents the manifest.json at the root of a plugin repository
type Manifest struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Version       string        `json:"version"`
	MinAppVersion string        `json:"minAppVersion"`
	Author        string        `json:"author"`
	Description   string        `json:"description"`
	Main          string        `json:"main"`
	Permissions   []string      `json:"permissions"`
	AuthorURL     string        `json:"authorUrl,omitempty"`
	HelpURL       string        `json:"helpUrl,omitempty"`
	FundingURL    string        `json:"fundingUrl,omitempty"`
	SupportLinks  []SupportLink `json:"supportLinks,omitempty"`
	Tags          []string      `json:"tags,omitempty"`
	Category      string        `json:"category,omitempty"`
}

// SupportLink is a named link shown on the plugin's directory page
type SupportLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
