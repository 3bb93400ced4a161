package marketplace

import "github.com/egoavara/plugin-directory/internal/plugin"

// SchemaVersion is the directory document format version
const SchemaVersion = 1

// Directory represents the generated plugins.json document
type Directory struct {
	Version     int     `json:"version"`
	GeneratedAt string  `json:"generatedAt"`
	Plugins     []Entry `json:"plugins"`
}

// Entry represents a plugin listed in the directory
type Entry struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	Author        string               `json:"author"`
	Version       string               `json:"version"`
	MinAppVersion string               `json:"minAppVersion"`
	Repo          string               `json:"repo"`
	Permissions   []string             `json:"permissions"`
	AuthorURL     string               `json:"authorUrl,omitempty"`
	HelpURL       string               `json:"helpUrl,omitempty"`
	FundingURL    string               `json:"fundingUrl,omitempty"`
	SupportLinks  []plugin.SupportLink `json:"supportLinks,omitempty"`
	Tags          []string             `json:"tags,omitempty"`
	Category      string               `json:"category,omitempty"`
	UpdatedAt     string               `json:"updatedAt"`
}

// FindPlugin finds a plugin by id in the directory
func (d *Directory) FindPlugin(id string) *Entry {
	for i := range d.Plugins {
		if d.Plugins[i].ID == id {
			return &d.Plugins[i]
		}
	}
	return nil
}

// NewEntry projects the listed manifest fields plus the submission's repository URL
func NewEntry(sub *plugin.Submission, m *plugin.Manifest, updatedAt string) Entry {
	permissions := m.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	return Entry{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Author:        m.Author,
		Version:       m.Version,
		MinAppVersion: m.MinAppVersion,
		Repo:          sub.Repo,
		Permissions:   permissions,
		AuthorURL:     m.AuthorURL,
		HelpURL:       m.HelpURL,
		FundingURL:    m.FundingURL,
		SupportLinks:  m.SupportLinks,
		Tags:          m.Tags,
		Category:      m.Category,
		UpdatedAt:     updatedAt,
	}
}
