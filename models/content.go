package models

type ProjectStatus string

const (
	StatusLive       ProjectStatus = "Live"
	StatusCompleted  ProjectStatus = "Completed"
	StatusInProgress ProjectStatus = "In Progress"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case "", StatusLive, StatusCompleted, StatusInProgress:
		return true
	}
	return false
}

type Article struct {
	Slug           string   `yaml:"slug" json:"slug"`
	Title          string   `yaml:"title" json:"title"`
	Description    string   `yaml:"description" json:"description"`
	Summary        string   `yaml:"summary" json:"summary"`
	CanonicalPath  string   `yaml:"canonicalPath" json:"canonicalPath"`
	HeroImage      string   `yaml:"heroImage" json:"heroImage,omitempty"`
	PublishedAt    string   `yaml:"publishedAt" json:"publishedAt"`
	UpdatedAt      string   `yaml:"updatedAt" json:"updatedAt,omitempty"`
	ReadTime       string   `yaml:"readTime" json:"readTime"`
	Tags           []string `yaml:"tags" json:"tags"`
	Keywords       []string `yaml:"keywords" json:"keywords,omitempty"`
	FeaturedOnHome bool     `yaml:"featuredOnHome" json:"featuredOnHome,omitempty"`
}

type Project struct {
	Slug           string        `yaml:"slug" json:"slug"`
	Title          string        `yaml:"title" json:"title"`
	Description    string        `yaml:"description" json:"description"`
	Image          string        `yaml:"image" json:"image"`
	Tags           []string      `yaml:"tags" json:"tags"`
	Href           string        `yaml:"href" json:"href"`
	Github         string        `yaml:"github" json:"github,omitempty"`
	Demo           string        `yaml:"demo" json:"demo,omitempty"`
	Status         ProjectStatus `yaml:"status" json:"status,omitempty"`
	Live           bool          `yaml:"live" json:"live,omitempty"`
	Period         string        `yaml:"period" json:"period"`
	Order          int           `yaml:"order" json:"order"`
	LastUpdated    string        `yaml:"lastUpdated" json:"lastUpdated"`
	FeaturedOnHome bool          `yaml:"featuredOnHome" json:"featuredOnHome,omitempty"`
}

type Experience struct {
	ID             string   `yaml:"id" json:"id"`
	Company        string   `yaml:"company" json:"company"`
	Position       string   `yaml:"position" json:"position"`
	Type           string   `yaml:"type" json:"type"`
	Location       string   `yaml:"location" json:"location"`
	StartDate      string   `yaml:"startDate" json:"startDate"`
	EndDate        string   `yaml:"endDate" json:"endDate"`
	Duration       string   `yaml:"duration" json:"duration"`
	WorkMode       string   `yaml:"workMode" json:"workMode"`
	Description    string   `yaml:"description" json:"description"`
	Skills         []string `yaml:"skills" json:"skills"`
	Achievements   []string `yaml:"achievements" json:"achievements,omitempty"`
	FeaturedOnHome bool     `yaml:"featuredOnHome" json:"featuredOnHome,omitempty"`
}

type Certification struct {
	Title          string   `yaml:"title" json:"title"`
	Issuer         string   `yaml:"issuer" json:"issuer"`
	IssueDate      string   `yaml:"issueDate" json:"issueDate"`
	ExpirationDate string   `yaml:"expirationDate" json:"expirationDate,omitempty"`
	CredentialID   string   `yaml:"credentialId" json:"credentialId,omitempty"`
	CredentialURL  string   `yaml:"credentialUrl" json:"credentialUrl,omitempty"`
	Skills         []string `yaml:"skills" json:"skills,omitempty"`
	Logo           string   `yaml:"logo" json:"logo,omitempty"`
	LinkedInURL    string   `yaml:"linkedInUrl" json:"linkedInUrl,omitempty"`
}
