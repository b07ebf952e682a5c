package models

// Theme is the client branding served by GET /themes/client/email/:email.
type Theme struct {
	Colors    *ThemeColors `json:"colors"`
	Branding  Branding     `json:"branding"`
	CustomCSS *string      `json:"customCSS"`
}

type ThemeColors struct {
	Primary       string `json:"primary"`
	Secondary     string `json:"secondary"`
	Background    string `json:"background"`
	Surface       string `json:"surface"`
	Text          string `json:"text"`
	TextSecondary string `json:"textSecondary"`
	Border        string `json:"border"`
	Error         string `json:"error"`
	Success       string `json:"success"`
	Warning       string `json:"warning"`
	Info          string `json:"info"`
}

type Branding struct {
	AppName string  `json:"appName"`
	Logo    *string `json:"logo"`
	Company *string `json:"company"`
}
