package config

import (
	"fmt"
	"time"
)

// FirebaseConfig holds the Firebase Auth REST settings
type FirebaseConfig struct {
	APIKey    string `json:"-"` // Never serialize
	BaseURL   string `json:"baseUrl"`
	TimeoutMS int    `json:"timeoutMs"`
}

// IsEnabled returns true if the identity provider is configured
func (c *FirebaseConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// Endpoint returns the full URL of an accounts method, e.g. "signInWithPassword"
func (c *FirebaseConfig) Endpoint(method string) string {
	return fmt.Sprintf("%s/accounts:%s?key=%s", c.BaseURL, method, c.APIKey)
}

func (c *FirebaseConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// CloudinaryConfig holds image hosting credentials
type CloudinaryConfig struct {
	CloudName string `json:"cloudName"`
	APIKey    string `json:"-"`
	APISecret string `json:"-"`
	BaseURL   string `json:"baseUrl"`
	Folder    string `json:"folder"` // profile pictures land here
}

// IsEnabled returns true if uploads can be signed
func (c *CloudinaryConfig) IsEnabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// UploadURL is the image upload endpoint of the configured cloud
func (c *CloudinaryConfig) UploadURL() string {
	return fmt.Sprintf("%s/%s/image/upload", c.BaseURL, c.CloudName)
}
