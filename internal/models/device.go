package models

// Device is a platform-owned device record. The id is always assigned by the platform.
type Device struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
