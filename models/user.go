package models

// User is the authenticated session user. It exists only while signed in;
// nothing about it is persisted by this service.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
