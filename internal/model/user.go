package model

// UserProfile is the shopper profile delivered by the external identity
// provider callback and persisted as the currentUser document.
type UserProfile struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}
