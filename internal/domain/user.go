package domain

import "time"

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
}

// DemoUser is the account every demo login resolves to.
var DemoUser = User{
	ID:        "1",
	Email:     "demo@example.com",
	FirstName: "Demo",
	LastName:  "User",
	CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
