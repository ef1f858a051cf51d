package exchange

// UserResponse carries the attributes of one user.
type UserResponse struct {
	Username   string     `json:"username"`
	Attributes Attributes `json:"attributes"`
}

// UsersResponse carries the attributes of several users.
type UsersResponse struct {
	Users []UserResponse `json:"users"`
}

// UserUpdateInformation tells when a user was last changed.
type UserUpdateInformation struct {
	Username string    `json:"username"`
	Updated  Timestamp `json:"updated"`
}

// UpdatedUsersResponse lists the users changed since the requested time.
type UpdatedUsersResponse struct {
	Users []UserUpdateInformation `json:"users"`
}

// Usernames returns the usernames in response order.
func (r UpdatedUsersResponse) Usernames() []string {
	usernames := make([]string, 0, len(r.Users))
	for _, user := range r.Users {
		usernames = append(usernames, user.Username)
	}
	return usernames
}
