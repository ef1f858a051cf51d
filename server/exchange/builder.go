package exchange

import "time"

// Builders accumulate fields and produce DTOs with Build. Build copies every
// slice so the built value is not affected by later calls on the builder.
// A builder must not be shared between goroutines.

type UserRequestBuilder struct {
	username string
}

func NewUserRequestBuilder() *UserRequestBuilder {
	return &UserRequestBuilder{}
}

func (b *UserRequestBuilder) SetUsername(username string) *UserRequestBuilder {
	b.username = username
	return b
}

func (b *UserRequestBuilder) Build() UserRequest {
	return UserRequest{Username: b.username}
}

type UsersRequestBuilder struct {
	users []string
}

func NewUsersRequestBuilder() *UsersRequestBuilder {
	return &UsersRequestBuilder{}
}

func (b *UsersRequestBuilder) AddUser(username string) *UsersRequestBuilder {
	b.users = append(b.users, username)
	return b
}

func (b *UsersRequestBuilder) AddUsers(usernames []string) *UsersRequestBuilder {
	b.users = append(b.users, usernames...)
	return b
}

func (b *UsersRequestBuilder) Build() UsersRequest {
	return UsersRequest{Users: copyStrings(b.users)}
}

type UpdatedUsersRequestBuilder struct {
	users []string
	since *time.Time
}

func NewUpdatedUsersRequestBuilder() *UpdatedUsersRequestBuilder {
	return &UpdatedUsersRequestBuilder{}
}

func (b *UpdatedUsersRequestBuilder) AddUser(username string) *UpdatedUsersRequestBuilder {
	b.users = append(b.users, username)
	return b
}

func (b *UpdatedUsersRequestBuilder) AddUsers(usernames []string) *UpdatedUsersRequestBuilder {
	b.users = append(b.users, usernames...)
	return b
}

// Since sets the point in time to look for changes from. The last call wins.
func (b *UpdatedUsersRequestBuilder) Since(since time.Time) *UpdatedUsersRequestBuilder {
	b.since = &since
	return b
}

func (b *UpdatedUsersRequestBuilder) Build() UpdatedUsersRequest {
	request := UpdatedUsersRequest{Users: copyStrings(b.users)}
	if b.since != nil {
		since := NewTimestamp(*b.since)
		request.Since = &since
	}
	return request
}

type UserResponseBuilder struct {
	username   string
	attributes Attributes
}

func NewUserResponseBuilder() *UserResponseBuilder {
	return &UserResponseBuilder{}
}

func (b *UserResponseBuilder) SetUsername(username string) *UserResponseBuilder {
	b.username = username
	return b
}

func (b *UserResponseBuilder) AddValueAttribute(name string, value *string) *UserResponseBuilder {
	var v *string
	if value != nil {
		v = StringValue(*value)
	}
	b.attributes = append(b.attributes, ValueAttribute{Name: name, Value: v})
	return b
}

func (b *UserResponseBuilder) AddValuesAttribute(name string, values ...string) *UserResponseBuilder {
	b.attributes = append(b.attributes, ValuesAttribute{Name: name, Values: copyStrings(values)})
	return b
}

func (b *UserResponseBuilder) Build() UserResponse {
	attributes := make(Attributes, len(b.attributes))
	copy(attributes, b.attributes)
	return UserResponse{Username: b.username, Attributes: attributes}
}

type UsersResponseBuilder struct {
	users []UserResponse
}

func NewUsersResponseBuilder() *UsersResponseBuilder {
	return &UsersResponseBuilder{}
}

func (b *UsersResponseBuilder) AddUser(user UserResponse) *UsersResponseBuilder {
	b.users = append(b.users, user)
	return b
}

func (b *UsersResponseBuilder) Build() UsersResponse {
	users := make([]UserResponse, len(b.users))
	copy(users, b.users)
	return UsersResponse{Users: users}
}

type UpdatedUsersResponseBuilder struct {
	users []UserUpdateInformation
}

func NewUpdatedUsersResponseBuilder() *UpdatedUsersResponseBuilder {
	return &UpdatedUsersResponseBuilder{}
}

func (b *UpdatedUsersResponseBuilder) AddUser(username string, updated time.Time) *UpdatedUsersResponseBuilder {
	b.users = append(b.users, UserUpdateInformation{Username: username, Updated: NewTimestamp(updated)})
	return b
}

func (b *UpdatedUsersResponseBuilder) Build() UpdatedUsersResponse {
	users := make([]UserUpdateInformation, len(b.users))
	copy(users, b.users)
	return UpdatedUsersResponse{Users: users}
}

func copyStrings(values []string) []string {
	copied := make([]string, len(values))
	copy(copied, values)
	return copied
}
