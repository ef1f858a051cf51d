package exchange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsersRequestBuilder(t *testing.T) {
	t.Run("keeps append order without dedup", func(t *testing.T) {
		request := NewUsersRequestBuilder().
			AddUser("foo").
			AddUser("bla").
			AddUser("foo").
			Build()

		assert.Equal(t, []string{"foo", "bla", "foo"}, request.Users)
	})

	t.Run("add users appends every entry", func(t *testing.T) {
		request := NewUsersRequestBuilder().
			AddUser("foo").
			AddUsers([]string{"bla", "baz"}).
			Build()

		assert.Equal(t, []string{"foo", "bla", "baz"}, request.Users)
	})

	t.Run("empty builder yields an empty list", func(t *testing.T) {
		request := NewUsersRequestBuilder().Build()
		assert.NotNil(t, request.Users)
		assert.Empty(t, request.Users)
	})

	t.Run("built request does not follow the builder", func(t *testing.T) {
		builder := NewUsersRequestBuilder().AddUser("foo")
		request := builder.Build()
		builder.AddUser("bla")

		assert.Equal(t, []string{"foo"}, request.Users)
		assert.Equal(t, []string{"foo", "bla"}, builder.Build().Users)
	})
}

func TestUpdatedUsersRequestBuilder(t *testing.T) {
	first := time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	t.Run("accumulates users", func(t *testing.T) {
		request := NewUpdatedUsersRequestBuilder().
			AddUser("foo").
			AddUsers([]string{"bla"}).
			Build()

		assert.Equal(t, []string{"foo", "bla"}, request.Users)
		assert.Nil(t, request.Since)
	})

	t.Run("last since wins", func(t *testing.T) {
		request := NewUpdatedUsersRequestBuilder().
			Since(first).
			Since(second).
			Build()

		require.NotNil(t, request.Since)
		assert.True(t, second.Equal(request.Since.Time))
	})

	t.Run("encodes an unset since as null", func(t *testing.T) {
		request := NewUpdatedUsersRequestBuilder().Build()

		data, err := JSONSerializer{}.Encode(request, true)
		require.NoError(t, err)
		assert.JSONEq(t, `{"users":[],"since":null}`, string(data))
	})

	t.Run("encodes since with the wire layout", func(t *testing.T) {
		since := time.Date(2018, time.January, 1, 1, 0, 0, 0, time.FixedZone("", 3600))
		request := NewUpdatedUsersRequestBuilder().AddUser("foo").Since(since).Build()

		data, err := JSONSerializer{}.Encode(request, true)
		require.NoError(t, err)
		assert.JSONEq(t, `{"users":["foo"],"since":"2018-01-01T01:00:00+0100"}`, string(data))
	})
}

func TestUserRequestBuilder(t *testing.T) {
	assert.Equal(t, "", NewUserRequestBuilder().Build().Username)

	request := NewUserRequestBuilder().
		SetUsername("foo").
		SetUsername("bla").
		Build()
	assert.Equal(t, "bla", request.Username)
}

func TestResponseBuilders(t *testing.T) {
	value := "x"
	user := NewUserResponseBuilder().
		SetUsername("foo").
		AddValueAttribute("a", &value).
		AddValueAttribute("b", nil).
		AddValuesAttribute("c", "y", "z").
		Build()
	value = "changed"

	assert.Equal(t, UserResponse{
		Username: "foo",
		Attributes: Attributes{
			ValueAttribute{Name: "a", Value: StringValue("x")},
			ValueAttribute{Name: "b"},
			ValuesAttribute{Name: "c", Values: []string{"y", "z"}},
		},
	}, user)

	users := NewUsersResponseBuilder().AddUser(user).Build()
	assert.Equal(t, []UserResponse{user}, users.Users)

	updated := time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC)
	updatedUsers := NewUpdatedUsersResponseBuilder().AddUser("foo", updated).Build()
	require.Len(t, updatedUsers.Users, 1)
	assert.Equal(t, "foo", updatedUsers.Users[0].Username)
	assert.True(t, updated.Equal(updatedUsers.Users[0].Updated.Time))
	assert.Equal(t, []string{"foo"}, updatedUsers.Usernames())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(NewUserRequestBuilder().SetUsername("foo").Build()))
	assert.Error(t, Validate(NewUserRequestBuilder().Build()))

	assert.NoError(t, Validate(NewUsersRequestBuilder().AddUser("foo").Build()))
	assert.Error(t, Validate(NewUsersRequestBuilder().Build()))

	assert.NoError(t, Validate(NewUpdatedUsersRequestBuilder().Build()))
}
