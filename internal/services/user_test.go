package services

import (
	"context"
	"testing"

	"github.com/Renal37/delux-perfumes/internal/memstore"
	"github.com/Renal37/delux-perfumes/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUser(t *testing.T) {
	service := NewUserService(memstore.New())

	user, err := service.CreateUser(context.Background(), models.UserInput{
		Name:     stringPtr("Ann"),
		Email:    stringPtr(" Ann@Example.com "),
		Password: stringPtr("secret"),
	})
	require.NoError(t, err)

	assert.Equal(t, "ann@example.com", user.Email)
	assert.NotEqual(t, "secret", user.Hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte("secret")))

	found, err := service.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, found)
}

func TestCreateUserValidation(t *testing.T) {
	longPassword := string(make([]byte, 73))

	testCases := []struct {
		testName        string
		input           models.UserInput
		expectedMessage string
	}{
		{
			testName:        "Нет имени",
			input:           models.UserInput{Email: stringPtr("ann@example.com")},
			expectedMessage: "User name is required",
		},
		{
			testName:        "Нет email",
			input:           models.UserInput{Name: stringPtr("Ann")},
			expectedMessage: "User email is required",
		},
		{
			testName:        "Пустой пароль",
			input:           models.UserInput{Name: stringPtr("Ann"), Email: stringPtr("ann@example.com"), Password: stringPtr("")},
			expectedMessage: "Password cannot be empty",
		},
		{
			testName:        "Слишком длинный пароль",
			input:           models.UserInput{Name: stringPtr("Ann"), Email: stringPtr("ann@example.com"), Password: &longPassword},
			expectedMessage: "Password must be at most 72 bytes",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			_, err := NewUserService(memstore.New()).CreateUser(context.Background(), tc.input)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.expectedMessage, validationErr.Message)
		})
	}
}

func TestUserEmailIsUnique(t *testing.T) {
	service := NewUserService(memstore.New())

	ann, err := service.CreateUser(context.Background(), models.UserInput{Name: stringPtr("Ann"), Email: stringPtr("ann@example.com")})
	require.NoError(t, err)

	bob, err := service.CreateUser(context.Background(), models.UserInput{Name: stringPtr("Bob"), Email: stringPtr("bob@example.com")})
	require.NoError(t, err)

	_, err = service.CreateUser(context.Background(), models.UserInput{Name: stringPtr("Ann 2"), Email: stringPtr("ANN@example.com")})
	assert.Equal(t, errUserEmailTaken, err)

	_, err = service.UpdateUser(context.Background(), bob.ID, models.UserInput{Email: stringPtr("ann@example.com")})
	assert.Equal(t, errUserEmailTaken, err)

	updated, err := service.UpdateUser(context.Background(), ann.ID, models.UserInput{Phone: stringPtr("+971 50 000 0000")})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", updated.Email)
	assert.Equal(t, "+971 50 000 0000", updated.Phone)

	users, err := service.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestDeleteUser(t *testing.T) {
	service := NewUserService(memstore.New())

	user, err := service.CreateUser(context.Background(), models.UserInput{Name: stringPtr("Ann"), Email: stringPtr("ann@example.com")})
	require.NoError(t, err)

	require.NoError(t, service.DeleteUser(context.Background(), user.ID))

	var notFoundErr *NotFoundError
	assert.ErrorAs(t, service.DeleteUser(context.Background(), user.ID), &notFoundErr)
	assert.ErrorAs(t, service.DeleteUser(context.Background(), "42"), &notFoundErr)

	_, err = service.GetUser(context.Background(), user.ID)
	assert.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "User not found", err.Error())
}
