package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/customer-directory/internal/domain/entity"
	"github.com/oksasatya/customer-directory/internal/infrastructure/memory"
	"github.com/oksasatya/customer-directory/pkg/helpers"
)

func newAuthFixture(t *testing.T) (*AuthService, *CustomerService) {
	t.Helper()
	r := memory.NewCustomerRepository()
	customers := NewCustomerService(r, memory.NewBlobStore(), plainHasher{}, testBucket, quietLogger())
	tokens := helpers.NewJWTManager("test-secret", time.Hour, "customer-directory")
	return NewAuthService(r, plainHasher{}, tokens, quietLogger()), customers
}

func TestLoginIssuesTokenForEmail(t *testing.T) {
	ctx := context.Background()
	a, customers := newAuthFixture(t)
	addAlex(t, customers)

	res, err := a.Login(ctx, "alex@x.com", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.True(t, res.ExpiresAt.After(time.Now()))
	assert.Equal(t, "alex@x.com", res.Customer.Username)
	assert.Equal(t, []string{entity.RoleUser}, res.Customer.Roles)

	assert.True(t, a.Validate(res.Token, "alex@x.com"))
	assert.False(t, a.Validate(res.Token, "someone@x.com"))
	assert.False(t, a.Validate(res.Token+"x", "alex@x.com"))

	claims, err := a.Tokens.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleUser}, claims.Roles)
}

func TestLoginFailuresLookAlike(t *testing.T) {
	ctx := context.Background()
	a, customers := newAuthFixture(t)
	addAlex(t, customers)

	_, wrongSecret := a.Login(ctx, "alex@x.com", "nope")
	_, unknownEmail := a.Login(ctx, "ghost@x.com", "pw")

	assert.ErrorIs(t, wrongSecret, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongSecret, unknownEmail)
}

func TestLoginStorageFailure(t *testing.T) {
	r := &mockCustomerRepo{}
	r.On("FindByEmail", mock.Anything, "alex@x.com").Return(nil, errors.New("conn reset"))
	a := NewAuthService(r, plainHasher{}, helpers.NewJWTManager("s", time.Hour, ""), quietLogger())

	_, err := a.Login(context.Background(), "alex@x.com", "pw")
	assert.ErrorIs(t, err, ErrStorage)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	a, customers := newAuthFixture(t)
	alex := addAlex(t, customers)

	res, err := a.Login(ctx, "alex@x.com", "pw")
	require.NoError(t, err)

	v, err := a.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, alex.ID, v.ID)

	_, err = a.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, customers.DeleteByID(ctx, alex.ID))
	_, err = a.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIssueTokenForRegistration(t *testing.T) {
	a, _ := newAuthFixture(t)

	tok, exp, err := a.IssueToken("new@x.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)
	assert.True(t, a.Validate(tok, "new@x.com"))
}
