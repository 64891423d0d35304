package services_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jobboard/internal/models/db_models"
	"jobboard/internal/models/request_models"
	"jobboard/internal/repositories/mocks"
	"jobboard/internal/services"
	mem "jobboard/pkg/memcache"
	"jobboard/pkg/utils"
)

type recordingMail struct {
	to, link string
	err      error
}

func (m *recordingMail) SendPasswordReset(to, link string) error {
	m.to, m.link = to, link
	return m.err
}

func newTokens() *utils.TokenManager {
	return utils.NewTokenManager("test-secret", time.Hour, 1800*time.Second, time.Hour)
}

type accountFixture struct {
	users    *mocks.UserRepository
	mail     *recordingMail
	sessions *mem.RevokedSessions
	tokens   *utils.TokenManager
	svc      services.AccountServiceInterface
}

func newAccountFixture() *accountFixture {
	f := &accountFixture{
		users:    new(mocks.UserRepository),
		mail:     &recordingMail{},
		sessions: mem.NewRevokedSessions(),
		tokens:   newTokens(),
	}
	f.svc = services.NewAccountService(f.users, f.tokens, f.sessions, f.mail, "http://jobs.test/", "uploads")
	return f
}

func validRegistration() request_models.RegisterRequest {
	return request_models.RegisterRequest{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Street:          "1 Main St",
		City:            "Boston",
		Zipcode:         12345,
		Phone:           "6175550100",
		Email:           "ada@mit.edu",
		DateOfBirth:     "1999-12-10",
		Gender:          "Female",
		VisaStatus:      "F-1",
		Username:        "ada",
		Password:        "Secret1!",
		ConfirmPassword: "Secret1!",
	}
}

func TestAccountService_Register_Success(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()
	req := validRegistration()

	f.users.On("FindByUsername", ctx, "ada").Return(nil, nil).Once()
	f.users.On("FindByEmail", ctx, "ada@mit.edu").Return(nil, nil).Once()
	f.users.On("Insert", ctx, mock.MatchedBy(func(u *db_models.User) bool {
		assert.Equal(t, db_models.RoleUser, u.Role)
		assert.Equal(t, db_models.EntitlementRegular, u.Status)
		assert.NoError(t, utils.ComparePasswords(u.PasswordHash, "Secret1!"))
		assert.Equal(t, 1999, u.DateOfBirth.Year())
		return true
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*db_models.User).ID = uuid.New()
	}).Return(nil).Once()

	res, err := f.svc.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "ada", res.Username)

	redirect, err := url.Parse(res.Redirect)
	require.NoError(t, err)
	assert.Equal(t, "/purchase", redirect.Path)
	assert.Equal(t, "Ada", redirect.Query().Get("name"))

	claims, ok := f.tokens.VerifyRegistrationToken(redirect.Query().Get("token"))
	require.True(t, ok)
	assert.Equal(t, "ada", claims.Username)

	f.users.AssertExpectations(t)
}

func TestAccountService_Register_UsernameTaken(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()

	f.users.On("FindByUsername", ctx, "ada").Return(&db_models.User{Username: "ada"}, nil).Once()

	_, err := f.svc.Register(ctx, validRegistration())

	var fieldErr *utils.FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "username", fieldErr.Field)
	assert.Equal(t, "That username is taken. Please choose a different one.", fieldErr.Message)
	assert.ErrorIs(t, err, utils.ErrUsernameTaken)
	f.users.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestAccountService_Register_EmailTaken(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()

	f.users.On("FindByUsername", ctx, "ada").Return(nil, nil).Once()
	f.users.On("FindByEmail", ctx, "ada@mit.edu").Return(&db_models.User{Email: "ada@mit.edu"}, nil).Once()

	_, err := f.svc.Register(ctx, validRegistration())

	var fieldErr *utils.FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "email", fieldErr.Field)
	assert.Equal(t, "That email is taken. Please choose a different one.", fieldErr.Message)
}

func TestAccountService_Register_LostInsertRace(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()

	f.users.On("FindByUsername", ctx, "ada").Return(nil, nil).Once()
	f.users.On("FindByEmail", ctx, "ada@mit.edu").Return(nil, nil).Twice()
	f.users.On("Insert", ctx, mock.Anything).Return(utils.ErrDuplicateEntry).Once()

	_, err := f.svc.Register(ctx, validRegistration())
	assert.ErrorIs(t, err, utils.ErrUsernameTaken)
}

func TestAccountService_Login(t *testing.T) {
	hash, err := utils.HashPassword("Secret1!")
	require.NoError(t, err)
	user := &db_models.User{Email: "ada@mit.edu", PasswordHash: hash, Role: db_models.RoleAdmin}
	user.ID = uuid.New()

	tests := []struct {
		name     string
		email    string
		password string
		found    *db_models.User
		wantErr  error
	}{
		{name: "valid", email: "ada@mit.edu", password: "Secret1!", found: user},
		{name: "wrong password", email: "ada@mit.edu", password: "Secret2!", found: user, wantErr: utils.ErrInvalidCredentials},
		{name: "unknown email", email: "nobody@mit.edu", password: "Secret1!", wantErr: utils.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAccountFixture()
			ctx := context.Background()
			if tt.found != nil {
				f.users.On("FindByEmail", ctx, tt.email).Return(tt.found, nil).Once()
			} else {
				f.users.On("FindByEmail", ctx, tt.email).Return(nil, nil).Once()
			}

			res, err := f.svc.Login(ctx, request_models.LoginRequest{Email: tt.email, Password: tt.password})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			claims, err := f.tokens.ValidateSessionToken(res.Token)
			require.NoError(t, err)
			assert.Equal(t, user.ID.String(), claims.UserID)
			assert.Equal(t, "Admin", claims.Role)
		})
	}
}

func TestAccountService_LogoutRevokesSession(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()

	_, claims, err := f.tokens.CreateSessionToken(uuid.New(), "User")
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, claims))

	revoked, err := f.sessions.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestAccountService_RequestPasswordReset(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		f := newAccountFixture()
		ctx := context.Background()
		f.users.On("FindByEmail", ctx, "nobody@mit.edu").Return(nil, nil).Once()

		err := f.svc.RequestPasswordReset(ctx, "nobody@mit.edu")

		var fieldErr *utils.FieldError
		require.True(t, errors.As(err, &fieldErr))
		assert.Equal(t, "There is no account with that email. You must register first.", fieldErr.Message)
		assert.Empty(t, f.mail.to)
	})

	t.Run("mails a working link", func(t *testing.T) {
		f := newAccountFixture()
		ctx := context.Background()
		user := &db_models.User{Email: "ada@mit.edu"}
		user.ID = uuid.New()
		f.users.On("FindByEmail", ctx, "ada@mit.edu").Return(user, nil).Once()

		require.NoError(t, f.svc.RequestPasswordReset(ctx, "ada@mit.edu"))
		assert.Equal(t, "ada@mit.edu", f.mail.to)
		require.True(t, strings.HasPrefix(f.mail.link, "http://jobs.test/reset_password/"))

		token := strings.TrimPrefix(f.mail.link, "http://jobs.test/reset_password/")
		id, ok := f.tokens.VerifyResetToken(token)
		require.True(t, ok)
		assert.Equal(t, user.ID, id)
	})
}

func TestAccountService_ResetPassword(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()
	user := &db_models.User{Email: "ada@mit.edu"}
	user.ID = uuid.New()

	token, err := f.tokens.CreateResetToken(user.ID)
	require.NoError(t, err)

	f.users.On("FindByID", ctx, user.ID).Return(user, nil).Once()
	f.users.On("UpdatePassword", ctx, user.ID, mock.MatchedBy(func(hash string) bool {
		return utils.ComparePasswords(hash, "NewPass1!") == nil
	})).Return(nil).Once()

	require.NoError(t, f.svc.ResetPassword(ctx, token, "NewPass1!"))
	assert.ErrorIs(t, f.svc.ResetPassword(ctx, "garbage", "NewPass1!"), utils.ErrInvalidToken)
	f.users.AssertExpectations(t)
}

func TestAccountService_VerifyResetToken_OrphanedUser(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()
	id := uuid.New()
	token, err := f.tokens.CreateResetToken(id)
	require.NoError(t, err)

	f.users.On("FindByID", ctx, id).Return(nil, nil).Once()

	user, err := f.svc.VerifyResetToken(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestAccountService_UpdateAccount(t *testing.T) {
	ctx := context.Background()
	current := &db_models.User{Username: "ada", Email: "ada@mit.edu"}
	current.ID = uuid.New()

	t.Run("unchanged values skip uniqueness checks", func(t *testing.T) {
		f := newAccountFixture()
		f.users.On("FindByID", ctx, current.ID).Return(current, nil).Twice()

		_, err := f.svc.UpdateAccount(ctx, current.ID,
			request_models.UpdateAccountRequest{Username: "ada", Email: "ada@mit.edu"}, nil, nil)
		require.NoError(t, err)
		f.users.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
		f.users.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("taken username", func(t *testing.T) {
		f := newAccountFixture()
		f.users.On("FindByID", ctx, current.ID).Return(current, nil).Once()
		f.users.On("FindByUsername", ctx, "grace").Return(&db_models.User{Username: "grace"}, nil).Once()

		_, err := f.svc.UpdateAccount(ctx, current.ID,
			request_models.UpdateAccountRequest{Username: "grace", Email: "ada@mit.edu"}, nil, nil)
		assert.ErrorIs(t, err, utils.ErrUsernameTaken)
	})

	t.Run("picture is renamed and stored", func(t *testing.T) {
		f := newAccountFixture()
		f.users.On("FindByID", ctx, current.ID).Return(current, nil).Twice()

		var savedTo string
		f.users.On("UpdateProfile", ctx, current.ID, mock.MatchedBy(func(fields map[string]interface{}) bool {
			name, _ := fields["image_file"].(string)
			return strings.HasSuffix(name, ".png") && len(name) == 16+len(".png")
		})).Return(nil).Once()

		save := func(_ *multipart.FileHeader, dst string) error {
			savedTo = dst
			return nil
		}
		_, err := f.svc.UpdateAccount(ctx, current.ID,
			request_models.UpdateAccountRequest{Username: "ada", Email: "ada@mit.edu"},
			&multipart.FileHeader{Filename: "me.PNG"}, save)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(savedTo, "uploads/"))
		f.users.AssertExpectations(t)
	})

	t.Run("rejects other formats", func(t *testing.T) {
		f := newAccountFixture()
		f.users.On("FindByID", ctx, current.ID).Return(current, nil).Once()

		_, err := f.svc.UpdateAccount(ctx, current.ID,
			request_models.UpdateAccountRequest{Username: "ada", Email: "ada@mit.edu"},
			&multipart.FileHeader{Filename: "me.gif"}, nil)
		assert.ErrorIs(t, err, utils.ErrInvalidImage)
	})
}
