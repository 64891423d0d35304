package services

import (
	"context"
	"errors"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobboard/internal/models/db_models"
	"jobboard/internal/models/request_models"
	"jobboard/internal/models/response_models"
	"jobboard/internal/repositories"
	"jobboard/pkg/logger"
	mem "jobboard/pkg/memcache"
	"jobboard/pkg/utils"
)

const (
	msgUsernameTaken = "That username is taken. Please choose a different one."
	msgEmailTaken    = "That email is taken. Please choose a different one."
	msgNoSuchEmail   = "There is no account with that email. You must register first."
)

// FileSaver stores an uploaded file at dst. gin's Context.SaveUploadedFile
// satisfies it.
type FileSaver func(file *multipart.FileHeader, dst string) error

type LoginResult struct {
	Token  string
	Claims *utils.Claims
	User   *db_models.User
}

type AccountServiceInterface interface {
	Register(ctx context.Context, request request_models.RegisterRequest) (*response_models.RegisterResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, claims *utils.Claims) error
	Profile(ctx context.Context, userID uuid.UUID) (*db_models.User, error)
	UpdateAccount(ctx context.Context, userID uuid.UUID, request request_models.UpdateAccountRequest, picture *multipart.FileHeader, save FileSaver) (*db_models.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyResetToken(ctx context.Context, token string) (*db_models.User, error)
	ResetPassword(ctx context.Context, token, password string) error
	ListUsers(ctx context.Context, search string, page, pageSize int) (*response_models.Page[response_models.AccountResponse], error)
	EnsureAdmin(ctx context.Context, username, email, password string) error
}

type AccountService struct {
	users     repositories.UserRepository
	tokens    *utils.TokenManager
	sessions  mem.SessionStore
	mail      IMailService
	baseURL   string
	uploadDir string
}

func NewAccountService(
	users repositories.UserRepository,
	tokens *utils.TokenManager,
	sessions mem.SessionStore,
	mail IMailService,
	baseURL, uploadDir string,
) AccountServiceInterface {
	return &AccountService{
		users:     users,
		tokens:    tokens,
		sessions:  sessions,
		mail:      mail,
		baseURL:   strings.TrimRight(baseURL, "/"),
		uploadDir: uploadDir,
	}
}

func (a *AccountService) checkUsernameFree(ctx context.Context, username string) error {
	existing, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return utils.NewFieldError("username", msgUsernameTaken, utils.ErrUsernameTaken)
	}
	return nil
}

func (a *AccountService) checkEmailFree(ctx context.Context, email string) error {
	existing, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return utils.NewFieldError("email", msgEmailTaken, utils.ErrEmailTaken)
	}
	return nil
}

// duplicateField names the column that lost a unique race on insert or update.
func (a *AccountService) duplicateField(ctx context.Context, email string) error {
	if err := a.checkEmailFree(ctx, email); err != nil {
		return err
	}
	return utils.NewFieldError("username", msgUsernameTaken, utils.ErrUsernameTaken)
}

func (a *AccountService) Register(ctx context.Context, request request_models.RegisterRequest) (*response_models.RegisterResponse, error) {
	username := strings.TrimSpace(request.Username)
	email := strings.TrimSpace(request.Email)

	if err := a.checkUsernameFree(ctx, username); err != nil {
		return nil, err
	}
	if err := a.checkEmailFree(ctx, email); err != nil {
		return nil, err
	}

	dob, err := time.Parse(utils.DateLayout, request.DateOfBirth)
	if err != nil {
		return nil, utils.NewFieldError("dob", "Not a valid date value.", err)
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	user := &db_models.User{
		FirstName:    strings.TrimSpace(request.FirstName),
		LastName:     strings.TrimSpace(request.LastName),
		Street:       request.Street,
		City:         request.City,
		Zipcode:      request.Zipcode,
		Phone:        request.Phone,
		Email:        email,
		DateOfBirth:  dob,
		Gender:       request.Gender,
		VisaStatus:   request.VisaStatus,
		Username:     username,
		ImageFile:    db_models.DefaultImageFile,
		PasswordHash: hashedPassword,
		Role:         db_models.RoleUser,
		Status:       db_models.EntitlementRegular,
	}

	if err := a.users.Insert(ctx, user); err != nil {
		if errors.Is(err, utils.ErrDuplicateEntry) {
			return nil, a.duplicateField(ctx, email)
		}
		logger.Error().Err(err).Str("username", username).Msg("insert user failed")
		return nil, utils.ErrDatabaseError
	}

	token, err := a.tokens.CreateRegistrationToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("name", user.FirstName)
	q.Set("token", token)

	logger.Info().Str("username", user.Username).Msg("account created, proceeding to payment")
	return &response_models.RegisterResponse{
		Username: user.Username,
		Redirect: "/purchase?" + q.Encode(),
	}, nil
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*LoginResult, error) {
	user, err := a.users.FindByEmail(ctx, strings.TrimSpace(request.Email))
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(user.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, claims, err := a.tokens.CreateSessionToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Claims: claims, User: user}, nil
}

func (a *AccountService) Logout(ctx context.Context, claims *utils.Claims) error {
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	return a.sessions.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

func (a *AccountService) Profile(ctx context.Context, userID uuid.UUID) (*db_models.User, error) {
	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}
	return user, nil
}

var pictureExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

func (a *AccountService) UpdateAccount(
	ctx context.Context,
	userID uuid.UUID,
	request request_models.UpdateAccountRequest,
	picture *multipart.FileHeader,
	save FileSaver,
) (*db_models.User, error) {
	user, err := a.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(request.Username)
	email := strings.TrimSpace(request.Email)
	fields := map[string]interface{}{}

	// Uniqueness only matters for values that actually change.
	if username != user.Username {
		if err := a.checkUsernameFree(ctx, username); err != nil {
			return nil, err
		}
		fields["username"] = username
	}
	if email != user.Email {
		if err := a.checkEmailFree(ctx, email); err != nil {
			return nil, err
		}
		fields["email"] = email
	}

	if picture != nil {
		ext := strings.ToLower(filepath.Ext(picture.Filename))
		if !pictureExts[ext] {
			return nil, utils.NewFieldError("picture", "File does not have an approved extension: jpg, png", utils.ErrInvalidImage)
		}
		name, err := utils.GenerateSecureToken(8)
		if err != nil {
			return nil, err
		}
		name += ext
		if err := save(picture, filepath.Join(a.uploadDir, name)); err != nil {
			logger.Error().Err(err).Str("user_id", userID.String()).Msg("save picture failed")
			return nil, err
		}
		fields["image_file"] = name
	}

	if len(fields) > 0 {
		if err := a.users.UpdateProfile(ctx, userID, fields); err != nil {
			if errors.Is(err, utils.ErrDuplicateEntry) {
				return nil, a.duplicateField(ctx, email)
			}
			return nil, utils.ErrDatabaseError
		}
	}
	return a.Profile(ctx, userID)
}

func (a *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := a.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.NewFieldError("email", msgNoSuchEmail, utils.ErrAccountNotFound)
	}

	token, err := a.tokens.CreateResetToken(user.ID)
	if err != nil {
		return err
	}
	link := a.baseURL + "/reset_password/" + token
	if err := a.mail.SendPasswordReset(user.Email, link); err != nil {
		logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("send reset mail failed")
		return err
	}
	return nil
}

// VerifyResetToken returns nil, nil for an invalid, expired or orphaned token.
func (a *AccountService) VerifyResetToken(ctx context.Context, token string) (*db_models.User, error) {
	id, ok := a.tokens.VerifyResetToken(token)
	if !ok {
		return nil, nil
	}
	user, err := a.users.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return user, nil
}

func (a *AccountService) ResetPassword(ctx context.Context, token, password string) error {
	user, err := a.VerifyResetToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil {
		return utils.ErrInvalidToken
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if err := a.users.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return utils.ErrDatabaseError
	}
	logger.Info().Str("user_id", user.ID.String()).Msg("password updated")
	return nil
}

func (a *AccountService) ListUsers(ctx context.Context, search string, page, pageSize int) (*response_models.Page[response_models.AccountResponse], error) {
	users, total, err := a.users.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	items := make([]response_models.AccountResponse, 0, len(users))
	for i := range users {
		items = append(items, response_models.NewAccountResponse(&users[i]))
	}
	return &response_models.Page[response_models.AccountResponse]{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// EnsureAdmin creates the bootstrap Admin unless that email already exists.
func (a *AccountService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	existing, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	admin := &db_models.User{
		FirstName:    "Admin",
		LastName:     "Admin",
		Email:        email,
		Username:     username,
		DateOfBirth:  time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		ImageFile:    db_models.DefaultImageFile,
		PasswordHash: hashedPassword,
		Role:         db_models.RoleAdmin,
		Status:       db_models.EntitlementRegular,
	}
	if err := a.users.Insert(ctx, admin); err != nil {
		return err
	}
	logger.Info().Str("username", username).Msg("bootstrap admin created")
	return nil
}
