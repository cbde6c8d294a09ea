package session

import (
	"context"
	"errors"
	"time"

	"github.com/clipstream/clipstream/internal/adapters/transport/http/dto"
	"github.com/clipstream/clipstream/internal/app/media"
	"github.com/clipstream/clipstream/internal/app/password"
	customErrors "github.com/clipstream/clipstream/internal/domain/errors"
	"github.com/clipstream/clipstream/internal/domain/model"
	"github.com/clipstream/clipstream/internal/domain/token"
	"github.com/clipstream/clipstream/internal/repo"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Service owns the session lifecycle: credential verification, token pair
// issuance, rotation and revocation. The refresh token persisted on the user
// row is the single source of truth for which session is alive.
type Service struct {
	userRepo repo.UserRepo
	codec    token.Codec
	hasher   *password.Hasher
	storage  media.Storage
	v        *validator.Validate
}

func New(userRepo repo.UserRepo, codec token.Codec, hasher *password.Hasher, storage media.Storage, v *validator.Validate) *Service {
	return &Service{
		userRepo: userRepo,
		codec:    codec,
		hasher:   hasher,
		storage:  storage,
		v:        v,
	}
}

func (s *Service) Register(ctx context.Context, d dto.RegisterDTO) (model.User, error) {
	if err := s.v.Struct(d); err != nil {
		return model.User{}, customErrors.NewInvalidArgument(err.Error())
	}

	passwordHash, err := s.hasher.Hash(d.Password)
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, "Register")
	}

	user := model.User{
		ID:           uuid.New(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: passwordHash,
		FullName:     d.FullName,
	}

	if _, err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.User{}, customErrors.ErrAlreadyExists
		}
		return model.User{}, customErrors.WrapInternal(err, "Register")
	}

	return user, nil
}

// Login verifies the identity/password pair and starts a fresh session. The
// newly minted refresh token overwrites whatever was persisted before, which
// revokes any prior session for this user.
func (s *Service) Login(ctx context.Context, d dto.LoginDTO) (model.TokenPair, model.User, error) {
	if err := s.v.Struct(d); err != nil {
		return model.TokenPair{}, model.User{}, customErrors.NewInvalidArgument(err.Error())
	}

	user, err := s.userRepo.GetUserByIdentity(ctx, d.Identity)
	if errors.Is(err, customErrors.ErrNotFound) {
		// same error as a wrong password, so callers cannot enumerate users
		return model.TokenPair{}, model.User{}, customErrors.ErrInvalidCredentials
	}
	if err != nil {
		return model.TokenPair{}, model.User{}, customErrors.WrapInternal(err, "Login")
	}

	ok, err := s.hasher.Verify(d.Password, user.PasswordHash)
	if err != nil {
		return model.TokenPair{}, model.User{}, customErrors.WrapInternal(err, "Login")
	}
	if !ok {
		return model.TokenPair{}, model.User{}, customErrors.ErrInvalidCredentials
	}

	pair, err := s.mintPair(user)
	if err != nil {
		return model.TokenPair{}, model.User{}, err
	}

	if err := s.userRepo.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return model.TokenPair{}, model.User{}, customErrors.WrapInternal(err, "Login")
	}

	return pair, user, nil
}

// Logout clears the persisted refresh token. Calling it for an already
// logged-out user succeeds.
func (s *Service) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		return customErrors.WrapInternal(err, "Logout")
	}
	return nil
}

// Refresh rotates the token pair. The presented token must decode under the
// refresh key AND byte-for-byte equal the value persisted on the user row;
// decode validity alone is not enough, otherwise a stolen token would survive
// the owner logging out or rotating. The swap itself is a compare-and-swap in
// the store, so two concurrent refreshes with the same token cannot both win.
func (s *Service) Refresh(ctx context.Context, presented string) (model.TokenPair, error) {
	if presented == "" {
		return model.TokenPair{}, customErrors.ErrTokenMalformed
	}

	claims, err := s.codec.ValidateRefreshToken(presented)
	if err != nil {
		return model.TokenPair{}, err
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.TokenPair{}, customErrors.ErrTokenMalformed
	}

	user, err := s.userRepo.GetUserByID(ctx, uid)
	if errors.Is(err, customErrors.ErrNotFound) {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Refresh")
	}

	pair, err := s.mintPair(user)
	if err != nil {
		return model.TokenPair{}, err
	}

	err = s.userRepo.RotateRefreshToken(ctx, user.ID, presented, pair.RefreshToken)
	if errors.Is(err, customErrors.ErrStaleToken) {
		return model.TokenPair{}, customErrors.ErrStaleToken
	}
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Refresh")
	}

	return pair, nil
}

// Validate backs the auth guard: decode the access token, then confirm the
// subject still exists. Every failure collapses to an invalid-token kind so
// the client sees a single reason.
func (s *Service) Validate(ctx context.Context, accessToken string) (model.User, error) {
	claims, err := s.codec.ValidateAccessToken(accessToken)
	if err != nil {
		return model.User{}, customErrors.ErrInvalidToken
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.User{}, customErrors.ErrInvalidToken
	}

	user, err := s.userRepo.GetUserByID(ctx, uid)
	if err != nil {
		return model.User{}, customErrors.ErrInvalidToken
	}

	return user, nil
}

func (s *Service) CurrentUser(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if errors.Is(err, customErrors.ErrNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, "CurrentUser")
	}
	return user, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, d dto.ChangePasswordDTO) error {
	if err := s.v.Struct(d); err != nil {
		return customErrors.NewInvalidArgument(err.Error())
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return customErrors.WrapInternal(err, "ChangePassword")
	}

	ok, err := s.hasher.Verify(d.OldPassword, user.PasswordHash)
	if err != nil {
		return customErrors.WrapInternal(err, "ChangePassword")
	}
	if !ok {
		return customErrors.ErrInvalidCredentials
	}

	user.PasswordHash, err = s.hasher.Hash(d.NewPassword)
	if err != nil {
		return customErrors.WrapInternal(err, "ChangePassword")
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return customErrors.WrapInternal(err, "ChangePassword")
	}
	return nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, d dto.UpdateProfileDTO) (model.User, error) {
	if err := s.v.Struct(d); err != nil {
		return model.User{}, customErrors.NewInvalidArgument(err.Error())
	}
	if d.FullName == "" && d.Email == "" {
		return model.User{}, customErrors.NewInvalidArgument("nothing to update")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, "UpdateProfile")
	}

	if d.FullName != "" {
		user.FullName = d.FullName
	}
	if d.Email != "" {
		user.Email = d.Email
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.User{}, customErrors.ErrAlreadyExists
		}
		return model.User{}, customErrors.WrapInternal(err, "UpdateProfile")
	}
	return user, nil
}

// UpdateAvatar uploads the new image first and only then swaps the URL on the
// user row; the previous object is removed afterwards so a failed upload never
// leaves the profile without an avatar.
func (s *Service) UpdateAvatar(ctx context.Context, userID uuid.UUID, up media.Upload) (model.User, error) {
	return s.updateImage(ctx, userID, up, "avatars", func(u *model.User, url string) string {
		old := u.AvatarURL
		u.AvatarURL = url
		return old
	})
}

func (s *Service) UpdateCover(ctx context.Context, userID uuid.UUID, up media.Upload) (model.User, error) {
	return s.updateImage(ctx, userID, up, "covers", func(u *model.User, url string) string {
		old := u.CoverURL
		u.CoverURL = url
		return old
	})
}

func (s *Service) updateImage(ctx context.Context, userID uuid.UUID, up media.Upload, folder string, swap func(*model.User, string) string) (model.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, "updateImage")
	}

	url, err := s.storage.Upload(ctx, folder, up)
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, "upload image")
	}

	old := swap(&user, url)
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		_ = s.storage.Delete(ctx, url)
		return model.User{}, customErrors.WrapInternal(err, "updateImage")
	}

	if old != "" {
		_ = s.storage.Delete(ctx, old)
	}
	return user, nil
}

func (s *Service) mintPair(user model.User) (model.TokenPair, error) {
	accessToken, atExp, err := s.codec.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "mint access token")
	}

	refreshToken, rtExp, err := s.codec.GenerateRefreshToken(user.ID)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "mint refresh token")
	}

	now := time.Now()
	return model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessTTL:    atExp.Sub(now),
		RefreshTTL:   rtExp.Sub(now),
		UserID:       user.ID,
	}, nil
}
