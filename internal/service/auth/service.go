package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/udev-hq/intern-portal-backend/internal/domain/auth"
	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
	"github.com/udev-hq/intern-portal-backend/internal/pkg/jwt"
	"github.com/udev-hq/intern-portal-backend/internal/service/file"
)

type authServiceImpl struct {
	userRepo    user.UserRepository
	jwt         jwt.Service
	fileService file.FileService
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service, fileService file.FileService) auth.AuthService {
	return &authServiceImpl{
		userRepo:    userRepo,
		jwt:         jwtService,
		fileService: fileService,
	}
}

func (s *authServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if !u.IsActive {
		return auth.LoginResponse{}, auth.ErrInactiveAccount
	}

	token, _, err := s.jwt.GenerateAccessToken(u.ID, u.Email, u.Role, u.TeamLeadID)
	if err != nil {
		return auth.LoginResponse{}, err
	}
	refreshToken, _, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		User:         user.ToResponse(u),
		Token:        token,
		RefreshToken: refreshToken,
	}, nil
}

func (s *authServiceImpl) Refresh(ctx context.Context, req auth.RefreshRequest) (auth.RefreshResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.RefreshResponse{}, err
	}

	userID, err := s.jwt.DecodeRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.RefreshResponse{}, auth.ErrInvalidToken
		}
		return auth.RefreshResponse{}, err
	}
	if !u.IsActive {
		return auth.RefreshResponse{}, auth.ErrInactiveAccount
	}

	token, _, err := s.jwt.GenerateAccessToken(u.ID, u.Email, u.Role, u.TeamLeadID)
	if err != nil {
		return auth.RefreshResponse{}, err
	}
	return auth.RefreshResponse{Token: token}, nil
}

func (s *authServiceImpl) GetProfile(ctx context.Context, actor user.Principal) (user.Response, error) {
	u, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return user.Response{}, err
	}
	return user.ToResponse(u), nil
}

func (s *authServiceImpl) UpdateProfile(ctx context.Context, actor user.Principal, req user.UpdateProfileRequest) (user.Response, error) {
	if err := req.Validate(); err != nil {
		return user.Response{}, err
	}

	u, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return user.Response{}, err
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.IDCardNumber != nil {
		u.IDCardNumber = *req.IDCardNumber
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.Response{}, err
		}
		u.PasswordHash = string(hash)
	}

	if req.ProfilePicture != nil {
		path, err := s.fileService.UploadProfilePicture(ctx, u.ID, req.ProfilePicture)
		if err != nil {
			return user.Response{}, err
		}
		u.ProfilePicture = &path
	}
	if req.CoverPhoto != nil {
		path, err := s.fileService.UploadCoverPhoto(ctx, u.ID, req.CoverPhoto)
		if err != nil {
			return user.Response{}, err
		}
		u.CoverPhoto = &path
	}
	if req.IDCardFrontPic != nil {
		path, err := s.fileService.UploadIDCardDocument(ctx, u.ID, "front", req.IDCardFrontPic)
		if err != nil {
			return user.Response{}, err
		}
		u.IDCardFrontPic = &path
	}
	if req.IDCardBackPic != nil {
		path, err := s.fileService.UploadIDCardDocument(ctx, u.ID, "back", req.IDCardBackPic)
		if err != nil {
			return user.Response{}, err
		}
		u.IDCardBackPic = &path
	}

	if err := s.userRepo.Update(ctx, u); err != nil {
		return user.Response{}, err
	}
	return user.ToResponse(u), nil
}

func (s *authServiceImpl) ResolvePrincipal(ctx context.Context, userID string) (user.Principal, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.Principal{}, auth.ErrInvalidToken
		}
		return user.Principal{}, err
	}
	if !u.IsActive {
		return user.Principal{}, auth.ErrInactiveAccount
	}
	return u.Principal(), nil
}
