package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/udev-hq/intern-portal-backend/internal/domain/notification"
	"github.com/udev-hq/intern-portal-backend/internal/domain/scope"
	"github.com/udev-hq/intern-portal-backend/internal/domain/task"
	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
	"github.com/udev-hq/intern-portal-backend/internal/pkg/database"
	"github.com/udev-hq/intern-portal-backend/internal/pkg/email"
	"github.com/udev-hq/intern-portal-backend/internal/pkg/jwt"
	"github.com/udev-hq/intern-portal-backend/internal/repository/postgresql"
	"github.com/udev-hq/intern-portal-backend/internal/service/file"
)

type userServiceImpl struct {
	db               *database.DB
	userRepo         user.UserRepository
	taskRepo         task.TaskRepository
	notificationRepo notification.NotificationRepository
	emailService     email.EmailService
	fileService      file.FileService
	jwt              jwt.Service
	loginURL         string
}

func NewUserService(
	db *database.DB,
	userRepo user.UserRepository,
	taskRepo task.TaskRepository,
	notificationRepo notification.NotificationRepository,
	emailService email.EmailService,
	fileService file.FileService,
	jwtService jwt.Service,
	loginURL string,
) user.UserService {
	return &userServiceImpl{
		db:               db,
		userRepo:         userRepo,
		taskRepo:         taskRepo,
		notificationRepo: notificationRepo,
		emailService:     emailService,
		fileService:      fileService,
		jwt:              jwtService,
		loginURL:         loginURL,
	}
}

// Register creates the user row, its welcome notification and the credential
// email as one unit. The email is sent while the transaction is still open;
// a delivery failure rolls the whole registration back so no account exists
// that was never notified.
func (s *userServiceImpl) Register(ctx context.Context, actor user.Principal, req user.RegisterRequest) (user.Response, string, error) {
	if !actor.IsAdmin() {
		return user.Response{}, "", user.ErrAdminPrivilegeReq
	}
	if err := req.Validate(); err != nil {
		return user.Response{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.Response{}, "", err
	}

	newUser := user.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		IDCardNumber: req.IDCardNumber,
		Role:         req.Role,
		TeamLeadID:   req.TeamLeadID,
		IsActive:     true,
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		emailTaken, phoneTaken, idCardTaken, err := s.userRepo.ExistsUnique(txCtx, req.Email, req.Phone, req.IDCardNumber)
		if err != nil {
			return err
		}
		if emailTaken {
			return user.ErrEmailExists
		}
		if phoneTaken {
			return user.ErrPhoneExists
		}
		if idCardTaken {
			return user.ErrIDCardNumberExists
		}

		if req.TeamLeadID != nil {
			lead, err := s.userRepo.GetByID(txCtx, *req.TeamLeadID)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					return user.ErrInvalidTeamLead
				}
				return err
			}
			if lead.Role != user.RoleTeamLead {
				return user.ErrInvalidTeamLead
			}
		}

		created, err := s.userRepo.Create(txCtx, newUser)
		if err != nil {
			return err
		}

		var pictureChanged bool
		if req.ProfilePicture != nil {
			path, err := s.fileService.UploadProfilePicture(txCtx, created.ID, req.ProfilePicture)
			if err != nil {
				return err
			}
			created.ProfilePicture = &path
			pictureChanged = true
		}
		if req.IDCardFrontPic != nil {
			path, err := s.fileService.UploadIDCardDocument(txCtx, created.ID, "front", req.IDCardFrontPic)
			if err != nil {
				return err
			}
			created.IDCardFrontPic = &path
			pictureChanged = true
		}
		if req.IDCardBackPic != nil {
			path, err := s.fileService.UploadIDCardDocument(txCtx, created.ID, "back", req.IDCardBackPic)
			if err != nil {
				return err
			}
			created.IDCardBackPic = &path
			pictureChanged = true
		}
		if pictureChanged {
			if err := s.userRepo.Update(txCtx, created); err != nil {
				return err
			}
		}
		newUser = created

		message := fmt.Sprintf("Welcome aboard, %s! Your account is ready.", created.FirstName)
		_, err = s.notificationRepo.Create(txCtx, notification.Notification{
			SenderID:    &actor.ID,
			RecipientID: created.ID,
			Message:     message,
		})
		if err != nil {
			return err
		}

		if err := s.emailService.SendWelcome(created.Email, created.FirstName, created.Email, req.Password, s.loginURL); err != nil {
			slog.Error("Welcome email failed, rolling back registration", "email", created.Email, "error", err)
			return user.ErrWelcomeDispatchFailed
		}
		return nil
	})
	if err != nil {
		return user.Response{}, "", err
	}

	token, _, err := s.jwt.GenerateAccessToken(newUser.ID, newUser.Email, newUser.Role, newUser.TeamLeadID)
	if err != nil {
		return user.Response{}, "", err
	}

	return user.ToResponse(newUser), token, nil
}

func (s *userServiceImpl) List(ctx context.Context, actor user.Principal, filter user.ListFilter) (user.ListResponse, error) {
	filter.Normalize()

	sc, err := scope.ForUserList(actor, filter.Role)
	if err != nil {
		return user.ListResponse{}, err
	}
	if sc.Empty {
		return user.ListResponse{
			Users: []user.Response{},
			Page:  filter.Page,
			Limit: filter.Limit,
		}, nil
	}

	users, total, err := s.userRepo.List(ctx, sc, filter)
	if err != nil {
		return user.ListResponse{}, err
	}

	responses := make([]user.Response, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return user.ListResponse{
		Users:      responses,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *userServiceImpl) Get(ctx context.Context, actor user.Principal, id string) (user.Response, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.Response{}, err
	}

	switch {
	case actor.IsAdmin():
	case actor.ID == id:
	case actor.IsTeamLead() && u.TeamLeadID != nil && *u.TeamLeadID == actor.ID:
	default:
		return user.Response{}, user.ErrAccessDenied
	}
	return user.ToResponse(u), nil
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, actor user.Principal, id string, req user.UpdateProfileRequest) (user.Response, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return user.Response{}, user.ErrAccessDenied
	}
	if err := req.Validate(); err != nil {
		return user.Response{}, err
	}

	u, err := s.userRepo.GetByID(ctx, id)
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

func (s *userServiceImpl) ListTeamLeads(ctx context.Context) ([]user.Response, error) {
	leads, err := s.userRepo.ListByRole(ctx, user.RoleTeamLead)
	if err != nil {
		return nil, err
	}

	responses := make([]user.Response, 0, len(leads))
	for _, u := range leads {
		responses = append(responses, user.ToResponse(u))
	}
	return responses, nil
}

func (s *userServiceImpl) ListInternees(ctx context.Context, actor user.Principal, teamLeadID *string) ([]user.Response, error) {
	switch {
	case actor.IsAdmin():
		// optional teamLeadID filter passes through
	case actor.IsTeamLead():
		// team leads only ever see their own internees
		teamLeadID = &actor.ID
	default:
		return nil, user.ErrAccessDenied
	}

	internees, err := s.userRepo.ListInternees(ctx, teamLeadID)
	if err != nil {
		return nil, err
	}

	responses := make([]user.Response, 0, len(internees))
	for _, u := range internees {
		responses = append(responses, user.ToResponse(u))
	}
	return responses, nil
}

func (s *userServiceImpl) UpdateStatus(ctx context.Context, id string, req user.UpdateStatusRequest) error {
	return s.userRepo.UpdateStatus(ctx, id, req.IsActive)
}

func (s *userServiceImpl) UpdateRole(ctx context.Context, id string, req user.UpdateRoleRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	teamLeadID := req.TeamLeadID
	if req.Role != user.RoleInternee {
		teamLeadID = nil
	}
	if teamLeadID != nil {
		lead, err := s.userRepo.GetByID(ctx, *teamLeadID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return user.ErrInvalidTeamLead
			}
			return err
		}
		if lead.Role != user.RoleTeamLead {
			return user.ErrInvalidTeamLead
		}
	}

	return s.userRepo.UpdateRole(ctx, id, req.Role, teamLeadID)
}

func (s *userServiceImpl) Delete(ctx context.Context, id string) error {
	hasRecords, err := s.userRepo.HasDependentRecords(ctx, id)
	if err != nil {
		return err
	}
	if hasRecords {
		return user.ErrUserHasRecords
	}
	return s.userRepo.Delete(ctx, id)
}

func (s *userServiceImpl) DashboardStats(ctx context.Context, actor user.Principal) (user.DashboardStats, error) {
	switch actor.Role {
	case user.RoleAdmin:
		return s.adminStats(ctx)
	case user.RoleTeamLead:
		return s.teamLeadStats(ctx, actor.ID)
	default:
		return s.memberStats(ctx, actor.ID)
	}
}

func (s *userServiceImpl) adminStats(ctx context.Context) (user.DashboardStats, error) {
	var stats user.DashboardStats

	totalUsers, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return stats, err
	}
	totalInternees, err := s.userRepo.CountByRole(ctx, user.RoleInternee)
	if err != nil {
		return stats, err
	}
	totalTeamLeads, err := s.userRepo.CountByRole(ctx, user.RoleTeamLead)
	if err != nil {
		return stats, err
	}
	totalEmployees, err := s.userRepo.CountByRole(ctx, user.RoleEmployee)
	if err != nil {
		return stats, err
	}
	totalTasks, err := s.taskRepo.CountAll(ctx)
	if err != nil {
		return stats, err
	}
	pendingTasks, err := s.taskRepo.CountByStatus(ctx, task.StatusSubmitted)
	if err != nil {
		return stats, err
	}
	completedTasks, err := s.taskRepo.CountByStatus(ctx, task.StatusAccepted)
	if err != nil {
		return stats, err
	}
	rejectedTasks, err := s.taskRepo.CountByStatus(ctx, task.StatusRejected)
	if err != nil {
		return stats, err
	}

	stats.TotalUsers = &totalUsers
	stats.TotalInternees = &totalInternees
	stats.TotalTeamLeads = &totalTeamLeads
	stats.TotalEmployees = &totalEmployees
	stats.TotalTasks = &totalTasks
	stats.PendingTasks = &pendingTasks
	stats.CompletedTasks = &completedTasks
	stats.RejectedTasks = &rejectedTasks
	return stats, nil
}

func (s *userServiceImpl) teamLeadStats(ctx context.Context, teamLeadID string) (user.DashboardStats, error) {
	var stats user.DashboardStats

	totalInternees, err := s.userRepo.CountInternees(ctx, teamLeadID, false)
	if err != nil {
		return stats, err
	}
	activeInternees, err := s.userRepo.CountInternees(ctx, teamLeadID, true)
	if err != nil {
		return stats, err
	}
	totalTasks, err := s.taskRepo.CountByTeamLead(ctx, teamLeadID, nil)
	if err != nil {
		return stats, err
	}
	submitted := task.StatusSubmitted
	pendingTasks, err := s.taskRepo.CountByTeamLead(ctx, teamLeadID, &submitted)
	if err != nil {
		return stats, err
	}

	stats.TotalInternees = &totalInternees
	stats.ActiveInternees = &activeInternees
	stats.TotalTasks = &totalTasks
	stats.PendingTasks = &pendingTasks
	return stats, nil
}

func (s *userServiceImpl) memberStats(ctx context.Context, userID string) (user.DashboardStats, error) {
	var stats user.DashboardStats

	totalTasks, err := s.taskRepo.CountByAssignee(ctx, userID, nil)
	if err != nil {
		return stats, err
	}
	assigned := task.StatusAssigned
	pendingTasks, err := s.taskRepo.CountByAssignee(ctx, userID, &assigned)
	if err != nil {
		return stats, err
	}
	accepted := task.StatusAccepted
	completedTasks, err := s.taskRepo.CountByAssignee(ctx, userID, &accepted)
	if err != nil {
		return stats, err
	}

	stats.TotalTasks = &totalTasks
	stats.PendingTasks = &pendingTasks
	stats.CompletedTasks = &completedTasks
	return stats, nil
}
