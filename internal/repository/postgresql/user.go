package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
	"github.com/udev-hq/intern-portal-backend/internal/pkg/database"
)

const userColumns = `id, first_name, last_name, email, password_hash, phone, id_card_number,
		role, team_lead_id, is_active, profile_picture, id_card_front_pic, id_card_back_pic,
		cover_photo, created_at, updated_at`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.PasswordHash,
		&u.Phone,
		&u.IDCardNumber,
		&u.Role,
		&u.TeamLeadID,
		&u.IsActive,
		&u.ProfilePicture,
		&u.IDCardFrontPic,
		&u.IDCardBackPic,
		&u.CoverPhoto,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// mapUniqueViolation translates a unique-constraint violation on the users
// table into the matching domain conflict.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "email"):
			return user.ErrEmailExists
		case strings.Contains(pgErr.ConstraintName, "phone"):
			return user.ErrPhoneExists
		case strings.Contains(pgErr.ConstraintName, "id_card_number"):
			return user.ErrIDCardNumberExists
		}
	}
	return err
}

func (r *userRepositoryImpl) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			id, first_name, last_name, email, password_hash, phone, id_card_number,
			role, team_lead_id, is_active, profile_picture, id_card_front_pic, id_card_back_pic,
			created_at, updated_at
		)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING ` + userColumns

	created, err := scanUser(q.QueryRow(ctx, query,
		u.FirstName,
		u.LastName,
		u.Email,
		u.PasswordHash,
		u.Phone,
		u.IDCardNumber,
		u.Role,
		u.TeamLeadID,
		u.IsActive,
		u.ProfilePicture,
		u.IDCardFrontPic,
		u.IDCardBackPic,
	))
	if err != nil {
		return user.User{}, mapUniqueViolation(err)
	}
	return created, nil
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.first_name, u.last_name, u.email, u.password_hash, u.phone, u.id_card_number,
			   u.role, u.team_lead_id, u.is_active, u.profile_picture, u.id_card_front_pic, u.id_card_back_pic,
			   u.cover_photo, u.created_at, u.updated_at,
			   tl.id, tl.first_name, tl.last_name, tl.email
		FROM users u
		LEFT JOIN users tl ON u.team_lead_id = tl.id
		WHERE u.id = $1
	`

	var u user.User
	var tlID, tlFirst, tlLast, tlEmail *string
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Phone, &u.IDCardNumber,
		&u.Role, &u.TeamLeadID, &u.IsActive, &u.ProfilePicture, &u.IDCardFrontPic, &u.IDCardBackPic,
		&u.CoverPhoto, &u.CreatedAt, &u.UpdatedAt,
		&tlID, &tlFirst, &tlLast, &tlEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	if tlID != nil {
		u.TeamLead = &user.Summary{ID: *tlID, FirstName: *tlFirst, LastName: *tlLast, Email: *tlEmail}
	}
	return u, nil
}

func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepositoryImpl) ExistsUnique(ctx context.Context, email, phone, idCardNumber string) (bool, bool, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			EXISTS(SELECT 1 FROM users WHERE email = $1),
			EXISTS(SELECT 1 FROM users WHERE phone = $2),
			EXISTS(SELECT 1 FROM users WHERE id_card_number = $3)
	`
	var emailTaken, phoneTaken, idCardTaken bool
	err := q.QueryRow(ctx, query, email, phone, idCardNumber).Scan(&emailTaken, &phoneTaken, &idCardTaken)
	if err != nil {
		return false, false, false, err
	}
	return emailTaken, phoneTaken, idCardTaken, nil
}

func (r *userRepositoryImpl) List(ctx context.Context, sc user.UserScope, filter user.ListFilter) ([]user.User, int64, error) {
	if sc.Empty {
		return nil, 0, nil
	}

	q := GetQuerier(ctx, r.db)

	var conds []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !sc.All {
		conds = append(conds, "u.role = "+arg(sc.Role))
		if sc.TeamLeadID != "" {
			conds = append(conds, "u.team_lead_id = "+arg(sc.TeamLeadID))
		}
	} else if filter.Role != "" {
		conds = append(conds, "u.role = "+arg(filter.Role))
	}

	if filter.Status != "" {
		conds = append(conds, "u.is_active = "+arg(filter.Status == "active"))
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		p := arg(pattern)
		conds = append(conds, fmt.Sprintf("(u.first_name ILIKE %s OR u.last_name ILIKE %s OR u.email ILIKE %s)", p, p, p))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM users u " + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT u.id, u.first_name, u.last_name, u.email, u.password_hash, u.phone, u.id_card_number,
			   u.role, u.team_lead_id, u.is_active, u.profile_picture, u.id_card_front_pic, u.id_card_back_pic,
			   u.cover_photo, u.created_at, u.updated_at,
			   tl.id, tl.first_name, tl.last_name, tl.email
		FROM users u
		LEFT JOIN users tl ON u.team_lead_id = tl.id
		%s
		ORDER BY u.created_at DESC
		LIMIT %s OFFSET %s
	`, where, arg(filter.Limit), arg((filter.Page-1)*filter.Limit))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		var tlID, tlFirst, tlLast, tlEmail *string
		err := rows.Scan(
			&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Phone, &u.IDCardNumber,
			&u.Role, &u.TeamLeadID, &u.IsActive, &u.ProfilePicture, &u.IDCardFrontPic, &u.IDCardBackPic,
			&u.CoverPhoto, &u.CreatedAt, &u.UpdatedAt,
			&tlID, &tlFirst, &tlLast, &tlEmail,
		)
		if err != nil {
			return nil, 0, err
		}
		if tlID != nil {
			u.TeamLead = &user.Summary{ID: *tlID, FirstName: *tlFirst, LastName: *tlLast, Email: *tlEmail}
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepositoryImpl) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY first_name, last_name`
	rows, err := q.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepositoryImpl) ListInternees(ctx context.Context, teamLeadID *string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.first_name, u.last_name, u.email, u.password_hash, u.phone, u.id_card_number,
			   u.role, u.team_lead_id, u.is_active, u.profile_picture, u.id_card_front_pic, u.id_card_back_pic,
			   u.cover_photo, u.created_at, u.updated_at,
			   tl.id, tl.first_name, tl.last_name, tl.email
		FROM users u
		LEFT JOIN users tl ON u.team_lead_id = tl.id
		WHERE u.role = 'internee' AND ($1::text IS NULL OR u.team_lead_id = $1)
		ORDER BY u.first_name, u.last_name
	`

	rows, err := q.Query(ctx, query, teamLeadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		var tlID, tlFirst, tlLast, tlEmail *string
		err := rows.Scan(
			&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Phone, &u.IDCardNumber,
			&u.Role, &u.TeamLeadID, &u.IsActive, &u.ProfilePicture, &u.IDCardFrontPic, &u.IDCardBackPic,
			&u.CoverPhoto, &u.CreatedAt, &u.UpdatedAt,
			&tlID, &tlFirst, &tlLast, &tlEmail,
		)
		if err != nil {
			return nil, err
		}
		if tlID != nil {
			u.TeamLead = &user.Summary{ID: *tlID, FirstName: *tlFirst, LastName: *tlLast, Email: *tlEmail}
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, password_hash = $3, phone = $4, id_card_number = $5,
			profile_picture = $6, id_card_front_pic = $7, id_card_back_pic = $8, cover_photo = $9,
			updated_at = NOW()
		WHERE id = $10
	`
	tag, err := q.Exec(ctx, query,
		u.FirstName, u.LastName, u.PasswordHash, u.Phone, u.IDCardNumber,
		u.ProfilePicture, u.IDCardFrontPic, u.IDCardBackPic, u.CoverPhoto,
		u.ID,
	)
	if err != nil {
		return mapUniqueViolation(err)
	}
	if tag.RowsAffected() != 1 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *userRepositoryImpl) UpdateStatus(ctx context.Context, id string, isActive bool) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2`, isActive, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *userRepositoryImpl) UpdateRole(ctx context.Context, id string, role user.Role, teamLeadID *string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE users SET role = $1, team_lead_id = $2, updated_at = NOW() WHERE id = $3`, role, teamLeadID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *userRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return user.ErrUserHasRecords
		}
		return err
	}
	if tag.RowsAffected() != 1 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *userRepositoryImpl) HasDependentRecords(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(SELECT 1 FROM tasks WHERE assigner_id = $1 OR assignee_id = $1)
			OR EXISTS(SELECT 1 FROM leaves WHERE user_id = $1)
			OR EXISTS(SELECT 1 FROM attendance WHERE user_id = $1)
			OR EXISTS(SELECT 1 FROM users WHERE team_lead_id = $1)
	`
	var has bool
	if err := q.QueryRow(ctx, query, id).Scan(&has); err != nil {
		return false, err
	}
	return has, nil
}

func (r *userRepositoryImpl) CountByRole(ctx context.Context, role user.Role) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&count)
	return count, err
}

func (r *userRepositoryImpl) CountAll(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func (r *userRepositoryImpl) CountInternees(ctx context.Context, teamLeadID string, activeOnly bool) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE role = 'internee' AND team_lead_id = $1 AND ($2 = false OR is_active = true)`,
		teamLeadID, activeOnly,
	).Scan(&count)
	return count, err
}
