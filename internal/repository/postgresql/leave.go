package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/udev-hq/intern-portal-backend/internal/domain/leave"
	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
	"github.com/udev-hq/intern-portal-backend/internal/pkg/database"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

const leaveSelectWithUsers = `
	SELECT l.id, l.user_id, l.leave_type, l.start_date, l.end_date, l.reason,
		   l.status, l.approved_by, l.approved_at, l.rejection_reason,
		   l.created_at, l.updated_at,
		   u.first_name, u.last_name, u.email,
		   ap.first_name, ap.last_name, ap.email
	FROM leaves l
	JOIN users u ON l.user_id = u.id
	LEFT JOIN users ap ON l.approved_by = ap.id
`

func scanLeaveWithUsers(row pgx.Row) (leave.Leave, error) {
	var l leave.Leave
	var uFirst, uLast, uEmail string
	var apFirst, apLast, apEmail *string
	err := row.Scan(
		&l.ID, &l.UserID, &l.LeaveType, &l.StartDate, &l.EndDate, &l.Reason,
		&l.Status, &l.ApprovedBy, &l.ApprovedAt, &l.RejectionReason,
		&l.CreatedAt, &l.UpdatedAt,
		&uFirst, &uLast, &uEmail,
		&apFirst, &apLast, &apEmail,
	)
	if err != nil {
		return leave.Leave{}, err
	}
	l.User = &user.Summary{ID: l.UserID, FirstName: uFirst, LastName: uLast, Email: uEmail}
	if l.ApprovedBy != nil && apFirst != nil {
		l.Approver = &user.Summary{ID: *l.ApprovedBy, FirstName: *apFirst, LastName: *apLast, Email: *apEmail}
	}
	return l, nil
}

func (r *leaveRepositoryImpl) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leaves (id, user_id, leave_type, start_date, end_date, reason, status, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		l.UserID, l.LeaveType, l.StartDate, l.EndDate, l.Reason, l.Status,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return leave.Leave{}, err
	}
	return l, nil
}

func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	l, err := scanLeaveWithUsers(q.QueryRow(ctx, leaveSelectWithUsers+` WHERE l.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, err
	}
	return l, nil
}

func (r *leaveRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, leaveSelectWithUsers+` WHERE l.user_id = $1 ORDER BY l.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaves []leave.Leave
	for rows.Next() {
		l, err := scanLeaveWithUsers(rows)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

func (r *leaveRepositoryImpl) List(ctx context.Context, sc leave.LeaveScope, filter leave.ListFilter) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	var conds []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !sc.All {
		conds = append(conds, "l.user_id = "+arg(sc.OwnerID))
	}
	if filter.Status != "" {
		conds = append(conds, "l.status = "+arg(filter.Status))
	}
	if filter.UserID != "" {
		conds = append(conds, "l.user_id = "+arg(filter.UserID))
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		s := arg(*filter.StartDate)
		e := arg(*filter.EndDate)
		conds = append(conds, fmt.Sprintf("(l.start_date BETWEEN %s AND %s OR l.end_date BETWEEN %s AND %s)", s, e, s, e))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := q.Query(ctx, leaveSelectWithUsers+" "+where+" ORDER BY l.created_at DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaves []leave.Leave
	for rows.Next() {
		l, err := scanLeaveWithUsers(rows)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

func (r *leaveRepositoryImpl) HasOverlapping(ctx context.Context, userID string, start, end string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	// Two inclusive ranges [s1,e1] and [s2,e2] intersect iff s1 <= e2 AND s2 <= e1.
	query := `
		SELECT EXISTS(
			SELECT 1 FROM leaves
			WHERE user_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3::date
			  AND $2::date <= end_date
		)
	`
	var exists bool
	if err := q.QueryRow(ctx, query, userID, start, end).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *leaveRepositoryImpl) Update(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	// The write is conditional on the row still being pending, so two
	// concurrent verdicts cannot both land.
	query := `
		UPDATE leaves
		SET status = $1, approved_by = $2, approved_at = $3, rejection_reason = $4, updated_at = NOW()
		WHERE id = $5 AND status = 'pending'
		RETURNING updated_at
	`
	err := q.QueryRow(ctx, query,
		l.Status, l.ApprovedBy, l.ApprovedAt, l.RejectionReason, l.ID,
	).Scan(&l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Leave{}, leave.ErrAlreadyProcessed
		}
		return leave.Leave{}, err
	}
	return l, nil
}

func (r *leaveRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leaves WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return leave.ErrLeaveNotFound
	}
	return nil
}
