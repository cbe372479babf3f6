package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/udev-hq/intern-portal-backend/internal/domain/task"
	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
	"github.com/udev-hq/intern-portal-backend/internal/pkg/database"
)

type taskRepositoryImpl struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepositoryImpl{db: db}
}

const taskSelectWithParticipants = `
	SELECT t.id, t.title, t.description, t.status, t.priority, t.due_date,
		   t.assigner_id, t.assignee_id, t.submission_file, t.submission_notes,
		   t.submitted_at, t.feedback, t.created_at, t.updated_at,
		   ar.first_name, ar.last_name, ar.email,
		   ae.first_name, ae.last_name, ae.email, ae.team_lead_id
	FROM tasks t
	JOIN users ar ON t.assigner_id = ar.id
	JOIN users ae ON t.assignee_id = ae.id
`

func scanTaskWithParticipants(row pgx.Row) (task.Task, error) {
	var t task.Task
	var arFirst, arLast, arEmail string
	var aeFirst, aeLast, aeEmail string
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate,
		&t.AssignerID, &t.AssigneeID, &t.SubmissionFile, &t.SubmissionNotes,
		&t.SubmittedAt, &t.Feedback, &t.CreatedAt, &t.UpdatedAt,
		&arFirst, &arLast, &arEmail,
		&aeFirst, &aeLast, &aeEmail, &t.AssigneeTeamLeadID,
	)
	if err != nil {
		return task.Task{}, err
	}
	t.Assigner = &user.Summary{ID: t.AssignerID, FirstName: arFirst, LastName: arLast, Email: arEmail}
	t.Assignee = &user.Summary{ID: t.AssigneeID, FirstName: aeFirst, LastName: aeLast, Email: aeEmail}
	return t, nil
}

func (r *taskRepositoryImpl) Create(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tasks (
			id, title, description, status, priority, due_date, assigner_id, assignee_id,
			created_at, updated_at
		)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.AssignerID, t.AssigneeID,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return task.Task{}, err
	}
	return t, nil
}

func (r *taskRepositoryImpl) GetByID(ctx context.Context, id string) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	t, err := scanTaskWithParticipants(q.QueryRow(ctx, taskSelectWithParticipants+` WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, err
	}
	return t, nil
}

// scopeCondition compiles a TaskScope into a WHERE fragment over the joined
// task row. An unrestricted scope yields no condition.
func scopeCondition(sc task.TaskScope, arg func(v interface{}) string) string {
	if sc.All {
		return ""
	}

	var alts []string
	if sc.AssigneeID != "" {
		alts = append(alts, "t.assignee_id = "+arg(sc.AssigneeID))
	}
	if sc.AssignerID != "" {
		alts = append(alts, "t.assigner_id = "+arg(sc.AssignerID))
	}
	if sc.TeamLeadID != "" {
		alts = append(alts, "ae.team_lead_id = "+arg(sc.TeamLeadID))
	}
	if len(alts) == 0 {
		// A scope with no matchable identity sees nothing.
		return "FALSE"
	}
	return "(" + strings.Join(alts, " OR ") + ")"
}

func (r *taskRepositoryImpl) List(ctx context.Context, sc task.TaskScope, filter task.ListFilter) ([]task.Task, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conds []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if c := scopeCondition(sc, arg); c != "" {
		conds = append(conds, c)
	}
	if filter.Search != "" {
		conds = append(conds, "t.title ILIKE "+arg("%"+filter.Search+"%"))
	}
	if filter.Status != "" {
		conds = append(conds, "t.status = "+arg(filter.Status))
	}
	if filter.Priority != "" {
		conds = append(conds, "t.priority = "+arg(filter.Priority))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	countQuery := `
		SELECT COUNT(*)
		FROM tasks t
		JOIN users ae ON t.assignee_id = ae.id ` + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`%s %s ORDER BY t.created_at DESC LIMIT %s OFFSET %s`,
		taskSelectWithParticipants, where, arg(filter.Limit), arg((filter.Page-1)*filter.Limit))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTaskWithParticipants(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func (r *taskRepositoryImpl) Update(ctx context.Context, t task.Task, from ...task.Status) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tasks
		SET status = $1, submission_file = $2, submission_notes = $3, submitted_at = $4,
			feedback = $5, updated_at = NOW()
		WHERE id = $6
	`
	args := []interface{}{t.Status, t.SubmissionFile, t.SubmissionNotes, t.SubmittedAt, t.Feedback, t.ID}
	if len(from) > 0 {
		placeholders := make([]string, len(from))
		for i, st := range from {
			args = append(args, string(st))
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		query += ` AND status IN (` + strings.Join(placeholders, ", ") + `)`
	}
	query += ` RETURNING updated_at`

	err := q.QueryRow(ctx, query, args...).Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, err
	}
	return t, nil
}

func (r *taskRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return task.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepositoryImpl) CountAll(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&count)
	return count, err
}

func (r *taskRepositoryImpl) CountByStatus(ctx context.Context, status task.Status) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE status = $1`, status).Scan(&count)
	return count, err
}

func (r *taskRepositoryImpl) CountByAssignee(ctx context.Context, assigneeID string, status *task.Status) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM tasks WHERE assignee_id = $1 AND ($2::text IS NULL OR status = $2)`,
		assigneeID, status,
	).Scan(&count)
	return count, err
}

func (r *taskRepositoryImpl) CountByTeamLead(ctx context.Context, teamLeadID string, status *task.Status) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM tasks t
		JOIN users ae ON t.assignee_id = ae.id
		WHERE ae.team_lead_id = $1 AND ($2::text IS NULL OR t.status = $2)
	`
	var count int64
	err := q.QueryRow(ctx, query, teamLeadID, status).Scan(&count)
	return count, err
}
