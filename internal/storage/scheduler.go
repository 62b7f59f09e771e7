package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/gym-admin/internal/models"
)

// ExpireMemberships переводит в Expired активных клиентов с end_date раньше today
// и пишет каждому запись UPDATED в журнал. Возвращает идентификаторы изменённых клиентов.
func (s *Storage) ExpireMemberships(ctx context.Context, today models.Date, description string) ([]string, error) {
	const op = "storage.ExpireMemberships"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var ids []string
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `UPDATE clients
			SET status = $1, updated_at = NOW()
			WHERE status = $2 AND end_date < $3
			RETURNING id`, models.StatusExpired, models.StatusActive, today)
		if err != nil {
			return err
		}
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return err
			}
			ids = append(ids, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for _, id := range ids {
			if err := insertHistory(ctx, tx, id, models.ActionUpdated, description); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ids, nil
}
