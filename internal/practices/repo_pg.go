package practices

import (
	"context"
	"database/sql"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) List(ctx context.Context) ([]Tip, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT title, description, image
FROM sustainable_practices
ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query sustainable practices: %w", err)
	}
	defer rows.Close()

	var out []Tip
	for rows.Next() {
		var t Tip
		if err := rows.Scan(&t.Title, &t.Description, &t.Image); err != nil {
			return nil, fmt.Errorf("scan sustainable practice: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sustainable practices: %w", err)
	}
	return out, nil
}
