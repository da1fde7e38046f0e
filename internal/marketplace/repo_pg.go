package marketplace

import (
	"context"
	"database/sql"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) List(ctx context.Context) ([]Listing, error) {
	const query = `
SELECT title, available, quantity, price, delivery, category, location, image
FROM market_listings
ORDER BY position, id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query market listings: %w", err)
	}
	defer rows.Close()

	var out []Listing
	for rows.Next() {
		var l Listing
		var image sql.NullString
		if err := rows.Scan(&l.Title, &l.Available, &l.Quantity, &l.Price, &l.Delivery, &l.Category, &l.Location, &image); err != nil {
			return nil, fmt.Errorf("scan market listing: %w", err)
		}
		if image.Valid {
			l.Image = image.String
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate market listings: %w", err)
	}
	return out, nil
}
