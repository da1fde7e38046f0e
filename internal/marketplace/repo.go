package marketplace

import "context"

type Repo interface {
	List(ctx context.Context) ([]Listing, error)
}
