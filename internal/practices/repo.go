package practices

import "context"

type Repo interface {
	List(ctx context.Context) ([]Tip, error)
}
