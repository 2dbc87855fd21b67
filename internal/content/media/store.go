package media

import "context"

type Repository interface {
	ListMedia(context context.Context, filter Filter, limit, offset int) ([]*Media, int, error)
	GetMedia(context context.Context, id string) (*Media, error)
	CreateMedia(context context.Context, media *Media) error
	DeleteMedia(context context.Context, id string) error
}
