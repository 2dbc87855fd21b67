package article

import "context"

type Repository interface {
	ListArticles(context context.Context, filter Filter, limit, offset int) ([]*Article, int, error)
	GetArticle(context context.Context, id string) (*Article, error)
	GetArticleBySlug(context context.Context, slug string) (*Article, error)
	CreateArticle(context context.Context, article *Article) error
	UpdateArticle(context context.Context, article *Article) error
	SetStatus(context context.Context, id, status string) error
	IncrementViewCount(context context.Context, id string) error
	DeleteArticle(context context.Context, id string) error
}
