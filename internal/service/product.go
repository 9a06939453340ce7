package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/texlane/catalog-server-go/internal/database"
	apperrors "github.com/texlane/catalog-server-go/internal/errors"
	"github.com/texlane/catalog-server-go/internal/model"
	"github.com/texlane/catalog-server-go/internal/repository"
	"github.com/texlane/catalog-server-go/internal/slug"
)

// ProductService manages catalog products. Names and slugs are globally
// unique; the slug derives from the name unless an explicit candidate is
// given.
type ProductService struct {
	products repository.ProductRepository
	slugs    slug.Assigner
}

// NewProductService creates a new product service
func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

type ProductInput struct {
	Name           string   `json:"name"`
	Slug           string   `json:"slug"`
	Img            string   `json:"img"`
	Video          string   `json:"video"`
	SubstructureID *int64   `json:"substructureId"`
	SubsuitableID  *int64   `json:"subsuitableId"`
	GroupcodeID    *int64   `json:"groupcodeId"`
	Unit           string   `json:"unit"`
	Currency       string   `json:"currency"`
	GSM            *float64 `json:"gsm"`
	Oz             *float64 `json:"oz"`
	Quantity       *int     `json:"quantity"`
}

func (in ProductInput) toParams(slug string) model.CreateProductParams {
	return model.CreateProductParams{
		Name:           strings.TrimSpace(in.Name),
		Slug:           slug,
		Img:            strings.TrimSpace(in.Img),
		Video:          strings.TrimSpace(in.Video),
		SubstructureID: in.SubstructureID,
		SubsuitableID:  in.SubsuitableID,
		GroupcodeID:    in.GroupcodeID,
		Unit:           strings.TrimSpace(in.Unit),
		Currency:       strings.TrimSpace(in.Currency),
		GSM:            in.GSM,
		Oz:             in.Oz,
		Quantity:       in.Quantity,
	}
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*model.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, apperrors.MissingRequired("name")
	}

	taken, err := s.products.NameExists(ctx, in.Name, 0)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if taken {
		return nil, apperrors.AlreadyExists("Product with this name")
	}

	assigned, err := s.slugs.Assign(ctx, in.Slug, in.Name, 0, s.products.SlugExists)
	if err != nil {
		return nil, err
	}

	product, err := s.products.Create(ctx, in.toParams(assigned))
	if database.IsUniqueViolation(err) {
		assigned, aerr := s.slugs.Assign(ctx, in.Slug, in.Name, 0, s.products.SlugExists)
		if aerr != nil {
			return nil, aerr
		}
		product, err = s.products.Create(ctx, in.toParams(assigned))
		if database.IsUniqueViolation(err) {
			return nil, apperrors.AlreadyExists("Product")
		}
	}
	if err != nil {
		return nil, apperrors.Database(err)
	}

	log.Info().Str("name", product.Name).Str("slug", product.Slug).Msg("product created")
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if product == nil {
		return nil, apperrors.NotFound("Product")
	}
	return product, nil
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	product, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if product == nil {
		return nil, apperrors.NotFound("Product")
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, limit, offset int) ([]model.Product, int, error) {
	products, total, err := s.products.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	return products, total, nil
}

func (s *ProductService) Search(ctx context.Context, query string, limit, offset int) ([]model.Product, int, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx, limit, offset)
	}
	products, total, err := s.products.Search(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	return products, total, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, in ProductInput) (*model.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, apperrors.MissingRequired("name")
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := s.products.NameExists(ctx, in.Name, existing.ID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if taken {
		return nil, apperrors.AlreadyExists("Product with this name")
	}

	assigned, err := s.slugs.Assign(ctx, in.Slug, in.Name, existing.ID, s.products.SlugExists)
	if err != nil {
		return nil, err
	}

	product, err := s.products.Update(ctx, id, in.toParams(assigned))
	if database.IsUniqueViolation(err) {
		return nil, apperrors.AlreadyExists("Product")
	}
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if product == nil {
		return nil, apperrors.NotFound("Product")
	}
	return product, nil
}

// Delete refuses to remove a product that SEO entries still point at.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	count, err := s.products.CountSeoEntries(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if count > 0 {
		return apperrors.InUse("product", "SEO entries")
	}

	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if !deleted {
		return apperrors.NotFound("Product")
	}
	log.Info().Int64("id", id).Msg("product deleted")
	return nil
}
