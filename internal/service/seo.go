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

// SeoService manages page metadata entries. The slug derives from an
// explicit candidate, else the linked product's name, else a random
// "seo-" fallback so detached entries still get a stable address.
type SeoService struct {
	entries  repository.SeoRepository
	products repository.ProductRepository
	slugs    slug.Assigner
}

// NewSeoService creates a new SEO service
func NewSeoService(entries repository.SeoRepository, products repository.ProductRepository) *SeoService {
	return &SeoService{
		entries:  entries,
		products: products,
		slugs:    slug.Assigner{RandomPrefix: "seo"},
	}
}

type SeoInput struct {
	ProductID          *int64   `json:"productId"`
	Slug               string   `json:"slug"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Keywords           string   `json:"keywords"`
	CanonicalURL       string   `json:"canonicalUrl"`
	OgTitle            string   `json:"ogTitle"`
	OgDescription      string   `json:"ogDescription"`
	TwitterTitle       string   `json:"twitterTitle"`
	TwitterDescription string   `json:"twitterDescription"`
	SKU                string   `json:"sku"`
	PurchasePrice      *float64 `json:"purchasePrice"`
	SalesPrice         *float64 `json:"salesPrice"`
	Popular            bool     `json:"popularproduct"`
	TopRated           bool     `json:"topratedproduct"`
}

func (in SeoInput) toParams(slug string) model.CreateSeoEntryParams {
	return model.CreateSeoEntryParams{
		ProductID:          in.ProductID,
		Slug:               slug,
		Title:              strings.TrimSpace(in.Title),
		Description:        strings.TrimSpace(in.Description),
		Keywords:           strings.TrimSpace(in.Keywords),
		CanonicalURL:       strings.TrimSpace(in.CanonicalURL),
		OgTitle:            strings.TrimSpace(in.OgTitle),
		OgDescription:      strings.TrimSpace(in.OgDescription),
		TwitterTitle:       strings.TrimSpace(in.TwitterTitle),
		TwitterDescription: strings.TrimSpace(in.TwitterDescription),
		SKU:                strings.TrimSpace(in.SKU),
		PurchasePrice:      in.PurchasePrice,
		SalesPrice:         in.SalesPrice,
		Popular:            in.Popular,
		TopRated:           in.TopRated,
	}
}

// slugSource resolves the display name used when no explicit candidate is
// given: the linked product's name, or "" to trigger the random fallback.
func (s *SeoService) slugSource(ctx context.Context, in SeoInput) (string, error) {
	if in.ProductID == nil {
		return "", nil
	}
	product, err := s.products.FindByID(ctx, *in.ProductID)
	if err != nil {
		return "", apperrors.Database(err)
	}
	if product == nil {
		return "", apperrors.NotFound("Product")
	}
	return product.Name, nil
}

func (s *SeoService) Create(ctx context.Context, in SeoInput) (*model.SeoEntry, error) {
	displayName, err := s.slugSource(ctx, in)
	if err != nil {
		return nil, err
	}

	assigned, err := s.slugs.Assign(ctx, in.Slug, displayName, 0, s.entries.SlugExists)
	if err != nil {
		return nil, err
	}

	entry, err := s.entries.Create(ctx, in.toParams(assigned))
	if database.IsUniqueViolation(err) {
		assigned, aerr := s.slugs.Assign(ctx, in.Slug, displayName, 0, s.entries.SlugExists)
		if aerr != nil {
			return nil, aerr
		}
		entry, err = s.entries.Create(ctx, in.toParams(assigned))
		if database.IsUniqueViolation(err) {
			return nil, apperrors.AlreadyExists("SEO entry")
		}
	}
	if err != nil {
		return nil, apperrors.Database(err)
	}

	log.Info().Str("slug", entry.Slug).Msg("SEO entry created")
	return entry, nil
}

func (s *SeoService) Get(ctx context.Context, id int64) (*model.SeoEntry, error) {
	entry, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if entry == nil {
		return nil, apperrors.NotFound("SEO entry")
	}
	return entry, nil
}

func (s *SeoService) GetBySlug(ctx context.Context, slug string) (*model.SeoEntry, error) {
	entry, err := s.entries.FindBySlug(ctx, slug)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if entry == nil {
		return nil, apperrors.NotFound("SEO entry")
	}
	return entry, nil
}

func (s *SeoService) List(ctx context.Context, limit, offset int) ([]model.SeoEntry, int, error) {
	entries, total, err := s.entries.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	return entries, total, nil
}

func (s *SeoService) Update(ctx context.Context, id int64, in SeoInput) (*model.SeoEntry, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	displayName, err := s.slugSource(ctx, in)
	if err != nil {
		return nil, err
	}

	// Keep the stored slug when the caller passes neither a candidate nor a
	// product; regenerating would churn a published address.
	candidate := in.Slug
	if candidate == "" && displayName == "" {
		candidate = existing.Slug
	}

	assigned, err := s.slugs.Assign(ctx, candidate, displayName, existing.ID, s.entries.SlugExists)
	if err != nil {
		return nil, err
	}

	entry, err := s.entries.Update(ctx, id, in.toParams(assigned))
	if database.IsUniqueViolation(err) {
		return nil, apperrors.AlreadyExists("SEO entry")
	}
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if entry == nil {
		return nil, apperrors.NotFound("SEO entry")
	}
	return entry, nil
}

func (s *SeoService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.entries.Delete(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if !deleted {
		return apperrors.NotFound("SEO entry")
	}
	log.Info().Int64("id", id).Msg("SEO entry deleted")
	return nil
}
