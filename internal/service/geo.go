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

// GeoService manages the country/state/city taxonomy. Slugs are assigned per
// table from the name (or an explicit candidate) and disambiguated with a
// numeric suffix; the unique column constraint backstops concurrent saves.
type GeoService struct {
	countries repository.CountryRepository
	states    repository.StateRepository
	cities    repository.CityRepository
	slugs     slug.Assigner
}

// NewGeoService creates a new geo service
func NewGeoService(
	countries repository.CountryRepository,
	states repository.StateRepository,
	cities repository.CityRepository,
) *GeoService {
	return &GeoService{
		countries: countries,
		states:    states,
		cities:    cities,
	}
}

// Countries

type CountryInput struct {
	Name string `json:"name"`
	Code string `json:"code"`
	Slug string `json:"slug"`
}

func (s *GeoService) CreateCountry(ctx context.Context, in CountryInput) (*model.Country, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, apperrors.MissingRequired("name")
	}

	assigned, err := s.slugs.Assign(ctx, in.Slug, in.Name, 0, s.countries.SlugExists)
	if err != nil {
		return nil, err
	}

	country, err := s.countries.Create(ctx, model.CreateCountryParams{
		Name: in.Name,
		Code: strings.TrimSpace(in.Code),
		Slug: assigned,
	})
	if database.IsUniqueViolation(err) {
		// Lost a slug race; reprobe once against the fresh state.
		assigned, aerr := s.slugs.Assign(ctx, in.Slug, in.Name, 0, s.countries.SlugExists)
		if aerr != nil {
			return nil, aerr
		}
		country, err = s.countries.Create(ctx, model.CreateCountryParams{
			Name: in.Name,
			Code: strings.TrimSpace(in.Code),
			Slug: assigned,
		})
		if database.IsUniqueViolation(err) {
			return nil, apperrors.AlreadyExists("Country")
		}
	}
	if err != nil {
		return nil, apperrors.Database(err)
	}

	log.Info().Str("name", country.Name).Str("slug", country.Slug).Msg("country created")
	return country, nil
}

func (s *GeoService) GetCountry(ctx context.Context, id int64) (*model.Country, error) {
	country, err := s.countries.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if country == nil {
		return nil, apperrors.NotFound("Country")
	}
	return country, nil
}

func (s *GeoService) GetCountryBySlug(ctx context.Context, slugValue string) (*model.Country, error) {
	country, err := s.countries.FindBySlug(ctx, slugValue)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if country == nil {
		return nil, apperrors.NotFound("Country")
	}
	return country, nil
}

func (s *GeoService) ListCountries(ctx context.Context, limit, offset int) ([]model.Country, int, error) {
	countries, total, err := s.countries.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	return countries, total, nil
}

func (s *GeoService) UpdateCountry(ctx context.Context, id int64, in CountryInput) (*model.Country, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, apperrors.MissingRequired("name")
	}

	existing, err := s.GetCountry(ctx, id)
	if err != nil {
		return nil, err
	}

	// excludeID keeps an unchanged name/slug stable across re-saves.
	assigned, err := s.slugs.Assign(ctx, in.Slug, in.Name, existing.ID, s.countries.SlugExists)
	if err != nil {
		return nil, err
	}

	country, err := s.countries.Update(ctx, id, in.Name, strings.TrimSpace(in.Code), assigned)
	if database.IsUniqueViolation(err) {
		return nil, apperrors.AlreadyExists("Country")
	}
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if country == nil {
		return nil, apperrors.NotFound("Country")
	}
	return country, nil
}

// DeleteCountry refuses to delete a country that still has states.
func (s *GeoService) DeleteCountry(ctx context.Context, id int64) error {
	count, err := s.countries.CountStates(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if count > 0 {
		return apperrors.InUse("country", "states")
	}

	deleted, err := s.countries.Delete(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if !deleted {
		return apperrors.NotFound("Country")
	}
	log.Info().Int64("id", id).Msg("country deleted")
	return nil
}

// States

type StateInput struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	CountryID *int64 `json:"countryId"`
	Slug      string `json:"slug"`
}

// CreateState enforces per-country name uniqueness: two countries may each
// have a "Texas", but one country may not have two. The slug stays globally
// unique, so the second Texas gets texas-1.
func (s *GeoService) CreateState(ctx context.Context, in StateInput) (*model.State, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, apperrors.MissingRequired("name")
	}

	if in.CountryID != nil {
		taken, err := s.states.NameExistsInCountry(ctx, in.Name, *in.CountryID, 0)
		if err != nil {
			return nil, apperrors.Database(err)
		}
		if taken {
			return nil, apperrors.AlreadyExists("State with this name in the selected country")
		}
	}

	assigned, err := s.slugs.Assign(ctx, in.Slug, in.Name, 0, s.states.SlugExists)
	if err != nil {
		return nil, err
	}

	state, err := s.states.Create(ctx, model.CreateStateParams{
		Name:      in.Name,
		Code:      strings.TrimSpace(in.Code),
		CountryID: in.CountryID,
		Slug:      assigned,
	})
	if database.IsUniqueViolation(err) {
		assigned, aerr := s.slugs.Assign(ctx, in.Slug, in.Name, 0, s.states.SlugExists)
		if aerr != nil {
			return nil, aerr
		}
		state, err = s.states.Create(ctx, model.CreateStateParams{
			Name:      in.Name,
			Code:      strings.TrimSpace(in.Code),
			CountryID: in.CountryID,
			Slug:      assigned,
		})
		if database.IsUniqueViolation(err) {
			return nil, apperrors.AlreadyExists("State")
		}
	}
	if err != nil {
		return nil, apperrors.Database(err)
	}

	log.Info().Str("name", state.Name).Str("slug", state.Slug).Msg("state created")
	return state, nil
}

func (s *GeoService) GetState(ctx context.Context, id int64) (*model.State, error) {
	state, err := s.states.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if state == nil {
		return nil, apperrors.NotFound("State")
	}
	return state, nil
}

func (s *GeoService) GetStateBySlug(ctx context.Context, slugValue string) (*model.State, error) {
	state, err := s.states.FindBySlug(ctx, slugValue)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if state == nil {
		return nil, apperrors.NotFound("State")
	}
	return state, nil
}

func (s *GeoService) ListStates(ctx context.Context, countryID int64, limit, offset int) ([]model.State, int, error) {
	states, total, err := s.states.List(ctx, countryID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	return states, total, nil
}

func (s *GeoService) UpdateState(ctx context.Context, id int64, in StateInput) (*model.State, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, apperrors.MissingRequired("name")
	}

	existing, err := s.GetState(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.CountryID != nil {
		taken, err := s.states.NameExistsInCountry(ctx, in.Name, *in.CountryID, existing.ID)
		if err != nil {
			return nil, apperrors.Database(err)
		}
		if taken {
			return nil, apperrors.AlreadyExists("State with this name in the selected country")
		}
	}

	assigned, err := s.slugs.Assign(ctx, in.Slug, in.Name, existing.ID, s.states.SlugExists)
	if err != nil {
		return nil, err
	}

	state, err := s.states.Update(ctx, id, model.CreateStateParams{
		Name:      in.Name,
		Code:      strings.TrimSpace(in.Code),
		CountryID: in.CountryID,
		Slug:      assigned,
	})
	if database.IsUniqueViolation(err) {
		return nil, apperrors.AlreadyExists("State")
	}
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if state == nil {
		return nil, apperrors.NotFound("State")
	}
	return state, nil
}

func (s *GeoService) DeleteState(ctx context.Context, id int64) error {
	count, err := s.states.CountCities(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if count > 0 {
		return apperrors.InUse("state", "cities")
	}

	deleted, err := s.states.Delete(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if !deleted {
		return apperrors.NotFound("State")
	}
	log.Info().Int64("id", id).Msg("state deleted")
	return nil
}

// Cities

type CityInput struct {
	Name      string `json:"name"`
	Pincode   string `json:"pincode"`
	CountryID *int64 `json:"countryId"`
	StateID   *int64 `json:"stateId"`
	Slug      string `json:"slug"`
}

func (s *GeoService) CreateCity(ctx context.Context, in CityInput) (*model.City, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, apperrors.MissingRequired("name")
	}

	assigned, err := s.slugs.Assign(ctx, in.Slug, in.Name, 0, s.cities.SlugExists)
	if err != nil {
		return nil, err
	}

	city, err := s.cities.Create(ctx, model.CreateCityParams{
		Name:      in.Name,
		Pincode:   strings.TrimSpace(in.Pincode),
		CountryID: in.CountryID,
		StateID:   in.StateID,
		Slug:      assigned,
	})
	if database.IsUniqueViolation(err) {
		assigned, aerr := s.slugs.Assign(ctx, in.Slug, in.Name, 0, s.cities.SlugExists)
		if aerr != nil {
			return nil, aerr
		}
		city, err = s.cities.Create(ctx, model.CreateCityParams{
			Name:      in.Name,
			Pincode:   strings.TrimSpace(in.Pincode),
			CountryID: in.CountryID,
			StateID:   in.StateID,
			Slug:      assigned,
		})
		if database.IsUniqueViolation(err) {
			return nil, apperrors.AlreadyExists("City")
		}
	}
	if err != nil {
		return nil, apperrors.Database(err)
	}

	log.Info().Str("name", city.Name).Str("slug", city.Slug).Msg("city created")
	return city, nil
}

func (s *GeoService) GetCity(ctx context.Context, id int64) (*model.City, error) {
	city, err := s.cities.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if city == nil {
		return nil, apperrors.NotFound("City")
	}
	return city, nil
}

func (s *GeoService) GetCityBySlug(ctx context.Context, slugValue string) (*model.City, error) {
	city, err := s.cities.FindBySlug(ctx, slugValue)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if city == nil {
		return nil, apperrors.NotFound("City")
	}
	return city, nil
}

func (s *GeoService) ListCities(ctx context.Context, stateID int64, limit, offset int) ([]model.City, int, error) {
	cities, total, err := s.cities.List(ctx, stateID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	return cities, total, nil
}

func (s *GeoService) UpdateCity(ctx context.Context, id int64, in CityInput) (*model.City, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, apperrors.MissingRequired("name")
	}

	existing, err := s.GetCity(ctx, id)
	if err != nil {
		return nil, err
	}

	assigned, err := s.slugs.Assign(ctx, in.Slug, in.Name, existing.ID, s.cities.SlugExists)
	if err != nil {
		return nil, err
	}

	city, err := s.cities.Update(ctx, id, model.CreateCityParams{
		Name:      in.Name,
		Pincode:   strings.TrimSpace(in.Pincode),
		CountryID: in.CountryID,
		StateID:   in.StateID,
		Slug:      assigned,
	})
	if database.IsUniqueViolation(err) {
		return nil, apperrors.AlreadyExists("City")
	}
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if city == nil {
		return nil, apperrors.NotFound("City")
	}
	return city, nil
}

func (s *GeoService) DeleteCity(ctx context.Context, id int64) error {
	deleted, err := s.cities.Delete(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if !deleted {
		return apperrors.NotFound("City")
	}
	log.Info().Int64("id", id).Msg("city deleted")
	return nil
}
