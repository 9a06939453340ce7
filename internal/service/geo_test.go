package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/texlane/catalog-server-go/internal/errors"
	"github.com/texlane/catalog-server-go/internal/model"
)

type mockCountryRepo struct {
	mock.Mock
}

func (m *mockCountryRepo) Create(ctx context.Context, params model.CreateCountryParams) (*model.Country, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Country), args.Error(1)
}

func (m *mockCountryRepo) FindByID(ctx context.Context, id int64) (*model.Country, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Country), args.Error(1)
}

func (m *mockCountryRepo) FindBySlug(ctx context.Context, slug string) (*model.Country, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Country), args.Error(1)
}

func (m *mockCountryRepo) List(ctx context.Context, limit, offset int) ([]model.Country, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.Country), args.Int(1), args.Error(2)
}

func (m *mockCountryRepo) Update(ctx context.Context, id int64, name, code, slug string) (*model.Country, error) {
	args := m.Called(ctx, id, name, code, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Country), args.Error(1)
}

func (m *mockCountryRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockCountryRepo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockCountryRepo) CountStates(ctx context.Context, countryID int64) (int, error) {
	args := m.Called(ctx, countryID)
	return args.Int(0), args.Error(1)
}

type mockStateRepo struct {
	mock.Mock
}

func (m *mockStateRepo) Create(ctx context.Context, params model.CreateStateParams) (*model.State, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.State), args.Error(1)
}

func (m *mockStateRepo) FindByID(ctx context.Context, id int64) (*model.State, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.State), args.Error(1)
}

func (m *mockStateRepo) FindBySlug(ctx context.Context, slug string) (*model.State, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.State), args.Error(1)
}

func (m *mockStateRepo) List(ctx context.Context, countryID int64, limit, offset int) ([]model.State, int, error) {
	args := m.Called(ctx, countryID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.State), args.Int(1), args.Error(2)
}

func (m *mockStateRepo) Update(ctx context.Context, id int64, params model.CreateStateParams) (*model.State, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.State), args.Error(1)
}

func (m *mockStateRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockStateRepo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockStateRepo) NameExistsInCountry(ctx context.Context, name string, countryID, excludeID int64) (bool, error) {
	args := m.Called(ctx, name, countryID, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockStateRepo) CountCities(ctx context.Context, stateID int64) (int, error) {
	args := m.Called(ctx, stateID)
	return args.Int(0), args.Error(1)
}

type mockCityRepo struct {
	mock.Mock
}

func (m *mockCityRepo) Create(ctx context.Context, params model.CreateCityParams) (*model.City, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.City), args.Error(1)
}

func (m *mockCityRepo) FindByID(ctx context.Context, id int64) (*model.City, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.City), args.Error(1)
}

func (m *mockCityRepo) FindBySlug(ctx context.Context, slug string) (*model.City, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.City), args.Error(1)
}

func (m *mockCityRepo) List(ctx context.Context, stateID int64, limit, offset int) ([]model.City, int, error) {
	args := m.Called(ctx, stateID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.City), args.Int(1), args.Error(2)
}

func (m *mockCityRepo) Update(ctx context.Context, id int64, params model.CreateCityParams) (*model.City, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.City), args.Error(1)
}

func (m *mockCityRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockCityRepo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func newGeoService(countries *mockCountryRepo, states *mockStateRepo, cities *mockCityRepo) *GeoService {
	return NewGeoService(countries, states, cities)
}

func TestCreateState(t *testing.T) {
	ctx := context.Background()
	india := int64(1)
	usa := int64(2)

	t.Run("rejects a duplicate name within the same country", func(t *testing.T) {
		countries := new(mockCountryRepo)
		states := new(mockStateRepo)
		cities := new(mockCityRepo)
		states.On("NameExistsInCountry", ctx, "Texas", india, int64(0)).Return(true, nil)

		svc := newGeoService(countries, states, cities)

		_, err := svc.CreateState(ctx, StateInput{Name: "Texas", CountryID: &india})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeAlreadyExists, apperrors.GetCode(err))
		states.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("gives the second Texas in another country a suffixed slug", func(t *testing.T) {
		countries := new(mockCountryRepo)
		states := new(mockStateRepo)
		cities := new(mockCityRepo)
		states.On("NameExistsInCountry", ctx, "Texas", usa, int64(0)).Return(false, nil)
		states.On("SlugExists", ctx, "texas", int64(0)).Return(true, nil)
		states.On("SlugExists", ctx, "texas-1", int64(0)).Return(false, nil)
		states.On("Create", ctx, mock.MatchedBy(func(p model.CreateStateParams) bool {
			return p.Slug == "texas-1" && p.Name == "Texas"
		})).Return(&model.State{ID: 7, Name: "Texas", Slug: "texas-1", CountryID: &usa}, nil)

		svc := newGeoService(countries, states, cities)

		state, err := svc.CreateState(ctx, StateInput{Name: "Texas", CountryID: &usa})
		require.NoError(t, err)
		assert.Equal(t, "texas-1", state.Slug)
	})

	t.Run("requires a name", func(t *testing.T) {
		svc := newGeoService(new(mockCountryRepo), new(mockStateRepo), new(mockCityRepo))

		_, err := svc.CreateState(ctx, StateInput{Name: "  "})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeMissingRequired, apperrors.GetCode(err))
	})
}

func TestUpdateState(t *testing.T) {
	ctx := context.Background()
	usa := int64(2)

	t.Run("keeps the slug stable on an unchanged re-save", func(t *testing.T) {
		countries := new(mockCountryRepo)
		states := new(mockStateRepo)
		cities := new(mockCityRepo)
		existing := &model.State{ID: 7, Name: "Texas", Slug: "texas", CountryID: &usa}
		states.On("FindByID", ctx, int64(7)).Return(existing, nil)
		states.On("NameExistsInCountry", ctx, "Texas", usa, int64(7)).Return(false, nil)
		// The row's own slug does not count as a collision when its id is excluded.
		states.On("SlugExists", ctx, "texas", int64(7)).Return(false, nil)
		states.On("Update", ctx, int64(7), mock.MatchedBy(func(p model.CreateStateParams) bool {
			return p.Slug == "texas"
		})).Return(existing, nil)

		svc := newGeoService(countries, states, cities)

		state, err := svc.UpdateState(ctx, 7, StateInput{Name: "Texas", CountryID: &usa})
		require.NoError(t, err)
		assert.Equal(t, "texas", state.Slug)
	})
}

func TestDeleteCountry(t *testing.T) {
	ctx := context.Background()

	t.Run("blocks deletion while states reference it", func(t *testing.T) {
		countries := new(mockCountryRepo)
		states := new(mockStateRepo)
		cities := new(mockCityRepo)
		countries.On("CountStates", ctx, int64(1)).Return(3, nil)

		svc := newGeoService(countries, states, cities)

		err := svc.DeleteCountry(ctx, 1)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeInUse, apperrors.GetCode(err))
		countries.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes an unreferenced country", func(t *testing.T) {
		countries := new(mockCountryRepo)
		states := new(mockStateRepo)
		cities := new(mockCityRepo)
		countries.On("CountStates", ctx, int64(1)).Return(0, nil)
		countries.On("Delete", ctx, int64(1)).Return(true, nil)

		svc := newGeoService(countries, states, cities)

		require.NoError(t, svc.DeleteCountry(ctx, 1))
	})

	t.Run("reports a missing country", func(t *testing.T) {
		countries := new(mockCountryRepo)
		states := new(mockStateRepo)
		cities := new(mockCityRepo)
		countries.On("CountStates", ctx, int64(9)).Return(0, nil)
		countries.On("Delete", ctx, int64(9)).Return(false, nil)

		svc := newGeoService(countries, states, cities)

		err := svc.DeleteCountry(ctx, 9)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
	})
}
