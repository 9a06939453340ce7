package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/texlane/catalog-server-go/internal/database"
	apperrors "github.com/texlane/catalog-server-go/internal/errors"
	"github.com/texlane/catalog-server-go/internal/model"
	"github.com/texlane/catalog-server-go/internal/repository"
)

// AttributeService manages the fabric attribute lookups: structures,
// substructures, suitablefors, subsuitables and groupcodes. Deletion is
// blocked while anything still references the entry.
type AttributeService struct {
	structures    repository.StructureRepository
	substructures repository.SubstructureRepository
	suitablefors  repository.SuitableforRepository
	subsuitables  repository.SubsuitableRepository
	groupcodes    repository.GroupcodeRepository
}

// NewAttributeService creates a new attribute service
func NewAttributeService(
	structures repository.StructureRepository,
	substructures repository.SubstructureRepository,
	suitablefors repository.SuitableforRepository,
	subsuitables repository.SubsuitableRepository,
	groupcodes repository.GroupcodeRepository,
) *AttributeService {
	return &AttributeService{
		structures:    structures,
		substructures: substructures,
		suitablefors:  suitablefors,
		subsuitables:  subsuitables,
		groupcodes:    groupcodes,
	}
}

// Structures

func (s *AttributeService) CreateStructure(ctx context.Context, name string) (*model.Structure, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.MissingRequired("name")
	}
	item, err := s.structures.Create(ctx, name)
	if database.IsUniqueViolation(err) {
		return nil, apperrors.AlreadyExists("Structure")
	}
	if err != nil {
		return nil, apperrors.Database(err)
	}
	log.Info().Str("name", item.Name).Msg("structure created")
	return item, nil
}

func (s *AttributeService) GetStructure(ctx context.Context, id int64) (*model.Structure, error) {
	item, err := s.structures.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if item == nil {
		return nil, apperrors.NotFound("Structure")
	}
	return item, nil
}

func (s *AttributeService) ListStructures(ctx context.Context, limit, offset int) ([]model.Structure, int, error) {
	items, total, err := s.structures.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	return items, total, nil
}

func (s *AttributeService) UpdateStructure(ctx context.Context, id int64, name string) (*model.Structure, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.MissingRequired("name")
	}
	item, err := s.structures.Update(ctx, id, name)
	if database.IsUniqueViolation(err) {
		return nil, apperrors.AlreadyExists("Structure")
	}
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if item == nil {
		return nil, apperrors.NotFound("Structure")
	}
	return item, nil
}

func (s *AttributeService) DeleteStructure(ctx context.Context, id int64) error {
	count, err := s.structures.CountSubstructures(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if count > 0 {
		return apperrors.InUse("structure", "substructures")
	}
	deleted, err := s.structures.Delete(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if !deleted {
		return apperrors.NotFound("Structure")
	}
	return nil
}

// Substructures

func (s *AttributeService) CreateSubstructure(ctx context.Context, name string, structureID int64) (*model.Substructure, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.MissingRequired("name")
	}
	if structureID <= 0 {
		return nil, apperrors.MissingRequired("structureId")
	}

	parent, err := s.structures.FindByID(ctx, structureID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if parent == nil {
		return nil, apperrors.NotFound("Structure")
	}

	item, err := s.substructures.Create(ctx, name, structureID)
	if database.IsUniqueViolation(err) {
		return nil, apperrors.AlreadyExists("Substructure")
	}
	if err != nil {
		return nil, apperrors.Database(err)
	}
	log.Info().Str("name", item.Name).Int64("structureId", structureID).Msg("substructure created")
	return item, nil
}

func (s *AttributeService) GetSubstructure(ctx context.Context, id int64) (*model.Substructure, error) {
	item, err := s.substructures.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if item == nil {
		return nil, apperrors.NotFound("Substructure")
	}
	return item, nil
}

func (s *AttributeService) ListSubstructures(ctx context.Context, structureID int64, limit, offset int) ([]model.Substructure, int, error) {
	items, total, err := s.substructures.List(ctx, structureID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	return items, total, nil
}

func (s *AttributeService) UpdateSubstructure(ctx context.Context, id int64, name string, structureID int64) (*model.Substructure, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.MissingRequired("name")
	}
	if structureID <= 0 {
		return nil, apperrors.MissingRequired("structureId")
	}
	item, err := s.substructures.Update(ctx, id, name, structureID)
	if database.IsUniqueViolation(err) {
		return nil, apperrors.AlreadyExists("Substructure")
	}
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if item == nil {
		return nil, apperrors.NotFound("Substructure")
	}
	return item, nil
}

func (s *AttributeService) DeleteSubstructure(ctx context.Context, id int64) error {
	count, err := s.substructures.CountProducts(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if count > 0 {
		return apperrors.InUse("substructure", "products")
	}
	deleted, err := s.substructures.Delete(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if !deleted {
		return apperrors.NotFound("Substructure")
	}
	return nil
}

// Suitablefors

func (s *AttributeService) CreateSuitablefor(ctx context.Context, name string) (*model.Suitablefor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.MissingRequired("name")
	}
	item, err := s.suitablefors.Create(ctx, name)
	if database.IsUniqueViolation(err) {
		return nil, apperrors.AlreadyExists("Suitablefor")
	}
	if err != nil {
		return nil, apperrors.Database(err)
	}
	log.Info().Str("name", item.Name).Msg("suitablefor created")
	return item, nil
}

func (s *AttributeService) GetSuitablefor(ctx context.Context, id int64) (*model.Suitablefor, error) {
	item, err := s.suitablefors.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if item == nil {
		return nil, apperrors.NotFound("Suitablefor")
	}
	return item, nil
}

func (s *AttributeService) ListSuitablefors(ctx context.Context, limit, offset int) ([]model.Suitablefor, int, error) {
	items, total, err := s.suitablefors.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	return items, total, nil
}

func (s *AttributeService) UpdateSuitablefor(ctx context.Context, id int64, name string) (*model.Suitablefor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.MissingRequired("name")
	}
	item, err := s.suitablefors.Update(ctx, id, name)
	if database.IsUniqueViolation(err) {
		return nil, apperrors.AlreadyExists("Suitablefor")
	}
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if item == nil {
		return nil, apperrors.NotFound("Suitablefor")
	}
	return item, nil
}

func (s *AttributeService) DeleteSuitablefor(ctx context.Context, id int64) error {
	count, err := s.suitablefors.CountSubsuitables(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if count > 0 {
		return apperrors.InUse("suitablefor", "subsuitables")
	}
	deleted, err := s.suitablefors.Delete(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if !deleted {
		return apperrors.NotFound("Suitablefor")
	}
	return nil
}

// Subsuitables

func (s *AttributeService) CreateSubsuitable(ctx context.Context, name string, suitableforID int64) (*model.Subsuitable, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.MissingRequired("name")
	}
	if suitableforID <= 0 {
		return nil, apperrors.MissingRequired("suitableforId")
	}

	parent, err := s.suitablefors.FindByID(ctx, suitableforID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if parent == nil {
		return nil, apperrors.NotFound("Suitablefor")
	}

	item, err := s.subsuitables.Create(ctx, name, suitableforID)
	if database.IsUniqueViolation(err) {
		return nil, apperrors.AlreadyExists("Subsuitable")
	}
	if err != nil {
		return nil, apperrors.Database(err)
	}
	log.Info().Str("name", item.Name).Int64("suitableforId", suitableforID).Msg("subsuitable created")
	return item, nil
}

func (s *AttributeService) GetSubsuitable(ctx context.Context, id int64) (*model.Subsuitable, error) {
	item, err := s.subsuitables.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if item == nil {
		return nil, apperrors.NotFound("Subsuitable")
	}
	return item, nil
}

func (s *AttributeService) ListSubsuitables(ctx context.Context, suitableforID int64, limit, offset int) ([]model.Subsuitable, int, error) {
	items, total, err := s.subsuitables.List(ctx, suitableforID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	return items, total, nil
}

func (s *AttributeService) UpdateSubsuitable(ctx context.Context, id int64, name string, suitableforID int64) (*model.Subsuitable, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.MissingRequired("name")
	}
	if suitableforID <= 0 {
		return nil, apperrors.MissingRequired("suitableforId")
	}
	item, err := s.subsuitables.Update(ctx, id, name, suitableforID)
	if database.IsUniqueViolation(err) {
		return nil, apperrors.AlreadyExists("Subsuitable")
	}
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if item == nil {
		return nil, apperrors.NotFound("Subsuitable")
	}
	return item, nil
}

func (s *AttributeService) DeleteSubsuitable(ctx context.Context, id int64) error {
	count, err := s.subsuitables.CountProducts(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if count > 0 {
		return apperrors.InUse("subsuitable", "products")
	}
	deleted, err := s.subsuitables.Delete(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if !deleted {
		return apperrors.NotFound("Subsuitable")
	}
	return nil
}

// Groupcodes

func (s *AttributeService) CreateGroupcode(ctx context.Context, name, img, video string) (*model.Groupcode, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.MissingRequired("name")
	}
	item, err := s.groupcodes.Create(ctx, name, strings.TrimSpace(img), strings.TrimSpace(video))
	if database.IsUniqueViolation(err) {
		return nil, apperrors.AlreadyExists("Groupcode")
	}
	if err != nil {
		return nil, apperrors.Database(err)
	}
	log.Info().Str("name", item.Name).Msg("groupcode created")
	return item, nil
}

func (s *AttributeService) GetGroupcode(ctx context.Context, id int64) (*model.Groupcode, error) {
	item, err := s.groupcodes.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if item == nil {
		return nil, apperrors.NotFound("Groupcode")
	}
	return item, nil
}

func (s *AttributeService) ListGroupcodes(ctx context.Context, limit, offset int) ([]model.Groupcode, int, error) {
	items, total, err := s.groupcodes.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	return items, total, nil
}

func (s *AttributeService) UpdateGroupcode(ctx context.Context, id int64, name, img, video string) (*model.Groupcode, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.MissingRequired("name")
	}
	item, err := s.groupcodes.Update(ctx, id, name, strings.TrimSpace(img), strings.TrimSpace(video))
	if database.IsUniqueViolation(err) {
		return nil, apperrors.AlreadyExists("Groupcode")
	}
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if item == nil {
		return nil, apperrors.NotFound("Groupcode")
	}
	return item, nil
}

func (s *AttributeService) DeleteGroupcode(ctx context.Context, id int64) error {
	count, err := s.groupcodes.CountProducts(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if count > 0 {
		return apperrors.InUse("groupcode", "products")
	}
	deleted, err := s.groupcodes.Delete(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if !deleted {
		return apperrors.NotFound("Groupcode")
	}
	return nil
}
