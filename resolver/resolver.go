package resolver

import (
	"context"
	"fmt"

	"github.com/n9te9/go-graphql-rest-gateway/executor"
)

// Upstream service names, used as configuration keys for base URLs.
const (
	EntityUser         = "user"
	EntityRole         = "role"
	EntityLocation     = "location"
	EntityLodgingImage = "lodging_image"
	EntityLodging      = "lodging"
	EntityReservation  = "reservation"
)

// Entities lists every upstream service the schema depends on.
var Entities = []string{
	EntityUser,
	EntityRole,
	EntityLocation,
	EntityLodgingImage,
	EntityLodging,
	EntityReservation,
}

// Resolver is the root resolver of the stitched schema. Each method serves
// exactly one Query or Mutation field with one REST call.
type Resolver struct {
	users         *resource[User, UserInput]
	roles         *resource[Role, RoleInput]
	locations     *resource[Location, LocationInput]
	lodgingImages *resource[LodgingImage, LodgingImageInput]
	lodgings      *resource[Lodging, LodgingInput]
	reservations  *resource[Reservation, ReservationInput]
}

// New binds every entity to its base URL. hosts must contain all Entities.
func New(exec *executor.Executor, hosts map[string]string) (*Resolver, error) {
	for _, entity := range Entities {
		if hosts[entity] == "" {
			return nil, fmt.Errorf("no base URL configured for %q", entity)
		}
	}

	return &Resolver{
		users:         newResource[User, UserInput](exec, EntityUser, hosts[EntityUser]),
		roles:         newResource[Role, RoleInput](exec, EntityRole, hosts[EntityRole]),
		locations:     newResource[Location, LocationInput](exec, EntityLocation, hosts[EntityLocation]),
		lodgingImages: newResource[LodgingImage, LodgingImageInput](exec, EntityLodgingImage, hosts[EntityLodgingImage]),
		lodgings:      newResource[Lodging, LodgingInput](exec, EntityLodging, hosts[EntityLodging]),
		reservations:  newResource[Reservation, ReservationInput](exec, EntityReservation, hosts[EntityReservation]),
	}, nil
}

// users

func (r *Resolver) AllUsers(ctx context.Context) ([]*User, error) {
	return r.users.all(ctx)
}

func (r *Resolver) UserByID(ctx context.Context, args struct{ ID int32 }) (*User, error) {
	return r.users.byID(ctx, args.ID)
}

func (r *Resolver) CreateUser(ctx context.Context, args struct{ User UserInput }) (*User, error) {
	return r.users.create(ctx, args.User)
}

func (r *Resolver) UpdateUser(ctx context.Context, args struct {
	ID   int32
	User UserInput
}) (*User, error) {
	return r.users.update(ctx, args.ID, args.User)
}

func (r *Resolver) DeleteUser(ctx context.Context, args struct{ ID int32 }) (*int32, error) {
	return r.users.remove(ctx, args.ID)
}

// roles

func (r *Resolver) AllRoles(ctx context.Context) ([]*Role, error) {
	return r.roles.all(ctx)
}

func (r *Resolver) RoleByID(ctx context.Context, args struct{ ID int32 }) (*Role, error) {
	return r.roles.byID(ctx, args.ID)
}

func (r *Resolver) CreateRole(ctx context.Context, args struct{ Role RoleInput }) (*Role, error) {
	return r.roles.create(ctx, args.Role)
}

func (r *Resolver) UpdateRole(ctx context.Context, args struct {
	ID   int32
	Role RoleInput
}) (*Role, error) {
	return r.roles.update(ctx, args.ID, args.Role)
}

func (r *Resolver) DeleteRole(ctx context.Context, args struct{ ID int32 }) (*int32, error) {
	return r.roles.remove(ctx, args.ID)
}

// locations

func (r *Resolver) AllLocations(ctx context.Context) ([]*Location, error) {
	return r.locations.all(ctx)
}

func (r *Resolver) LocationByID(ctx context.Context, args struct{ LocationID int32 }) (*Location, error) {
	return r.locations.byID(ctx, args.LocationID)
}

func (r *Resolver) CreateLocation(ctx context.Context, args struct{ Location LocationInput }) (*Location, error) {
	return r.locations.create(ctx, args.Location)
}

func (r *Resolver) UpdateLocation(ctx context.Context, args struct {
	LocationID int32
	Location   LocationInput
}) (*Location, error) {
	return r.locations.update(ctx, args.LocationID, args.Location)
}

func (r *Resolver) DeleteLocation(ctx context.Context, args struct{ LocationID int32 }) (*int32, error) {
	return r.locations.remove(ctx, args.LocationID)
}

// lodging images

func (r *Resolver) AllLodgingImage(ctx context.Context) ([]*LodgingImage, error) {
	return r.lodgingImages.all(ctx)
}

func (r *Resolver) LodgingImageByID(ctx context.Context, args struct{ LodgingImageID int32 }) (*LodgingImage, error) {
	return r.lodgingImages.byID(ctx, args.LodgingImageID)
}

func (r *Resolver) CreateLodgingImage(ctx context.Context, args struct{ LodgingImage LodgingImageInput }) (*LodgingImage, error) {
	return r.lodgingImages.create(ctx, args.LodgingImage)
}

func (r *Resolver) UpdateLodgingImage(ctx context.Context, args struct {
	LodgingImageID int32
	LodgingImage   LodgingImageInput
}) (*LodgingImage, error) {
	return r.lodgingImages.update(ctx, args.LodgingImageID, args.LodgingImage)
}

func (r *Resolver) DeleteLodgingImage(ctx context.Context, args struct{ LodgingImageID int32 }) (*int32, error) {
	return r.lodgingImages.remove(ctx, args.LodgingImageID)
}

// lodgings

func (r *Resolver) AllLodgings(ctx context.Context) ([]*Lodging, error) {
	return r.lodgings.all(ctx)
}

func (r *Resolver) LodgingByID(ctx context.Context, args struct{ LodgingID int32 }) (*Lodging, error) {
	return r.lodgings.byID(ctx, args.LodgingID)
}

func (r *Resolver) CreateLodging(ctx context.Context, args struct{ Lodging LodgingInput }) (*Lodging, error) {
	return r.lodgings.create(ctx, args.Lodging)
}

func (r *Resolver) UpdateLodging(ctx context.Context, args struct {
	LodgingID int32
	Lodging   LodgingInput
}) (*Lodging, error) {
	return r.lodgings.update(ctx, args.LodgingID, args.Lodging)
}

func (r *Resolver) DeleteLodging(ctx context.Context, args struct{ LodgingID int32 }) (*int32, error) {
	return r.lodgings.remove(ctx, args.LodgingID)
}

// reservations

func (r *Resolver) AllReservations(ctx context.Context) ([]*Reservation, error) {
	return r.reservations.all(ctx)
}

func (r *Resolver) ReservationByID(ctx context.Context, args struct{ ID int32 }) (*Reservation, error) {
	return r.reservations.byID(ctx, args.ID)
}

func (r *Resolver) CreateReservation(ctx context.Context, args struct{ Reservation ReservationInput }) (*Reservation, error) {
	return r.reservations.create(ctx, args.Reservation)
}

func (r *Resolver) UpdateReservation(ctx context.Context, args struct {
	ID          int32
	Reservation ReservationInput
}) (*Reservation, error) {
	return r.reservations.update(ctx, args.ID, args.Reservation)
}

func (r *Resolver) DeleteReservation(ctx context.Context, args struct{ ID int32 }) (*int32, error) {
	return r.reservations.remove(ctx, args.ID)
}
