package resolver

import "github.com/n9te9/go-graphql-rest-gateway/graph"

const userTypeDefs = `
type User {
    id: Int!
    name: String!
    lastname: String!
    birthdate: String!
    email: String!
    password: String!
    idrole: Int!
}
input UserInput {
    name: String!
    lastname: String!
    birthdate: String!
    email: String!
    password: String!
    idrole: Int!
}`

const userQueries = `
    allUsers: [User]!
    userById(id: Int!): User!
`

const userMutations = `
    createUser(user: UserInput!): User!
    deleteUser(id: Int!): Int
    updateUser(id: Int!, user: UserInput!): User!
`

const roleTypeDefs = `
type Role {
    id: Int!
    namerole: String!
}
input RoleInput {
    namerole: String!
}`

const roleQueries = `
    allRoles: [Role]!
    roleById(id: Int!): Role!
`

const roleMutations = `
    createRole(role: RoleInput!): Role!
    deleteRole(id: Int!): Int
    updateRole(id: Int!, role: RoleInput!): Role!
`

const locationTypeDefs = `
type Location {
    location_id: Int!
    country: String!
    city: String!
    state: String!
}
input LocationInput {
    country: String!
    city: String!
    state: String!
}`

const locationQueries = `
    allLocations: [Location]!
    locationById(location_id: Int!): Location!
`

const locationMutations = `
    createLocation(location: LocationInput!): Location!
    deleteLocation(location_id: Int!): Int
    updateLocation(location_id: Int!, location: LocationInput!): Location!
`

const lodgingImageTypeDefs = `
type Lodging_image {
    lodging_image_id: Int!
    lodging_id: Int!
    url: String!
}
input Lodging_imageInput {
    lodging_id: Int!
    url: String!
}`

const lodgingImageQueries = `
    allLodging_image: [Lodging_image]!
    lodging_imageById(lodging_image_id: Int!): Lodging_image!
`

const lodgingImageMutations = `
    createLodging_image(lodging_image: Lodging_imageInput!): Lodging_image!
    deleteLodging_image(lodging_image_id: Int!): Int
    updateLodging_image(lodging_image_id: Int!, lodging_image: Lodging_imageInput!): Lodging_image!
`

const lodgingTypeDefs = `
type Lodging {
    lodging_id: Int!
    host_id: Int!
    lodging_name: String!
    phone_number: Int!
    lodging_type: Int!
    lodging_class: Int!
    is_exclusive: Int!
    is_company: Int!
    guest_number: Int!
    rooms_number: Int!
    beds_number: Int!
    bathrooms_number: Int!
    location_id: Int!
    address: String!
    extra_address: String!
    time_before_guest: Int!
    time_arrive_start: Int!
    time_arrive_end: Int!
    with_wifi: Int!
    with_cable_tv: Int!
    with_air_conditioning: Int!
    with_phone: Int!
    with_kitchen: Int!
    with_cleaning_items: Int!
    price_per_person_and_nigth: Float!
    lodging_description: String!
    lodging_provide: Int!
}
input LodgingInput {
    host_id: Int!
    lodging_name: String!
    phone_number: Int!
    lodging_type: Int!
    lodging_class: Int!
    is_exclusive: Int!
    is_company: Int!
    guest_number: Int!
    rooms_number: Int!
    beds_number: Int!
    bathrooms_number: Int!
    location_id: Int!
    address: String!
    extra_address: String!
    time_before_guest: Int!
    time_arrive_start: Int!
    time_arrive_end: Int!
    with_wifi: Int!
    with_cable_tv: Int!
    with_air_conditioning: Int!
    with_phone: Int!
    with_kitchen: Int!
    with_cleaning_items: Int!
    price_per_person_and_nigth: Float!
    lodging_description: String!
    lodging_provide: Int!
}`

const lodgingQueries = `
    allLodgings: [Lodging]!
    lodgingById(lodging_id: Int!): Lodging!
`

const lodgingMutations = `
    createLodging(lodging: LodgingInput!): Lodging!
    deleteLodging(lodging_id: Int!): Int
    updateLodging(lodging_id: Int!, lodging: LodgingInput!): Lodging!
`

const reservationTypeDefs = `
type Reservation {
    reservation_id: Int!
    user_id: Int!
    start_date: String!
    end_date: String!
    guest_adult_number: Int!
    guest_children_number: Int!
    is_cancel: Boolean!
}
input ReservationInput {
    user_id: Int!
    start_date: String!
    end_date: String!
    guest_adult_number: Int!
    guest_children_number: Int!
    is_cancel: Boolean!
}`

const reservationQueries = `
    allReservations: [Reservation]!
    reservationById(id: Int!): Reservation!
`

const reservationMutations = `
    createReservation(reservation: ReservationInput!): Reservation!
    deleteReservation(id: Int!): Int
    updateReservation(id: Int!, reservation: ReservationInput!): Reservation!
`

type fragment struct {
	entity    string
	typeDefs  string
	queries   string
	mutations string
}

var fragments = []fragment{
	{EntityUser, userTypeDefs, userQueries, userMutations},
	{EntityRole, roleTypeDefs, roleQueries, roleMutations},
	{EntityLocation, locationTypeDefs, locationQueries, locationMutations},
	{EntityLodgingImage, lodgingImageTypeDefs, lodgingImageQueries, lodgingImageMutations},
	{EntityLodging, lodgingTypeDefs, lodgingQueries, lodgingMutations},
	{EntityReservation, reservationTypeDefs, reservationQueries, reservationMutations},
}

// SubGraphs returns one schema fragment per upstream service, in stitching order.
func SubGraphs() ([]*graph.SubGraph, error) {
	subGraphs := make([]*graph.SubGraph, 0, len(fragments))
	for _, f := range fragments {
		sg, err := graph.NewSubGraph(f.entity, f.typeDefs, f.queries, f.mutations)
		if err != nil {
			return nil, err
		}
		subGraphs = append(subGraphs, sg)
	}

	return subGraphs, nil
}

// NewSuperGraph stitches the fragments of all upstream services.
func NewSuperGraph() (*graph.SuperGraph, error) {
	subGraphs, err := SubGraphs()
	if err != nil {
		return nil, err
	}

	return graph.NewSuperGraph(subGraphs...), nil
}
