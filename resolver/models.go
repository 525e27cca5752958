package resolver

// Shape contracts of the upstream entities. Field names follow the upstream
// JSON payloads; GraphQL fields are matched case-insensitively ignoring '_'.

type User struct {
	ID        int32  `json:"id"`
	Name      string `json:"name"`
	Lastname  string `json:"lastname"`
	Birthdate string `json:"birthdate"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	IDRole    int32  `json:"idrole"`
}

type UserInput struct {
	Name      string `json:"name"`
	Lastname  string `json:"lastname"`
	Birthdate string `json:"birthdate"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	IDRole    int32  `json:"idrole"`
}

type Role struct {
	ID       int32  `json:"id"`
	NameRole string `json:"namerole"`
}

type RoleInput struct {
	NameRole string `json:"namerole"`
}

type Location struct {
	LocationID int32  `json:"location_id"`
	Country    string `json:"country"`
	City       string `json:"city"`
	State      string `json:"state"`
}

type LocationInput struct {
	Country string `json:"country"`
	City    string `json:"city"`
	State   string `json:"state"`
}

type LodgingImage struct {
	LodgingImageID int32  `json:"lodging_image_id"`
	LodgingID      int32  `json:"lodging_id"`
	URL            string `json:"url"`
}

type LodgingImageInput struct {
	LodgingID int32  `json:"lodging_id"`
	URL       string `json:"url"`
}

type Lodging struct {
	LodgingID int32 `json:"lodging_id"`
	LodgingInput
}

type LodgingInput struct {
	HostID                 int32   `json:"host_id"`
	LodgingName            string  `json:"lodging_name"`
	PhoneNumber            int32   `json:"phone_number"`
	LodgingType            int32   `json:"lodging_type"`
	LodgingClass           int32   `json:"lodging_class"`
	IsExclusive            int32   `json:"is_exclusive"`
	IsCompany              int32   `json:"is_company"`
	GuestNumber            int32   `json:"guest_number"`
	RoomsNumber            int32   `json:"rooms_number"`
	BedsNumber             int32   `json:"beds_number"`
	BathroomsNumber        int32   `json:"bathrooms_number"`
	LocationID             int32   `json:"location_id"`
	Address                string  `json:"address"`
	ExtraAddress           string  `json:"extra_address"`
	TimeBeforeGuest        int32   `json:"time_before_guest"`
	TimeArriveStart        int32   `json:"time_arrive_start"`
	TimeArriveEnd          int32   `json:"time_arrive_end"`
	WithWifi               int32   `json:"with_wifi"`
	WithCableTV            int32   `json:"with_cable_tv"`
	WithAirConditioning    int32   `json:"with_air_conditioning"`
	WithPhone              int32   `json:"with_phone"`
	WithKitchen            int32   `json:"with_kitchen"`
	WithCleaningItems      int32   `json:"with_cleaning_items"`
	PricePerPersonAndNigth float64 `json:"price_per_person_and_nigth"`
	LodgingDescription     string  `json:"lodging_description"`
	LodgingProvide         int32   `json:"lodging_provide"`
}

type Reservation struct {
	ReservationID int32 `json:"reservation_id"`
	ReservationInput
}

type ReservationInput struct {
	UserID              int32  `json:"user_id"`
	StartDate           string `json:"start_date"`
	EndDate             string `json:"end_date"`
	GuestAdultNumber    int32  `json:"guest_adult_number"`
	GuestChildrenNumber int32  `json:"guest_children_number"`
	IsCancel            bool   `json:"is_cancel"`
}
