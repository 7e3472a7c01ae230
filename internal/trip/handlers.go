package trip

import (
	"errors"
	"strconv"
	"strings"

	"backend-alpsconnect/internal/auth"
	"backend-alpsconnect/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

// Directory resolves the profiles behind authenticated callers.
type Directory interface {
	Client(id string) (domain.Client, error)
	Guide() domain.Guide
}

type tripInput struct {
	ID              string               `json:"id" validate:"omitempty,max=64"`
	Title           string               `json:"title" validate:"required,max=200"`
	Location        string               `json:"location" validate:"required,max=200"`
	Coordinates     domain.Coordinates   `json:"coordinates"`
	Date            string               `json:"date" validate:"required,datetime=2006-01-02"`
	AvailableFrom   string               `json:"availableFrom" validate:"omitempty,datetime=2006-01-02"`
	AvailableTo     string               `json:"availableTo" validate:"omitempty,datetime=2006-01-02"`
	DurationDays    int                  `json:"durationDays" validate:"min=1"`
	Price           int                  `json:"price" validate:"min=0"`
	Difficulty      domain.Difficulty    `json:"difficulty" validate:"required"`
	ActivityType    domain.ActivityType  `json:"activityType" validate:"required"`
	Description     string               `json:"description"`
	Equipment       []string             `json:"equipment"`
	MaxParticipants int                  `json:"maxParticipants" validate:"min=1"`
	Image           string               `json:"image" validate:"omitempty,url"`
	Status          domain.TripStatus    `json:"status"`
	PaymentStatus   domain.PaymentStatus `json:"paymentStatus"`
}

type joinInput struct {
	Date      string   `json:"date" validate:"required,datetime=2006-01-02"`
	FriendIDs []string `json:"friend_ids" validate:"max=10,dive,required"`
}

type approveInput struct {
	ClientID string `json:"client_id" validate:"required"`
}

func RegisterRoutes(r fiber.Router, store *Store, dir Directory, authMiddleware fiber.Handler) {
	guideOnly := auth.RequireRole(auth.RoleGuide)
	clientOnly := auth.RequireRole(auth.RoleClient)

	r.Get("/", func(c *fiber.Ctx) error {
		filter, order, err := parseListQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(store.List(filter, order))
	})

	r.Get("/mine", authMiddleware, guideOnly, func(c *fiber.Ctx) error {
		return c.JSON(store.List(Filter{GuideID: auth.UserID(c)}, SortDate))
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		t, err := store.Get(c.Params("id"))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(t)
	})

	r.Post("/", authMiddleware, guideOnly, func(c *fiber.Ctx) error {
		var in tripInput
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if err := validateTrip(in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		t := buildTrip(in, dir.Guide())
		if len(t.Equipment) == 0 {
			t.Equipment = store.DefaultEquipment(t.ActivityType)
		}
		created, err := store.AddTrip(t)
		if err != nil {
			return toHTTPError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Post("/:id/requests", authMiddleware, clientOnly, func(c *fiber.Ctx) error {
		var in joinInput
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if err := validate.Struct(in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date required as YYYY-MM-DD")
		}
		requester, err := dir.Client(auth.UserID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}

		result, err := store.RequestJoin(JoinRequest{
			TripID:    c.Params("id"),
			Requester: requester,
			Date:      in.Date,
			FriendIDs: in.FriendIDs,
		})
		if err != nil {
			return toHTTPError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(result)
	})

	r.Post("/:id/approve", authMiddleware, guideOnly, func(c *fiber.Ctx) error {
		var in approveInput
		if err := c.BodyParser(&in); err != nil || validate.Struct(in) != nil {
			return fiber.NewError(fiber.StatusBadRequest, "client_id required")
		}
		current, err := store.Get(c.Params("id"))
		if err != nil {
			return toHTTPError(err)
		}
		if current.GuideID != auth.UserID(c) {
			return fiber.NewError(fiber.StatusForbidden, "trip belongs to another guide")
		}
		client, ok := pendingClient(current, in.ClientID)
		if !ok {
			return toHTTPError(ErrRequestNotFound)
		}

		updated, err := store.ApproveRequest(current.ID, client)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(updated)
	})
}

func parseListQuery(c *fiber.Ctx) (Filter, SortOrder, error) {
	f := Filter{
		Status:           domain.TripStatus(c.Query("status")),
		ExcludeCancelled: c.QueryBool("marketplace"),
		Activity:         domain.ActivityType(c.Query("activity")),
		Difficulty:       domain.Difficulty(c.Query("difficulty")),
		GuideID:          c.Query("guide_id"),
		Query:            c.Query("q"),
		MaxPrice:         c.QueryInt("max_price"),
		From:             c.Query("from"),
		To:               c.Query("to"),
	}
	if f.Status != "" && !f.Status.Valid() {
		return Filter{}, "", errors.New("unknown status")
	}
	if f.Activity != "" && !f.Activity.Valid() {
		return Filter{}, "", errors.New("unknown activity")
	}
	if f.Difficulty != "" && !f.Difficulty.Valid() {
		return Filter{}, "", errors.New("unknown difficulty")
	}

	if raw := c.Query("radius_km"); raw != "" {
		near, err := parseNear(c.Query("lat"), c.Query("lng"), raw)
		if err != nil {
			return Filter{}, "", err
		}
		f.Near = &near
	}

	order, err := ParseSortOrder(c.Query("sort"))
	if err != nil {
		return Filter{}, "", err
	}
	return f, order, nil
}

func parseNear(lat, lng, radius string) (Near, error) {
	var n Near
	var err error
	if n.Lat, err = strconv.ParseFloat(lat, 64); err != nil {
		return Near{}, errors.New("lat required with radius_km")
	}
	if n.Lng, err = strconv.ParseFloat(lng, 64); err != nil {
		return Near{}, errors.New("lng required with radius_km")
	}
	if n.RadiusKm, err = strconv.ParseFloat(radius, 64); err != nil || n.RadiusKm <= 0 {
		return Near{}, errors.New("radius_km must be positive")
	}
	return n, nil
}

func validateTrip(in tripInput) error {
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return errors.New(strings.ToLower(verrs[0].Field()) + " is invalid")
		}
		return err
	}
	switch {
	case !in.Difficulty.Valid():
		return errors.New("unknown difficulty")
	case !in.ActivityType.Valid():
		return errors.New("unknown activity")
	case in.Status != "" && !in.Status.Valid():
		return errors.New("unknown status")
	case in.PaymentStatus != "" && !in.PaymentStatus.Valid():
		return errors.New("unknown payment status")
	}
	return nil
}

// buildTrip stamps the guide's identity on a new listing.
func buildTrip(in tripInput, guide domain.Guide) domain.Trip {
	t := domain.Trip{
		ID:              in.ID,
		Title:           in.Title,
		Location:        in.Location,
		Coordinates:     in.Coordinates,
		Date:            in.Date,
		AvailableFrom:   in.AvailableFrom,
		AvailableTo:     in.AvailableTo,
		DurationDays:    in.DurationDays,
		Price:           in.Price,
		Difficulty:      in.Difficulty,
		ActivityType:    in.ActivityType,
		Description:     in.Description,
		Equipment:       in.Equipment,
		GuideID:         guide.ID,
		GuideName:       guide.Name,
		GuideAvatar:     guide.Avatar,
		GuideRating:     averageRating(guide.Reviews),
		MaxParticipants: in.MaxParticipants,
		Image:           in.Image,
		Status:          in.Status,
		PaymentStatus:   in.PaymentStatus,
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = domain.StatusUpcoming
	}
	if t.PaymentStatus == "" {
		t.PaymentStatus = domain.PaymentPending
	}
	return t
}

func averageRating(reviews []domain.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

func pendingClient(t domain.Trip, id string) (domain.Client, bool) {
	for _, c := range t.PendingRequests {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Client{}, false
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, ErrTripNotFound), errors.Is(err, ErrRequestNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrTripExists), errors.Is(err, ErrAlreadyRequested):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
