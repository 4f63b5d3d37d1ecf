package services

import (
	"context"
	"net/url"

	"checkin-guide/guestlink"
)

// LinkService builds guest links and the guide they open.
type LinkService struct {
	apartments *ApartmentService
	bookings   *BookingService
	media      *MediaService
	baseURL    string
}

func NewLinkService(apartments *ApartmentService, bookings *BookingService, mediaSvc *MediaService, baseURL string) *LinkService {
	return &LinkService{apartments: apartments, bookings: bookings, media: mediaSvc, baseURL: baseURL}
}

// ForApartment returns a link for values the manager typed in.
func (s *LinkService) ForApartment(ctx context.Context, p guestlink.Params) (string, error) {
	if _, err := s.apartments.Get(ctx, p.ApartmentID); err != nil {
		return "", err
	}
	p.CheckIn = guestlink.ToDisplayDate(p.CheckIn)
	p.CheckOut = guestlink.ToDisplayDate(p.CheckOut)
	return guestlink.Generate(s.baseURL, p), nil
}

// ForBooking returns the link for a booking. Manager overrides win over the
// booking's own lock code; values left out fall back to the apartment when
// the guide is opened.
func (s *LinkService) ForBooking(ctx context.Context, bookingID string, o guestlink.Overrides) (string, error) {
	b, err := s.bookings.Get(ctx, bookingID)
	if err != nil {
		return "", err
	}
	if _, err := s.apartments.Get(ctx, b.ApartmentID); err != nil {
		return "", err
	}

	p := guestlink.Params{
		ApartmentID:  b.ApartmentID,
		GuestName:    first(o.GuestName, b.GuestName),
		CheckIn:      guestlink.ToDisplayDate(first(o.CheckIn, b.CheckInDate)),
		CheckOut:     guestlink.ToDisplayDate(first(o.CheckOut, b.CheckOutDate)),
		EntranceCode: o.EntranceCode,
		LockCode:     o.LockCode,
		WifiPassword: o.WifiPassword,
	}
	if p.LockCode == "" && b.LockCode != nil {
		p.LockCode = *b.LockCode
	}
	return guestlink.Generate(s.baseURL, p), nil
}

// Guide resolves what a guest sees for the apartment and link query.
func (s *LinkService) Guide(ctx context.Context, apartmentID string, q url.Values) (guestlink.Guide, error) {
	apt, err := s.apartments.Get(ctx, apartmentID)
	if err != nil {
		return guestlink.Guide{}, err
	}
	g := guestlink.Resolve(apt, guestlink.ParseOverrides(q))

	files, err := s.media.List(ctx, apartmentID)
	if err != nil {
		return guestlink.Guide{}, err
	}
	for _, f := range files {
		g.Media = append(g.Media, guestlink.MediaItem{Category: f.Category, URL: f.URL, ContentType: f.ContentType})
	}
	return g, nil
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
