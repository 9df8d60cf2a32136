package transfer

import (
	"fmt"
	"strconv"
	"strings"

	"hotel-management-backend/internal/model"
)

// RoomCodec moves rooms as
// "number,type,price,capacity,status,endDate,daysUnderStatus,currentGuests".
// Current guests are embedded as "id;firstName;lastName;services" joined by
// "|", with services encoded as "serviceId:date" entries joined by ";;".
type RoomCodec struct{}

func (RoomCodec) Header() string {
	return "number,type,price,capacity,status,endDate,daysUnderStatus,currentGuests"
}

func (RoomCodec) Format(r model.Room) string {
	guests := make([]string, len(r.Guests))
	for i, g := range r.Guests {
		guests[i] = fmt.Sprintf("%s;%s;%s;%s", g.ID, g.FirstName, g.LastName, formatUsages(g.ServiceUsages, ";;"))
	}

	return fmt.Sprintf("%d,%s,%d,%d,%s,%s,%d,%s",
		r.Number, r.Type, r.Price, r.Capacity, r.Status,
		formatDate(r.EndDate), r.DaysUnderStatus, strings.Join(guests, "|"))
}

func (RoomCodec) Parse(line string) (model.Room, error) {
	parts := strings.SplitN(line, ",", 8)
	if len(parts) < 7 {
		return model.Room{}, fmt.Errorf("bad room record %q", line)
	}

	number, err := strconv.Atoi(parts[0])
	if err != nil {
		return model.Room{}, fmt.Errorf("bad room number %q: %w", parts[0], err)
	}
	price, err := strconv.Atoi(parts[2])
	if err != nil {
		return model.Room{}, fmt.Errorf("bad room price %q: %w", parts[2], err)
	}
	capacity, err := strconv.Atoi(parts[3])
	if err != nil {
		return model.Room{}, fmt.Errorf("bad room capacity %q: %w", parts[3], err)
	}
	endDate, err := parseDate(parts[5])
	if err != nil {
		return model.Room{}, err
	}
	days, err := strconv.Atoi(parts[6])
	if err != nil {
		return model.Room{}, fmt.Errorf("bad days under status %q: %w", parts[6], err)
	}

	room := model.Room{
		Number:          number,
		Type:            model.RoomType(parts[1]),
		Price:           price,
		Capacity:        capacity,
		Status:          model.RoomStatus(parts[4]),
		EndDate:         endDate,
		DaysUnderStatus: days,
	}
	if !model.ValidRoomType(parts[1]) {
		return model.Room{}, fmt.Errorf("unknown room type %q", parts[1])
	}

	if len(parts) == 8 && parts[7] != "" {
		for _, guestPart := range strings.Split(parts[7], "|") {
			if guestPart == "" {
				continue
			}
			guest, err := parseEmbeddedGuest(guestPart)
			if err != nil {
				return model.Room{}, fmt.Errorf("bad guest in room record %q: %w", line, err)
			}
			guest.RoomNumber = number
			room.Guests = append(room.Guests, guest)
		}
	}
	return room, nil
}

func parseEmbeddedGuest(s string) (model.Guest, error) {
	// Service usages use ";;" internally, so split on it first and take the
	// guest identity fields off the front.
	fields := strings.SplitN(s, ";", 4)
	if len(fields) < 3 {
		return model.Guest{}, fmt.Errorf("bad embedded guest %q", s)
	}

	guest := model.Guest{ID: fields[0], FirstName: fields[1], LastName: fields[2]}
	if len(fields) == 4 && fields[3] != "" {
		usages, err := parseUsages(fields[3], ";;")
		if err != nil {
			return model.Guest{}, err
		}
		guest.ServiceUsages = usages
	}
	return guest, nil
}
