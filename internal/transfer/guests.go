package transfer

import (
	"fmt"
	"strconv"
	"strings"

	"hotel-management-backend/internal/model"
)

// GuestCodec moves guests as
// "id,firstName,lastName,roomNumber,services" with services encoded as
// "serviceId:date" entries joined by ";".
type GuestCodec struct{}

func (GuestCodec) Header() string {
	return "id,firstName,lastName,roomNumber,services"
}

func (GuestCodec) Format(g model.Guest) string {
	return fmt.Sprintf("%s,%s,%s,%d,%s",
		g.ID, g.FirstName, g.LastName, g.RoomNumber, formatUsages(g.ServiceUsages, ";"))
}

func (GuestCodec) Parse(line string) (model.Guest, error) {
	parts := strings.SplitN(line, ",", 5)
	if len(parts) < 4 {
		return model.Guest{}, fmt.Errorf("bad guest record %q", line)
	}

	roomNumber, err := strconv.Atoi(parts[3])
	if err != nil {
		return model.Guest{}, fmt.Errorf("bad room number in guest record %q: %w", line, err)
	}

	guest := model.Guest{
		ID:         parts[0],
		FirstName:  parts[1],
		LastName:   parts[2],
		RoomNumber: roomNumber,
	}
	if len(parts) == 5 && parts[4] != "" {
		usages, err := parseUsages(parts[4], ";")
		if err != nil {
			return model.Guest{}, fmt.Errorf("bad services in guest record %q: %w", line, err)
		}
		guest.ServiceUsages = usages
	}
	return guest, nil
}

func formatUsages(usages []model.ServiceUsage, sep string) string {
	entries := make([]string, len(usages))
	for i, u := range usages {
		entries[i] = u.ServiceID + ":" + u.UsedOn.Format(DateLayout)
	}
	return strings.Join(entries, sep)
}

func parseUsages(s, sep string) ([]model.ServiceUsage, error) {
	var usages []model.ServiceUsage
	for _, entry := range strings.Split(s, sep) {
		if entry == "" {
			continue
		}
		fields := strings.SplitN(entry, ":", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("bad service usage %q", entry)
		}
		usedOn, err := parseDate(fields[1])
		if err != nil || usedOn == nil {
			return nil, fmt.Errorf("bad service usage date %q", entry)
		}
		usages = append(usages, model.ServiceUsage{ServiceID: fields[0], UsedOn: *usedOn})
	}
	return usages, nil
}
