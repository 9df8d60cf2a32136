package transfer

import (
	"fmt"
	"strconv"
	"strings"

	"hotel-management-backend/internal/model"
)

// ServiceCodec moves catalog services as "id,name,price,description". The
// description is the final field and may contain commas.
type ServiceCodec struct{}

func (ServiceCodec) Header() string {
	return "id,name,price,description"
}

func (ServiceCodec) Format(s model.Service) string {
	return fmt.Sprintf("%s,%s,%d,%s", s.ID, s.Name, s.Price, s.Description)
}

func (ServiceCodec) Parse(line string) (model.Service, error) {
	parts := strings.SplitN(line, ",", 4)
	if len(parts) < 3 {
		return model.Service{}, fmt.Errorf("bad service record %q", line)
	}

	price, err := strconv.Atoi(parts[2])
	if err != nil {
		return model.Service{}, fmt.Errorf("bad service price %q: %w", parts[2], err)
	}

	svc := model.Service{ID: parts[0], Name: parts[1], Price: price}
	if len(parts) == 4 {
		svc.Description = parts[3]
	}
	return svc, nil
}
